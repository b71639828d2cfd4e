// Package modelsはバケットリストのデータ構造を定義します。
package models

// Task はバケットリストの1項目を表します。
// JSONタグ: クライアントとの通信用
// Completed は false→true の一方向にしか変化しません（巻き戻しなし）。
type Task struct {
	// ID: 主キー (ローカル版は1..50の固定ID、リモート版はDBの自動採番)
	ID int64 `json:"id"`

	// OrderIndex: 表示順 (マイルストーン分割の唯一の基準)
	OrderIndex int `json:"order_index"`

	// Title: 項目のタイトル（必須）
	Title string `json:"title"`

	// Completed: 達成状態
	Completed bool `json:"completed"`

	// PhotoURL: 添付写真 (data URIまたは公開オブジェクトURL、未達成ならnull)
	PhotoURL *string `json:"photo_url,omitempty"`

	// Locked: 派生値。進捗エンジンが毎回計算するため永続化しない
	Locked bool `json:"locked"`
}

// Voucher は5項目達成ごとに解放されるごほうびの定義です。
// カタログは固定10件、プロセスの生存期間中は不変です。
type Voucher struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

// VoucherState はカード表示用の状態です。
// locked / unlocked-unclaimed / unlocked-claimed の3値をとります。
type VoucherState struct {
	Voucher
	Locked  bool `json:"locked"`
	Claimed bool `json:"claimed"`
}
