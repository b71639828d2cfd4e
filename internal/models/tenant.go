package models

import "time"

// Tenant は1顧客分の独立したバケットリスト環境を表します（リモート版のみ）。
// レコードはcmd/seedで帯域外に作成され、この層からは読み取り専用です。
type Tenant struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Passcode       string    `json:"-"` // JSONに出さない
	HeadingText    string    `json:"heading_text"`
	SubheadingText string    `json:"subheading_text"`
	ProgressText   string    `json:"progress_text"`
	LockText       string    `json:"lock_text"`
	Hint           string    `json:"hint"`
	ColorTheme     string    `json:"color_theme"`
	CreatedAt      time.Time `json:"created_at"`
}

// UnlockRequest はパスコード解錠リクエストです。
// 検証は平文比較のみで、暗号学的な認証は行いません。
type UnlockRequest struct {
	Passcode string `json:"passcode" binding:"required,len=4"`
}
