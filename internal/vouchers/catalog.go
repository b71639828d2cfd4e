// Package vouchersはマイルストーン達成ごほうびの固定カタログを提供します。
package vouchers

import (
	"github.com/hwllojeena/bucket-list/internal/models"
	"github.com/hwllojeena/bucket-list/internal/progress"
)

// catalog は固定10件のバウチャー定義です。id k はマイルストーン k-1 に対応します。
var catalog = []models.Voucher{
	{ID: 1, Title: "Food Date Night", Description: "Redeem for a fancy dinner date anywhere you want.", Code: "DATE-2026"},
	{ID: 2, Title: "Movie Marathon", Description: "One night of movies, popcorn, and cuddles.", Code: "CUDDLE-MAX"},
	{ID: 3, Title: "Weekend Getaway", Description: "A surprise trip to a cozy destination.", Code: "TRIP-LOVE"},
	{ID: 4, Title: "Spa & Relax", Description: "A full day of relaxation and pampering.", Code: "RELAX-SPA"},
	{ID: 5, Title: "Home Cooked Special", Description: "I will cook your favorite 3-course meal.", Code: "CHEF-LOVE"},
	{ID: 6, Title: "Adventure Park", Description: "A thrill-seeking day at an adventure park.", Code: "THRILL-ME"},
	{ID: 7, Title: "Starry Beach Night", Description: "A quiet evening with stars and waves.", Code: "STARRY-LOVE"},
	{ID: 8, Title: "Surprise Gift", Description: "A thoughtful surprise chosen just for you.", Code: "SURPRISE-U"},
	{ID: 9, Title: "Breakfast in Bed", Description: "A lazy morning with your favorite breakfast.", Code: "MORNING-JOY"},
	{ID: 10, Title: "Final Anniversary Trip", Description: "A grand celebration of our journey.", Code: "FINAL-LEG"},
}

// All はカタログ全件のコピーを返します。
func All() []models.Voucher {
	out := make([]models.Voucher, len(catalog))
	copy(out, catalog)
	return out
}

// ByID はIDでバウチャーを検索します (1..10)。
func ByID(id int) (models.Voucher, bool) {
	if id < 1 || id > len(catalog) {
		return models.Voucher{}, false
	}
	return catalog[id-1], true
}

// ByMilestone はマイルストーン番号に対応するバウチャーを返します (voucher id = k+1)。
func ByMilestone(k int) (models.Voucher, bool) {
	return ByID(k + 1)
}

// States はタスクの進捗と獲得済みIDの集合からカード表示用の状態一覧を組み立てます。
// バウチャーkはマイルストーンk-1の5タスクがすべて達成済みのときに解放されます。
func States(tasks []models.Task, claimed map[int]bool) []models.VoucherState {
	states := make([]models.VoucherState, 0, len(catalog))
	for _, v := range catalog {
		states = append(states, models.VoucherState{
			Voucher: v,
			Locked:  !progress.IsMilestoneCompleted(v.ID-1, tasks),
			Claimed: claimed[v.ID],
		})
	}
	return states
}
