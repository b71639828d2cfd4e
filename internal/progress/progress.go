// Package progressはタスク列から進捗の派生値を計算する純粋関数を提供します。
// 副作用を持たず、同じ入力には常に同じ結果を返します。
package progress

import "github.com/hwllojeena/bucket-list/internal/models"

const (
	// MilestoneSize は1マイルストーンあたりのタスク数です。
	MilestoneSize = 5
	// TotalMilestones はマイルストーンの総数です (50タスク ÷ 5)。
	TotalMilestones = 10
)

// Summary はタスク列から導出される進捗のスナップショットです。
type Summary struct {
	CompletedCount        int  `json:"completed_count"`
	TotalCount            int  `json:"total_count"`
	CurrentMilestoneIndex int  `json:"current_milestone_index"`
	MilestoneCompleted    bool `json:"is_current_milestone_completed"`
}

// CompletedCount は達成済みタスクの数を返します。
func CompletedCount(tasks []models.Task) int {
	count := 0
	for _, t := range tasks {
		if t.Completed {
			count++
		}
	}
	return count
}

// CurrentMilestoneIndex はアクティブなマイルストーン番号を返します。
// min(達成数/5, 9) で計算します。達成数ベースのため、順序を無視して
// 達成した場合でも前進します（「最初の未完了ブロック」の検査ではない）。
func CurrentMilestoneIndex(tasks []models.Task) int {
	idx := CompletedCount(tasks) / MilestoneSize
	if idx > TotalMilestones-1 {
		idx = TotalMilestones - 1
	}
	return idx
}

// Locked はインデックスiのタスクがロック中かどうかを返します。
// アクティブなマイルストーンより先のブロックはロックされ、達成操作を受け付けません。
func Locked(i int, tasks []models.Task) bool {
	return i/MilestoneSize > CurrentMilestoneIndex(tasks)
}

// IsMilestoneCompleted はブロックkの5タスクがすべて達成済みかどうかを返します。
// 範囲外のkは常にfalseです。
func IsMilestoneCompleted(k int, tasks []models.Task) bool {
	start := k * MilestoneSize
	end := start + MilestoneSize
	if k < 0 || end > len(tasks) {
		return false
	}
	for _, t := range tasks[start:end] {
		if !t.Completed {
			return false
		}
	}
	return true
}

// Summarize はタスク列を変更せず、ロックフラグ付きのコピーと要約を返します。
func Summarize(tasks []models.Task) ([]models.Task, Summary) {
	current := CurrentMilestoneIndex(tasks)

	withLock := make([]models.Task, len(tasks))
	for i, t := range tasks {
		t.Locked = i/MilestoneSize > current
		withLock[i] = t
	}

	return withLock, Summary{
		CompletedCount:        CompletedCount(tasks),
		TotalCount:            len(tasks),
		CurrentMilestoneIndex: current,
		MilestoneCompleted:    IsMilestoneCompleted(current, tasks),
	}
}
