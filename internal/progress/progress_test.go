package progress_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwllojeena/bucket-list/internal/models"
	"github.com/hwllojeena/bucket-list/internal/progress"
)

// makeTasks は先頭からn個を達成済みにした50タスクの列を作成します。
func makeTasks(completed int) []models.Task {
	tasks := make([]models.Task, 50)
	for i := range tasks {
		tasks[i] = models.Task{
			ID:         int64(i + 1),
			OrderIndex: i,
			Title:      fmt.Sprintf("Task %d", i+1),
			Completed:  i < completed,
		}
	}
	return tasks
}

func TestCurrentMilestoneIndex(t *testing.T) {
	testCases := []struct {
		completed int
		want      int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{7, 1}, // 7達成 → マイルストーン1
		{10, 2},
		{44, 8},
		{45, 9},
		{49, 9},
		{50, 9}, // 全達成でも9にクランプ (10にならない)
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("completed_%d", tc.completed), func(t *testing.T) {
			tasks := makeTasks(tc.completed)
			assert.Equal(t, tc.want, progress.CurrentMilestoneIndex(tasks))
			assert.Equal(t, tc.completed, progress.CompletedCount(tasks))
		})
	}
}

func TestCurrentMilestoneIndex_AdvancesByCountNotByBlock(t *testing.T) {
	// 達成数ベースの仕様: ブロック0が未完了でも、合計5達成でインデックスは1になる
	tasks := makeTasks(0)
	for i := 10; i < 15; i++ {
		tasks[i].Completed = true
	}
	assert.Equal(t, 1, progress.CurrentMilestoneIndex(tasks))
	assert.False(t, progress.IsMilestoneCompleted(0, tasks))
}

func TestLocked_AllIndexes(t *testing.T) {
	for _, completed := range []int{0, 3, 5, 12, 25, 50} {
		tasks := makeTasks(completed)
		current := progress.CurrentMilestoneIndex(tasks)
		for i := range tasks {
			want := i/5 > current
			assert.Equal(t, want, progress.Locked(i, tasks),
				"completed=%d index=%d", completed, i)
		}
	}
}

func TestIsMilestoneCompleted(t *testing.T) {
	tasks := makeTasks(5)
	assert.True(t, progress.IsMilestoneCompleted(0, tasks))
	assert.False(t, progress.IsMilestoneCompleted(1, tasks))

	// ブロック内に1つでも未達成があればfalse
	tasks[2].Completed = false
	assert.False(t, progress.IsMilestoneCompleted(0, tasks))

	// 範囲外
	assert.False(t, progress.IsMilestoneCompleted(-1, tasks))
	assert.False(t, progress.IsMilestoneCompleted(10, tasks))
}

func TestSummarize(t *testing.T) {
	tasks := makeTasks(5)
	withLock, summary := progress.Summarize(tasks)

	require.Len(t, withLock, 50)
	assert.Equal(t, 5, summary.CompletedCount)
	assert.Equal(t, 50, summary.TotalCount)
	assert.Equal(t, 1, summary.CurrentMilestoneIndex)
	assert.False(t, summary.MilestoneCompleted)

	// タスク1〜10が解放、11以降がロック
	for i, task := range withLock {
		assert.Equal(t, i >= 10, task.Locked, "index=%d", i)
	}

	// 入力のスライスは変更しない
	for i := range tasks {
		assert.False(t, tasks[i].Locked)
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	tasks := makeTasks(17)
	_, first := progress.Summarize(tasks)
	_, second := progress.Summarize(tasks)
	assert.Equal(t, first, second)
}

func TestSummarize_InitialAndFirstMilestoneScenario(t *testing.T) {
	// 初期状態: 50タスクすべて未達成
	tasks := makeTasks(0)
	withLock, summary := progress.Summarize(tasks)
	assert.Equal(t, 0, summary.CompletedCount)
	assert.Equal(t, 0, summary.CurrentMilestoneIndex)
	for i, task := range withLock {
		assert.Equal(t, i >= 5, task.Locked, "index=%d", i)
	}

	// タスク1〜5を達成 → マイルストーン1がアクティブになり6〜10が解放される
	for i := 0; i < 5; i++ {
		tasks[i].Completed = true
	}
	withLock, summary = progress.Summarize(tasks)
	assert.Equal(t, 1, summary.CurrentMilestoneIndex)
	assert.True(t, progress.IsMilestoneCompleted(0, tasks))
	for i := 5; i < 10; i++ {
		assert.False(t, withLock[i].Locked, "index=%d", i)
	}
	assert.True(t, withLock[10].Locked)
}
