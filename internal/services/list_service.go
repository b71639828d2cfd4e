// Package servicesはバケットリストのビジネスロジックを扱います。
package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"github.com/hwllojeena/bucket-list/internal/models"
	"github.com/hwllojeena/bucket-list/internal/progress"
	"github.com/hwllojeena/bucket-list/internal/repositories"
	"github.com/hwllojeena/bucket-list/internal/vouchers"
)

var (
	// ErrTaskLocked はロック中のタスクへの達成操作を表すエラーです。
	ErrTaskLocked = errors.New("task is locked")
	// ErrTaskAlreadyCompleted は達成済みタスクへの再達成を表すエラーです。
	ErrTaskAlreadyCompleted = errors.New("task is already completed")
	// ErrVoucherLocked はマイルストーン未達成のバウチャー獲得を表すエラーです。
	ErrVoucherLocked = errors.New("voucher is not unlocked yet")
	// ErrUnknownVoucher は存在しないバウチャーIDを表すエラーです。
	ErrUnknownVoucher = errors.New("unknown voucher id")
)

// ListState はクライアントへ返す状態のスナップショットです。
type ListState struct {
	Tenant          *models.Tenant        `json:"tenant,omitempty"`
	Tasks           []models.Task         `json:"tasks"`
	Progress        progress.Summary      `json:"progress"`
	Vouchers        []models.VoucherState `json:"vouchers"`
	UnsyncedTaskIDs []int64               `json:"unsynced_task_ids,omitempty"`
}

// session は1スラッグ分のメモリ上の状態です。永続化層はこのミラーです。
type session struct {
	tenant       *models.Tenant
	tasks        []models.Task
	claimed      map[int]bool
	claimedOrder []int
	// unsynced はリモート書き込みに失敗した楽観的更新のタスクIDです。
	unsynced map[int64]bool
}

// ListService はバケットリストのセッションファサードです。
// 永続化アダプターからの初回ロード、達成・獲得操作、派生状態の再計算を担います。
type ListService struct {
	store repositories.Store

	mu       sync.Mutex
	sessions map[string]*session
}

// NewListService は新しいListServiceを作成します。
func NewListService(store repositories.Store) *ListService {
	return &ListService{
		store:    store,
		sessions: make(map[string]*session),
	}
}

// loadSession はスラッグのセッションを返します。未ロードならストアから読み込みます。
// ロードが失敗した場合はセッションを作らず、派生状態は一切有効になりません。
func (s *ListService) loadSession(ctx context.Context, slug string) (*session, error) {
	if sess, ok := s.sessions[slug]; ok {
		return sess, nil
	}

	snap, err := s.store.Load(ctx, slug)
	if err != nil {
		return nil, err
	}

	sess := &session{
		tenant:   snap.Tenant,
		tasks:    snap.Tasks,
		claimed:  make(map[int]bool, len(snap.ClaimedVoucherIDs)),
		unsynced: make(map[int64]bool),
	}
	for _, id := range snap.ClaimedVoucherIDs {
		sess.claimed[id] = true
		sess.claimedOrder = append(sess.claimedOrder, id)
	}
	s.sessions[slug] = sess
	return sess, nil
}

// Tenant はスラッグのテナント情報を返します（ローカル版はnil）。
func (s *ListService) Tenant(ctx context.Context, slug string) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadSession(ctx, slug)
	if err != nil {
		return nil, err
	}
	return sess.tenant, nil
}

// State は現在の派生状態を返します。
func (s *ListService) State(ctx context.Context, slug string) (*ListState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadSession(ctx, slug)
	if err != nil {
		return nil, err
	}
	return sess.state(), nil
}

// CompleteTask はタスクを達成済みにし、写真を添付して永続化します。
// ロック中・達成済みのタスクは拒否します。達成と写真は常に同時に設定されます。
func (s *ListService) CompleteTask(ctx context.Context, slug string, taskID int64, photoURL string) (*ListState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadSession(ctx, slug)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range sess.tasks {
		if sess.tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, repositories.ErrTaskNotFound
	}
	if progress.Locked(idx, sess.tasks) {
		return nil, ErrTaskLocked
	}
	if sess.tasks[idx].Completed {
		return nil, ErrTaskAlreadyCompleted
	}

	sess.tasks[idx].Completed = true
	sess.tasks[idx].PhotoURL = &photoURL

	s.persistTaskCompletion(ctx, slug, sess, taskID, photoURL)
	return sess.state(), nil
}

// persistTaskCompletion は変更を永続化します。リモート版は対象行だけを更新し、
// 失敗してもメモリ上の楽観的更新は巻き戻さず、未同期として記録します。
// ローカル版は状態全体を書き戻し、失敗はログに残すだけでメモリ上の状態を保ちます。
func (s *ListService) persistTaskCompletion(ctx context.Context, slug string, sess *session, taskID int64, photoURL string) {
	if rs, ok := s.store.(repositories.RowStore); ok {
		if err := rs.CompleteTask(ctx, slug, taskID, photoURL); err != nil {
			log.Printf("Failed to persist task %d completion: %v", taskID, err)
			sess.unsynced[taskID] = true
			return
		}
		delete(sess.unsynced, taskID)
		return
	}

	if err := s.store.SaveAll(ctx, slug, sess.tasks, sess.claimedOrder); err != nil {
		log.Printf("Failed to save bucket list: %v", err)
	}
}

// ClaimVoucher はバウチャーを獲得済み集合へ追加して永続化します。
// 二重獲得は何もしません（冪等）。マイルストーン未達成のバウチャーは拒否します。
func (s *ListService) ClaimVoucher(ctx context.Context, slug string, voucherID int) (*ListState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadSession(ctx, slug)
	if err != nil {
		return nil, err
	}

	v, ok := vouchers.ByID(voucherID)
	if !ok {
		return nil, ErrUnknownVoucher
	}
	if !progress.IsMilestoneCompleted(v.ID-1, sess.tasks) {
		return nil, ErrVoucherLocked
	}

	if !sess.claimed[voucherID] {
		sess.claimed[voucherID] = true
		sess.claimedOrder = append(sess.claimedOrder, voucherID)

		if rs, ok := s.store.(repositories.RowStore); ok {
			if err := rs.ClaimVoucher(ctx, slug, voucherID); err != nil {
				log.Printf("Failed to persist voucher %d claim: %v", voucherID, err)
			}
		} else if err := s.store.SaveAll(ctx, slug, sess.tasks, sess.claimedOrder); err != nil {
			log.Printf("Failed to save bucket list: %v", err)
		}
	}

	return sess.state(), nil
}

// state は派生値を計算してスナップショットを組み立てます。
func (sess *session) state() *ListState {
	withLock, summary := progress.Summarize(sess.tasks)

	var unsynced []int64
	for id := range sess.unsynced {
		unsynced = append(unsynced, id)
	}
	sort.Slice(unsynced, func(i, j int) bool { return unsynced[i] < unsynced[j] })

	tenant := sess.tenant
	if tenant != nil && tenant.Hint == "" {
		t := *tenant
		t.Hint = "Hint: MM/DD"
		tenant = &t
	}

	return &ListState{
		Tenant:          tenant,
		Tasks:           withLock,
		Progress:        summary,
		Vouchers:        vouchers.States(sess.tasks, sess.claimed),
		UnsyncedTaskIDs: unsynced,
	}
}
