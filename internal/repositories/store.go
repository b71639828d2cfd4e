// Package repositories はバケットリストの永続化アダプターを提供します。
// ローカル版(SQLite)とリモート版(MySQL)が同じ契約を実装します。
package repositories

import (
	"context"
	"errors"

	"github.com/hwllojeena/bucket-list/internal/models"
)

var (
	// ErrTenantNotFound はスラッグに一致するテナントが存在しない場合のエラーです。
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrTaskNotFound は対象タスクが存在しない場合のエラーです。
	ErrTaskNotFound = errors.New("task not found")
)

// Snapshot はロード結果です。Tenantはローカル版ではnilになります。
type Snapshot struct {
	Tenant            *models.Tenant
	Tasks             []models.Task
	ClaimedVoucherIDs []int
}

// Store は永続化アダプターの共通契約です。
// Loadはテナント解決に失敗した場合ロード全体を失敗させます。
// SaveAllは現在の状態全体をひとつのトランザクションで書き戻します。
type Store interface {
	Load(ctx context.Context, slug string) (*Snapshot, error)
	SaveAll(ctx context.Context, slug string, tasks []models.Task, claimedVoucherIDs []int) error
	Close() error
}

// RowStore は行単位の書き込みをサポートするストアです（リモート版）。
// 達成は対象タスク1行のUPDATE、バウチャー獲得は冪等なINSERTになります。
type RowStore interface {
	Store
	CompleteTask(ctx context.Context, slug string, taskID int64, photoURL string) error
	ClaimVoucher(ctx context.Context, slug string, voucherID int) error
}
