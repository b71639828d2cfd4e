package repositories

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	_ "modernc.org/sqlite"

	"github.com/hwllojeena/bucket-list/internal/models"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

// LocalStore はSQLiteに保存するローカル版の永続化アダプターです。
// テナントの概念はなく、slugは無視されます。保存はコレクション全体を
// 消して書き直す方式で、原子性は下層のトランザクションが保証します。
type LocalStore struct {
	DB *sql.DB
}

// OpenLocalStore はSQLiteファイルを開き、スキーマを適用します。
func OpenLocalStore(path string) (*LocalStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite database: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not apply sqlite schema: %w", err)
	}

	return &LocalStore{DB: db}, nil
}

// Close はデータベース接続を閉じます。
func (s *LocalStore) Close() error {
	return s.DB.Close()
}

// Load は保存済みの状態を読み込みます。初回起動（タスク0件）の場合は
// 既定の50項目にフォールバックします。Tenantは常にnilです。
func (s *LocalStore) Load(ctx context.Context, _ string) (*Snapshot, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, order_index, title, completed, photo_url FROM tasks ORDER BY order_index ASC")
	if err != nil {
		log.Printf("Failed to query tasks: %v", err)
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var photoURL sql.NullString
		if err := rows.Scan(&t.ID, &t.OrderIndex, &t.Title, &t.Completed, &photoURL); err != nil {
			return nil, fmt.Errorf("could not scan task: %w", err)
		}
		if photoURL.Valid {
			t.PhotoURL = &photoURL.String
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	if len(tasks) == 0 {
		tasks = DefaultTasks()
	}

	claimed, err := s.loadClaimedVouchers(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Tasks: tasks, ClaimedVoucherIDs: claimed}, nil
}

func (s *LocalStore) loadClaimedVouchers(ctx context.Context) ([]int, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT id FROM claimed_vouchers ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("could not query claimed vouchers: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("could not scan claimed voucher: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveAll は現在の状態全体をひとつのトランザクションで書き戻します。
// clear-then-rewrite方式: 途中で失敗した場合は直前のスナップショットが残ります。
func (s *LocalStore) SaveAll(ctx context.Context, _ string, tasks []models.Task, claimedVoucherIDs []int) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("could not clear tasks: %w", err)
	}
	for _, t := range tasks {
		var photoURL sql.NullString
		if t.PhotoURL != nil {
			photoURL = sql.NullString{String: *t.PhotoURL, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tasks (id, order_index, title, completed, photo_url) VALUES (?, ?, ?, ?, ?)",
			t.ID, t.OrderIndex, t.Title, t.Completed, photoURL); err != nil {
			return fmt.Errorf("could not insert task %d: %w", t.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM claimed_vouchers"); err != nil {
		return fmt.Errorf("could not clear claimed vouchers: %w", err)
	}
	for _, id := range claimedVoucherIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO claimed_vouchers (id) VALUES (?)", id); err != nil {
			return fmt.Errorf("could not insert claimed voucher %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit save: %w", err)
	}
	return nil
}
