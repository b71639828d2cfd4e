package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"

	"github.com/hwllojeena/bucket-list/internal/models"
)

// ErrDuplicateSlug はスラッグが既に使われている場合のエラーです。
var ErrDuplicateSlug = errors.New("duplicate slug")

// RemoteStore はMySQLに保存するマルチテナント版の永続化アダプターです。
// タスクはテナントIDで紐付く行単位のレコードで、達成は対象行のみを更新します。
type RemoteStore struct {
	DB *sql.DB
}

// NewRemoteStore は新しいRemoteStoreインスタンスを作成します。
func NewRemoteStore(db *sql.DB) *RemoteStore {
	return &RemoteStore{DB: db}
}

// Close はデータベース接続を閉じます。
func (s *RemoteStore) Close() error {
	return s.DB.Close()
}

// EnsureSchema はテーブルを作成します（存在する場合は何もしません）。
func (s *RemoteStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tenants (
			id CHAR(36) PRIMARY KEY,
			slug VARCHAR(100) NOT NULL UNIQUE,
			passcode VARCHAR(10) NOT NULL,
			heading_text VARCHAR(255) NOT NULL DEFAULT '',
			subheading_text TEXT,
			progress_text VARCHAR(255) NOT NULL DEFAULT '',
			lock_text VARCHAR(255) NOT NULL DEFAULT '',
			hint VARCHAR(255) NOT NULL DEFAULT '',
			color_theme VARCHAR(20) NOT NULL DEFAULT '#ef4444',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INT AUTO_INCREMENT PRIMARY KEY,
			tenant_id CHAR(36) NOT NULL,
			order_index INT NOT NULL,
			title VARCHAR(255) NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			photo_url TEXT,
			FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS claimed_vouchers (
			tenant_id CHAR(36) NOT NULL,
			voucher_id INT NOT NULL,
			PRIMARY KEY (tenant_id, voucher_id),
			FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE
		);`,
	}
	for _, stmt := range statements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not create table: %w", err)
		}
	}
	return nil
}

// FindTenantBySlug はスラッグでテナントを検索します。
func (s *RemoteStore) FindTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	query := `SELECT id, slug, passcode, heading_text, subheading_text, progress_text,
		lock_text, hint, color_theme, created_at FROM tenants WHERE slug = ?`

	var t models.Tenant
	err := s.DB.QueryRowContext(ctx, query, slug).Scan(
		&t.ID, &t.Slug, &t.Passcode, &t.HeadingText, &t.SubheadingText,
		&t.ProgressText, &t.LockText, &t.Hint, &t.ColorTheme, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		log.Printf("Failed to query tenant by slug: %v", err)
		return nil, fmt.Errorf("could not query tenant: %w", err)
	}
	return &t, nil
}

// CreateTenant は新しいテナントを挿入します。スラッグ重複はErrDuplicateSlugになります。
func (s *RemoteStore) CreateTenant(ctx context.Context, t *models.Tenant) error {
	query := `INSERT INTO tenants (id, slug, passcode, heading_text, subheading_text,
		progress_text, lock_text, hint, color_theme) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.DB.ExecContext(ctx, query, t.ID, t.Slug, t.Passcode, t.HeadingText,
		t.SubheadingText, t.ProgressText, t.LockText, t.Hint, t.ColorTheme)
	if err != nil {
		// MySQLの重複エントリーエラーコード1062をチェック
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrDuplicateSlug
		}
		log.Printf("Failed to insert tenant: %v", err)
		return fmt.Errorf("could not insert tenant: %w", err)
	}
	return nil
}

// Load はスラッグを解決し、そのテナントのタスクをorder_index順で読み込みます。
// テナントが見つからない場合はロード全体が失敗します。
func (s *RemoteStore) Load(ctx context.Context, slug string) (*Snapshot, error) {
	tenant, err := s.FindTenantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, order_index, title, completed, photo_url FROM tasks WHERE tenant_id = ? ORDER BY order_index ASC",
		tenant.ID)
	if err != nil {
		log.Printf("Failed to query tasks for tenant %s: %v", tenant.Slug, err)
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

	claimed, err := s.loadClaimedVouchers(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Tenant: tenant, Tasks: tasks, ClaimedVoucherIDs: claimed}, nil
}

func (s *RemoteStore) loadClaimedVouchers(ctx context.Context, tenantID string) ([]int, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT voucher_id FROM claimed_vouchers WHERE tenant_id = ? ORDER BY voucher_id ASC", tenantID)
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

// CompleteTask は対象タスク1行だけを達成済みに更新します（行単位の書き込み）。
func (s *RemoteStore) CompleteTask(ctx context.Context, slug string, taskID int64, photoURL string) error {
	query := `UPDATE tasks SET completed = TRUE, photo_url = ?
		WHERE id = ? AND tenant_id = (SELECT id FROM tenants WHERE slug = ?)`

	result, err := s.DB.ExecContext(ctx, query, photoURL, taskID, slug)
	if err != nil {
		log.Printf("Failed to update task %d: %v", taskID, err)
		return fmt.Errorf("could not update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ClaimVoucher は獲得済みバウチャーを記録します。既に存在する場合は何もしません（冪等）。
func (s *RemoteStore) ClaimVoucher(ctx context.Context, slug string, voucherID int) error {
	query := `INSERT IGNORE INTO claimed_vouchers (tenant_id, voucher_id)
		SELECT id, ? FROM tenants WHERE slug = ?`

	result, err := s.DB.ExecContext(ctx, query, voucherID, slug)
	if err != nil {
		log.Printf("Failed to claim voucher %d: %v", voucherID, err)
		return fmt.Errorf("could not claim voucher: %w", err)
	}

	// テナントが存在しない場合はSELECTが0行になり何も挿入されないが、
	// 既に獲得済みの場合と区別できないためここではエラーにしない。
	_, _ = result.RowsAffected()
	return nil
}

// SaveAll はテナントのタスクと獲得済みバウチャーを丸ごと書き直します。
// 通常運用では行単位の書き込みを使い、これは初期投入用です。
func (s *RemoteStore) SaveAll(ctx context.Context, slug string, tasks []models.Task, claimedVoucherIDs []int) error {
	tenant, err := s.FindTenantBySlug(ctx, slug)
	if err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE tenant_id = ?", tenant.ID); err != nil {
		return fmt.Errorf("could not clear tasks: %w", err)
	}
	for _, t := range tasks {
		var photoURL sql.NullString
		if t.PhotoURL != nil {
			photoURL = sql.NullString{String: *t.PhotoURL, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tasks (tenant_id, order_index, title, completed, photo_url) VALUES (?, ?, ?, ?, ?)",
			tenant.ID, t.OrderIndex, t.Title, t.Completed, photoURL); err != nil {
			return fmt.Errorf("could not insert task: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM claimed_vouchers WHERE tenant_id = ?", tenant.ID); err != nil {
		return fmt.Errorf("could not clear claimed vouchers: %w", err)
	}
	for _, id := range claimedVoucherIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO claimed_vouchers (tenant_id, voucher_id) VALUES (?, ?)", tenant.ID, id); err != nil {
			return fmt.Errorf("could not insert claimed voucher %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit save: %w", err)
	}
	return nil
}
