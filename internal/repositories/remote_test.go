package repositories_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/go-sql-driver/mysql"

	"github.com/hwllojeena/bucket-list/internal/models"
	"github.com/hwllojeena/bucket-list/internal/repositories"
)

// openRemoteStore はテスト用MySQLへ接続します。接続情報がない環境ではスキップします。
func openRemoteStore(t *testing.T) *repositories.RemoteStore {
	t.Helper()

	_ = godotenv.Load("../../.env")
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set; skipping MySQL-backed tests")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		os.Getenv("TEST_DB_USER"), os.Getenv("TEST_DB_PASS"),
		host, os.Getenv("TEST_DB_PORT"), os.Getenv("TEST_DB_NAME"))

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	t.Cleanup(func() { db.Close() })

	store := repositories.NewRemoteStore(db)
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func createTestTenant(t *testing.T, store *repositories.RemoteStore) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		ID:           uuid.NewString(),
		Slug:         "test-" + uuid.NewString()[:8],
		Passcode:     "0214",
		HeadingText:  "Our Bucket List",
		ProgressText: "adventures completed",
		ColorTheme:   "#ef4444",
	}
	require.NoError(t, store.CreateTenant(context.Background(), tenant))
	require.NoError(t, store.SaveAll(context.Background(), tenant.Slug, repositories.DefaultTasks(), nil))
	return tenant
}

func TestRemoteStore_TenantNotFound(t *testing.T) {
	store := openRemoteStore(t)

	// 未知のスラッグはロード全体が失敗する
	_, err := store.Load(context.Background(), "xyz-does-not-exist")
	assert.ErrorIs(t, err, repositories.ErrTenantNotFound)
}

func TestRemoteStore_DuplicateSlug(t *testing.T) {
	store := openRemoteStore(t)
	tenant := createTestTenant(t, store)

	dup := &models.Tenant{ID: uuid.NewString(), Slug: tenant.Slug, Passcode: "9999"}
	err := store.CreateTenant(context.Background(), dup)
	assert.ErrorIs(t, err, repositories.ErrDuplicateSlug)
}

func TestRemoteStore_LoadOrdersTasks(t *testing.T) {
	store := openRemoteStore(t)
	tenant := createTestTenant(t, store)

	snap, err := store.Load(context.Background(), tenant.Slug)
	require.NoError(t, err)

	require.NotNil(t, snap.Tenant)
	assert.Equal(t, tenant.Slug, snap.Tenant.Slug)
	require.Len(t, snap.Tasks, 50)
	for i, task := range snap.Tasks {
		assert.Equal(t, i, task.OrderIndex, "tasks must come back ordered by order_index")
		assert.False(t, task.Completed)
	}
}

func TestRemoteStore_CompleteTaskIsRowLevel(t *testing.T) {
	store := openRemoteStore(t)
	tenant := createTestTenant(t, store)
	ctx := context.Background()

	snap, err := store.Load(ctx, tenant.Slug)
	require.NoError(t, err)
	target := snap.Tasks[0].ID

	photoURL := "https://cdn.example.com/photos/1_1.webp"
	require.NoError(t, store.CompleteTask(ctx, tenant.Slug, target, photoURL))

	reloaded, err := store.Load(ctx, tenant.Slug)
	require.NoError(t, err)
	assert.True(t, reloaded.Tasks[0].Completed)
	require.NotNil(t, reloaded.Tasks[0].PhotoURL)
	assert.Equal(t, photoURL, *reloaded.Tasks[0].PhotoURL)
	// 他の行は変化しない
	for _, task := range reloaded.Tasks[1:] {
		assert.False(t, task.Completed)
	}

	// 存在しないタスクはErrTaskNotFound
	err = store.CompleteTask(ctx, tenant.Slug, 999999999, photoURL)
	assert.ErrorIs(t, err, repositories.ErrTaskNotFound)
}

func TestRemoteStore_ClaimVoucherIdempotent(t *testing.T) {
	store := openRemoteStore(t)
	tenant := createTestTenant(t, store)
	ctx := context.Background()

	require.NoError(t, store.ClaimVoucher(ctx, tenant.Slug, 1))
	require.NoError(t, store.ClaimVoucher(ctx, tenant.Slug, 1)) // 二重獲得は何もしない
	require.NoError(t, store.ClaimVoucher(ctx, tenant.Slug, 2))

	snap, err := store.Load(ctx, tenant.Slug)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, snap.ClaimedVoucherIDs)
}
