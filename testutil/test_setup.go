// Package testutilはテスト用のルーターとリクエストのセットアップを提供します。
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/hwllojeena/bucket-list/internal/repositories"
	"github.com/hwllojeena/bucket-list/internal/routes"
	"github.com/hwllojeena/bucket-list/internal/services"
)

// TestPasscode はテスト用ルーターの既定パスコードです。
const TestPasscode = "1234"

// SetupLocalRouter はSQLiteバックエンドのテスト用ルーターをセットアップします。
// データベースはテストごとの一時ファイルで、終了時に破棄されます。
func SetupLocalRouter(t *testing.T) (*gin.Engine, *repositories.LocalStore) {
	t.Helper()

	_ = godotenv.Load("../../.env")
	if os.Getenv("JWT_SECRET") == "" {
		t.Setenv("JWT_SECRET", "test-secret")
	}
	gin.SetMode(gin.TestMode)

	store, err := repositories.OpenLocalStore(filepath.Join(t.TempDir(), "bucketlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	deps := routes.Deps{
		DB:              store.DB,
		ListService:     services.NewListService(store),
		PhotoService:    services.NewPhotoService(),
		TokenService:    services.NewTokenService(),
		DefaultPasscode: TestPasscode,
	}
	return routes.SetupRouter(deps), store
}

// UnlockAndGetToken はパスコードを照合して解錠トークンを取得します。
func UnlockAndGetToken(t *testing.T, r *gin.Engine, slug, passcode string) (string, error) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"passcode": passcode})
	req, _ := http.NewRequest("POST", fmt.Sprintf("/api/lists/%s/unlock", slug), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return "", fmt.Errorf("unlock failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// TestJPEG はテスト用のJPEG画像バイト列を生成します。
func TestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 180, G: 60, B: 90, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

// NewPhotoRequest は写真フィールド付きのmultipartリクエストを作成します。
func NewPhotoRequest(t *testing.T, url, token string, photo []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write(photo)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// CompleteTestTask はタスクを写真付きで達成します。
func CompleteTestTask(t *testing.T, r *gin.Engine, token, slug string, taskID int) *httptest.ResponseRecorder {
	t.Helper()

	url := fmt.Sprintf("/api/lists/%s/tasks/%d/complete", slug, taskID)
	req := NewPhotoRequest(t, url, token, TestJPEG(t, 640, 480))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
