package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hwllojeena/bucket-list/internal/photos"
	"github.com/hwllojeena/bucket-list/internal/storage"
)

// ErrUploadInFlight は別のアップロードが進行中の場合のエラーです。
// 同時に処理できるアップロードは1件だけです。
var ErrUploadInFlight = errors.New("another upload is in progress")

// PhotoService は写真ファイルの取り込みを調整します。
// ローカル版はdata URIを生成し、リモート版はWEBPをオブジェクトストレージへ
// アップロードして公開URLを返します。いずれも失敗時はタスクを変更しません。
type PhotoService struct {
	objectStore storage.ObjectStore // nilならローカル版 (data URI埋め込み)

	mu          sync.Mutex
	uploadingID int64 // 0 = アイドル
}

// NewPhotoService はローカル版(data URI)のPhotoServiceを作成します。
func NewPhotoService() *PhotoService {
	return &PhotoService{}
}

// NewRemotePhotoService はオブジェクトストレージへアップロードするPhotoServiceを作成します。
func NewRemotePhotoService(objectStore storage.ObjectStore) *PhotoService {
	return &PhotoService{objectStore: objectStore}
}

// Ingest は画像バイト列を保存可能な表現に変換します。
// 戻り値はタスクのphotoUrlにそのまま設定できる文字列です。
func (s *PhotoService) Ingest(ctx context.Context, taskID int64, data []byte) (string, error) {
	if err := s.acquire(taskID); err != nil {
		return "", err
	}
	defer s.release()

	if s.objectStore == nil {
		return s.ingestLocal(data)
	}
	return s.ingestRemote(ctx, taskID, data)
}

// acquire は進行中アップロードのIDを記録します。既に別件が進行中ならエラーです。
func (s *PhotoService) acquire(taskID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadingID != 0 {
		return ErrUploadInFlight
	}
	s.uploadingID = taskID
	return nil
}

func (s *PhotoService) release() {
	s.mu.Lock()
	s.uploadingID = 0
	s.mu.Unlock()
}

func (s *PhotoService) ingestLocal(data []byte) (string, error) {
	img, err := photos.DecodeAndResize(data, photos.LocalMaxDimension)
	if err != nil {
		return "", err
	}
	return photos.EncodeDataURI(img)
}

func (s *PhotoService) ingestRemote(ctx context.Context, taskID int64, data []byte) (string, error) {
	img, err := photos.DecodeAndResize(data, photos.RemoteMaxDimension)
	if err != nil {
		return "", err
	}

	encoded, err := photos.EncodeWebP(img)
	if err != nil {
		return "", err
	}

	key := photos.ObjectKey(taskID, time.Now())
	url, err := s.objectStore.Upload(ctx, key, encoded, "image/webp")
	if err != nil {
		log.Printf("Failed to upload photo for task %d: %v", taskID, err)
		return "", fmt.Errorf("%w (check that the bucket is publicly readable and allows uploads)", err)
	}
	return url, nil
}
