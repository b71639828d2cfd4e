// Package storageは写真のアップロード先となるオブジェクトストレージを扱います。
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore は公開読み取りバケットへのアップロードの契約です。
// アップロード成功時に決定的に導出できる公開URLを返します。
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// S3Store はS3互換ストレージ(minioクライアント)によるObjectStore実装です。
type S3Store struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// S3Config はS3互換ストレージへの接続設定です。
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL は公開URLの基点です (例: https://cdn.example.com/photos)。
	PublicBaseURL string
}

// NewS3Store は新しいS3Storeを作成します。
func NewS3Store(cfg S3Config) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create object storage client: %w", err)
	}
	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload はバイト列をキーの位置に保存し、公開URLを返します。
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.Printf("Failed to upload object %s: %v", key, err)
		return "", fmt.Errorf("could not upload photo: %w", err)
	}
	return s.publicBaseURL + "/" + key, nil
}
