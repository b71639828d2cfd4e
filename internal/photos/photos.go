// Package photosは写真ファイルを保存可能な表現へ変換するパイプラインを提供します。
// デコード → 縦横比を保った縮小 → 再エンコード の一本道で、並行処理はしません。
package photos

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	// LocalMaxDimension はローカル版(データURI埋め込み)の最大辺です。
	LocalMaxDimension = 800
	// RemoteMaxDimension はリモート版(オブジェクトストレージ)の最大辺です。
	RemoteMaxDimension = 1200

	jpegQuality = 70 // canvas.toDataURL('image/jpeg', 0.7) 相当
	webpQuality = 80 // WEBP quality 0.8 相当
)

var (
	// ErrEmptyFile はファイルが選択されていない場合のエラーです。
	ErrEmptyFile = errors.New("no photo file provided")
	// ErrDecodeFailed は画像としてデコードできない場合のエラーです。
	ErrDecodeFailed = errors.New("could not decode photo")
)

// DecodeAndResize は画像バイト列をデコードし、どちらの辺もmaxを超えないよう
// 縦横比を保って縮小します。元がmax以下ならサイズは変わりません。
func DecodeAndResize(data []byte, max int) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= max && bounds.Dy() <= max {
		return img, nil
	}
	return imaging.Fit(img, max, max, imaging.Lanczos), nil
}

// EncodeDataURI は画像をJPEG(品質70)のdata URIへエンコードします。ローカル版用。
func EncodeDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("could not encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeWebP は画像をWEBP(品質80)のバイト列へエンコードします。リモート版用。
func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("could not encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// ObjectKey はアップロード先のキーを生成します。形式: {taskId}_{timestamp}.webp
func ObjectKey(taskID int64, now time.Time) string {
	return fmt.Sprintf("%d_%d.webp", taskID, now.UnixMilli())
}
