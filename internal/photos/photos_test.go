package photos_test

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwllojeena/bucket-list/internal/photos"
)

// encodeTestImage はw×hの単色画像をJPEGバイト列にして返します。
func encodeTestImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

func TestDecodeAndResize_PreservesAspectRatio(t *testing.T) {
	// 2:1の横長画像 → 最大辺800で800×400になる
	data := encodeTestImage(t, 1600, 800)

	img, err := photos.DecodeAndResize(data, 800)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestDecodeAndResize_PortraitUsesHeight(t *testing.T) {
	data := encodeTestImage(t, 600, 1800)

	img, err := photos.DecodeAndResize(data, 1200)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 1200, img.Bounds().Dy())
}

func TestDecodeAndResize_SmallImageUntouched(t *testing.T) {
	data := encodeTestImage(t, 300, 200)

	img, err := photos.DecodeAndResize(data, 800)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestDecodeAndResize_EmptyInput(t *testing.T) {
	_, err := photos.DecodeAndResize(nil, 800)
	assert.ErrorIs(t, err, photos.ErrEmptyFile)
}

func TestDecodeAndResize_GarbageInput(t *testing.T) {
	_, err := photos.DecodeAndResize([]byte("not an image at all"), 800)
	assert.ErrorIs(t, err, photos.ErrDecodeFailed)
}

func TestEncodeDataURI(t *testing.T) {
	img := imaging.New(10, 10, color.NRGBA{R: 255, A: 255})

	uri, err := photos.EncodeDataURI(img)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	assert.Greater(t, len(uri), len("data:image/jpeg;base64,"))
}

func TestEncodeWebP(t *testing.T) {
	img := imaging.New(16, 16, color.NRGBA{G: 255, A: 255})

	data, err := photos.EncodeWebP(img)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	// WEBPはRIFFコンテナ
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1735689600000)
	assert.Equal(t, "7_1735689600000.webp", photos.ObjectKey(7, now))
}
