package storage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/chai2010/webp"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNormalizeAvatar(t *testing.T) {
	out, err := NormalizeAvatar(bytes.NewReader(pngBytes(t, 400, 300)))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if cfg.Width != AvatarSize || cfg.Height != AvatarSize {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestNormalizeAvatarRejectsGarbage(t *testing.T) {
	if _, err := NormalizeAvatar(strings.NewReader("not an image")); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("got %v", err)
	}
}

func TestNormalizeAvatarRejectsLargeUploads(t *testing.T) {
	big := bytes.Repeat([]byte{0}, MaxUploadBytes+10)
	if _, err := NormalizeAvatar(bytes.NewReader(big)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("got %v", err)
	}
}

func TestAvatarURL(t *testing.T) {
	s := NewS3AvatarStore(S3Config{Bucket: "viv", Region: "sa-east-1"})
	if s.baseURL != "https://viv.s3.sa-east-1.amazonaws.com" {
		t.Errorf("base = %s", s.baseURL)
	}

	s = NewS3AvatarStore(S3Config{Bucket: "viv", Region: "us-east-1", Endpoint: "http://minio:9000", PublicBaseURL: "https://cdn.espacoviv.com/"})
	if s.baseURL != "https://cdn.espacoviv.com" {
		t.Errorf("base = %s", s.baseURL)
	}

	key := AvatarKey(7, time.Unix(1700000000, 0))
	if key != "avatars/7/1700000000.webp" {
		t.Errorf("key = %s", key)
	}
}
