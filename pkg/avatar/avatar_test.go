package avatar

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailShrinksKeepingRatio(t *testing.T) {
	data, ext, err := Thumbnail(bytes.NewReader(pngBytes(t, 800, 400)), 200)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if ext != ".png" {
		t.Fatalf("ext = %q", ext)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Fatalf("size = %dx%d, want 200x100", cfg.Width, cfg.Height)
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, _, err := Thumbnail(strings.NewReader("not an image"), 100)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("err = %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "avatars")
	path, err := Save(dir, "a.png", []byte("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "x" {
		t.Fatalf("read back %q, %v", b, err)
	}
}
