package imaging

import (
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-fill-mcp/internal/fill"
)

func createFrames(t *testing.T, n, width, height int) []image.Image {
	t.Helper()
	frames := make([]image.Image, n)
	for i := range frames {
		r, err := fill.NewUniformRaster(width, height, fill.Pixel{H: float64(i * 40), S: 1, L: 0.5, A: 1})
		if err != nil {
			t.Fatalf("NewUniformRaster failed: %v", err)
		}
		frames[i] = r
	}
	return frames
}

func TestEncodePNGBase64(t *testing.T) {
	frames := createFrames(t, 1, 12, 7)

	result, err := EncodePNGBase64(frames[0])
	if err != nil {
		t.Fatalf("EncodePNGBase64 failed: %v", err)
	}
	if result.Width != 12 || result.Height != 7 || result.MimeType != "image/png" {
		t.Errorf("got %dx%d %s", result.Width, result.Height, result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	got := color.NRGBAModel.Convert(img.At(3, 3)).(color.NRGBA)
	if got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("decoded pixel: got %v, want red", got)
	}
}

func TestSaveImage_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "final.png")
	if err := SaveImage(createFrames(t, 1, 3, 3)[0], path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestSaveImage_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final.xyz")
	if err := SaveImage(createFrames(t, 1, 3, 3)[0], path); err == nil {
		t.Error("SaveImage should fail for an unknown extension")
	}
}

func TestWriteGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anim.gif")
	if err := WriteGIF(path, createFrames(t, 4, 10, 8), 5, 150); err != nil {
		t.Fatalf("WriteGIF failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open animation: %v", err)
	}
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("failed to decode animation: %v", err)
	}
	if len(anim.Image) != 4 {
		t.Errorf("frames: got %d, want 4", len(anim.Image))
	}
	if anim.Delay[0] != 5 || anim.Delay[3] != 150 {
		t.Errorf("delays: got %v", anim.Delay)
	}
}

func TestWriteGIF_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := WriteGIF(filepath.Join(dir, "anim.gif"), nil, 5, 5); err == nil {
		t.Error("WriteGIF should fail without frames")
	}
	if err := WriteGIF(filepath.Join(dir, "anim.png"), createFrames(t, 1, 2, 2), 5, 5); err == nil {
		t.Error("WriteGIF should reject a non-.gif path")
	}
}

func TestWriteFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	frames := createFrames(t, 9, 6, 6)

	paths, err := WriteFrames(context.Background(), dir, frames, 3)
	if err != nil {
		t.Fatalf("WriteFrames failed: %v", err)
	}
	if len(paths) != len(frames) {
		t.Fatalf("paths: got %d, want %d", len(paths), len(frames))
	}
	for i, p := range paths {
		want := filepath.Join(dir, "frame_0000"+string(rune('0'+i))+".png")
		if p != want {
			t.Errorf("path %d: got %s, want %s", i, p, want)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("frame %d missing: %v", i, err)
		}
	}
}

func TestWriteFrames_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WriteFrames(ctx, t.TempDir(), createFrames(t, 3, 2, 2), 1)
	if err == nil {
		t.Error("WriteFrames should fail once the context is cancelled")
	}
}
