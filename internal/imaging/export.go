package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// EncodedImage contains an image encoded as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 encodes img as a base64 PNG suitable for returning inline
// from an MCP tool.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &EncodedImage{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveImage writes img to path, choosing the encoder from the extension
// (.png, .jpg, .gif, .bmp, .tif). Missing parent directories are created.
func SaveImage(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// WriteGIF writes frames as an animated GIF that plays once per loop forever.
//
// Every frame is dithered onto the Plan 9 palette with Floyd-Steinberg error
// diffusion. delay is the time each frame is shown in hundredths of a second;
// the last frame is held for finalDelay so the finished fill stays visible.
func WriteGIF(path string, frames []image.Image, delay, finalDelay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	if !strings.EqualFold(filepath.Ext(path), ".gif") {
		return fmt.Errorf("animation path %s must end in .gif", path)
	}

	anim := &gif.GIF{
		Image: make([]*image.Paletted, len(frames)),
		Delay: make([]int, len(frames)),
	}
	for i, frame := range frames {
		bounds := frame.Bounds()
		p := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(p, bounds, frame, bounds.Min)
		anim.Image[i] = p
		anim.Delay[i] = delay
	}
	anim.Delay[len(frames)-1] = finalDelay

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create animation file: %w", err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("failed to encode animation: %w", err)
	}
	return f.Close()
}

// WriteFrames saves every frame as dir/frame_NNNNN.png and returns the paths in
// frame order.
//
// Frames are encoded concurrently by up to workers goroutines (NumCPU when
// workers < 1). The first failure cancels the remaining writes.
func WriteFrames(ctx context.Context, dir string, frames []image.Image, workers int) ([]string, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frames directory: %w", err)
	}

	paths := make([]string, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, frame := range frames {
		i, frame := i, frame
		paths[i] = filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return SaveImage(frame, paths[i])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
