// Package screenshot writes frames read back from the framebuffer as PNG.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/learngl/internal/engine/texture"
)

// Writer names and writes screenshot files.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewWriter returns a Writer saving files as <dir>/<prefix>_<timestamp>.png.
func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next screenshot will be written to.
func (w *Writer) Filename() string {
	name := fmt.Sprintf("%s_%s.png", w.prefix, w.now().Format("2006-01-02_15-04-05.000"))
	if w.dir == "" {
		return name
	}
	return filepath.Join(w.dir, name)
}

// WritePixels saves tightly packed RGBA pixels as read by glReadPixels.
// Rows arrive bottom-up and are flipped.
func (w *Writer) WritePixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return w.WriteImage(texture.FlipVertical(img))
}

// WriteImage saves img as it is.
func (w *Writer) WriteImage(img image.Image) (string, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := w.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
