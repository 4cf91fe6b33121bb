package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func stripes(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(y * 10), G: uint8(x), A: 255})
		}
	}
	return img
}

func TestFlipVertical(t *testing.T) {
	img := stripes(3, 4)
	flipped := FlipVertical(img)

	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			want := img.RGBAAt(x, 3-y)
			if got := flipped.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if img.RGBAAt(0, 0).R != 0 {
		t.Error("FlipVertical must not modify its input")
	}
}

func TestToRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(2, 2, 4, 5))
	gray.SetGray(2, 2, color.Gray{Y: 200})

	rgba := ToRGBA(gray)
	if rgba.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("expected bounds rebased to origin, got %v", rgba.Bounds())
	}
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{R: 200, G: 200, B: 200, A: 255}) {
		t.Errorf("unexpected converted pixel %v", got)
	}

	packed := stripes(2, 2)
	if ToRGBA(packed) != packed {
		t.Error("packed RGBA images should be returned as is")
	}
}

func TestDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stripes.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, stripes(4, 2)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	// Row 0 of the file ends up last.
	if got := img.RGBAAt(1, 1); got.R != 0 || got.G != 1 {
		t.Errorf("expected flipped rows, got %v", got)
	}

	if _, err := Decode(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCheckerboard(t *testing.T) {
	a := color.RGBA{R: 255, A: 255}
	b := color.RGBA{B: 255, A: 255}
	img := Checkerboard(8, 4, a, b)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, a},
		{1, 1, a},
		{2, 0, b},
		{0, 2, b},
		{2, 2, a},
		{7, 7, a},
		{7, 0, b},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
