package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	apperrors "go-dental-annotator/internal/errors"
)

// createGrayImage builds a grayscale test image filled with a single value
func createGrayImage(width, height int, fill uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	return img
}

// fillRect sets a rectangular patch of a grayscale image to a value
func fillRect(img *image.Gray, x, y, w, h int, value uint8) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			img.SetGray(px, py, color.Gray{Y: value})
		}
	}
}

func encodeAsPNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_GrayPNG(t *testing.T) {
	src := createGrayImage(64, 48, 40)
	fillRect(src, 10, 10, 8, 8, 220)

	gray, err := Decode(encodeAsPNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if gray.Bounds().Dx() != 64 || gray.Bounds().Dy() != 48 {
		t.Errorf("Expected 64x48, got %dx%d", gray.Bounds().Dx(), gray.Bounds().Dy())
	}
	if got := gray.GrayAt(12, 12).Y; got != 220 {
		t.Errorf("Expected grayscale pass-through value 220, got %d", got)
	}
	if got := gray.GrayAt(0, 0).Y; got != 40 {
		t.Errorf("Expected background value 40, got %d", got)
	}
}

func TestDecode_ColorConvertsToLuminance(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	gray, err := Decode(encodeAsPNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// Pure red reduces to roughly 0.299 * 255 = 76 under BT.601 weighting.
	got := gray.GrayAt(5, 5).Y
	if got < 74 || got > 78 {
		t.Errorf("Expected luminance near 76 for pure red, got %d", got)
	}
}

func TestDecode_JPEG(t *testing.T) {
	src := createGrayImage(32, 32, 128)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("failed to encode test JPEG: %v", err)
	}

	gray, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed for JPEG input: %v", err)
	}
	if gray.Bounds().Dx() != 32 || gray.Bounds().Dy() != 32 {
		t.Errorf("Expected 32x32, got %dx%d", gray.Bounds().Dx(), gray.Bounds().Dy())
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"random bytes", []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02}},
		{"truncated png", encodeAsPNG(t, createGrayImage(16, 16, 0))[:20]},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gray, err := Decode(tc.data)
			if err == nil {
				t.Fatal("Expected decode error, got nil")
			}
			if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
				t.Errorf("Expected decode error type, got %v", err)
			}
			if gray != nil {
				t.Error("Expected nil matrix on decode failure")
			}
		})
	}
}
