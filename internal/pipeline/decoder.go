package pipeline

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	apperrors "go-dental-annotator/internal/errors"
)

// Decode turns an opaque byte buffer into a single-channel pixel matrix.
//
// JPEG, PNG and GIF inputs are accepted. Color images are reduced to
// grayscale through the standard library's color.GrayModel, which applies
// the ITU-R BT.601 luminance weighting (0.299 R + 0.587 G + 0.114 B).
// Grayscale inputs pass through with their pixel values unchanged.
//
// The returned matrix is always anchored at (0, 0) regardless of the
// decoded image's bounds, and is owned by the caller.
func Decode(data []byte) (*image.Gray, error) {
	if len(data) == 0 {
		return nil, apperrors.NewDecodeError("empty image data", nil)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError("unreadable or corrupt image data", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, apperrors.NewDecodeError("decoded image has zero size", nil)
	}

	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray, nil
}
