package pipeline

import (
	"bytes"
	"image"
	"image/png"

	apperrors "go-dental-annotator/internal/errors"
)

// EncodePNG serializes a pixel matrix (single or three channel) into PNG
// bytes. PNG is lossless, so a grayscale matrix survives an encode/decode
// round trip with identical pixel content. The standard library stores RGBA
// pixels in PNG's native channel order, so no channel reshuffling is needed
// before writing.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, apperrors.NewEncodeError("cannot encode an empty matrix", nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, apperrors.NewEncodeError("failed to encode PNG", err)
	}
	return buf.Bytes(), nil
}
