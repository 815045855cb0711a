package pipeline

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	apperrors "go-dental-annotator/internal/errors"
)

const (
	// annotationStroke is the rectangle outline thickness in pixels.
	annotationStroke = 2
	// labelMargin is the gap between a label baseline and its box top.
	labelMargin = 5
)

// annotationColor is the fixed overlay color for boxes and labels.
var annotationColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}

// Annotate renders detection overlays onto a color copy of the original
// (pre-enhancement) matrix. The grayscale values are replicated across the
// three color channels, then each region gets a rectangle outline and its
// label drawn immediately above the box's top-left corner.
//
// Regions are iterated in detection order and matched to labels by their
// detection index, so the labels map must be keyed the same way the
// labeling strategy produced it.
func Annotate(original *image.Gray, regions []Region, labels map[int]string) (*image.RGBA, error) {
	if original == nil || original.Bounds().Empty() {
		return nil, apperrors.NewInvalidImageError("cannot annotate an empty matrix", nil)
	}

	bounds := original.Bounds()
	annotated := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(annotated, annotated.Bounds(), original, bounds.Min, draw.Src)

	for i, region := range regions {
		drawRectOutline(annotated, region)
		if label, ok := labels[i]; ok {
			drawLabel(annotated, label, region.X, region.Y-labelMargin)
		}
	}

	return annotated, nil
}

// drawRectOutline draws an axis-aligned rectangle outline with the fixed
// stroke width, filling inward from the bounding box edges. Bands are
// clipped to the image bounds.
func drawRectOutline(dst *image.RGBA, r Region) {
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height

	fillBand(dst, left, top, right, top+annotationStroke)        // top
	fillBand(dst, left, bottom-annotationStroke, right, bottom)  // bottom
	fillBand(dst, left, top, left+annotationStroke, bottom)      // left
	fillBand(dst, right-annotationStroke, top, right, bottom)    // right
}

// fillBand fills the half-open rectangle [x0, x1) x [y0, y1) with the
// annotation color, clipped to the destination bounds.
func fillBand(dst *image.RGBA, x0, y0, x1, y1 int) {
	clipped := image.Rect(x0, y0, x1, y1).Intersect(dst.Bounds())
	draw.Draw(dst, clipped, image.NewUniform(annotationColor), image.Point{}, draw.Src)
}

// drawLabel renders the label text with its baseline at (x, y). Glyphs
// falling outside the image are clipped by the drawer.
func drawLabel(dst *image.RGBA, label string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(annotationColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
