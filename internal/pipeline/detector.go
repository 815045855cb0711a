package pipeline

import (
	"image"

	apperrors "go-dental-annotator/internal/errors"
	"go-dental-annotator/pkg/models"
)

// Region is the axis-aligned bounding box of a connected bright region, in
// pixel coordinates with (X, Y) at the top-left corner. It is shared with
// the descriptor models so detection output can flow into responses without
// conversion.
type Region = models.Position

// DetectRegions binarizes an enhanced grayscale matrix with a fixed global
// threshold and returns the bounding boxes of connected foreground regions
// that pass the size filter.
//
// Pixels at or above opts.BinaryThreshold are foreground. Connectivity is
// 8-connected, so each component's bounding box corresponds to the outer
// contour of a bright blob; holes inside a blob do not produce extra
// regions. A region is kept only when both its width and height lie
// strictly between opts.MinRegionSize and opts.MaxRegionSize. The threshold
// is deliberately global and non-adaptive.
//
// Regions are returned in discovery order, a row-major scan from the top
// left. Left-to-right numbering is the labeler's concern, not the
// detector's. An image with no qualifying regions yields an empty slice,
// not an error.
func DetectRegions(src *image.Gray, opts Options) ([]Region, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, apperrors.NewInvalidImageError("cannot detect regions on an empty matrix", nil)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	threshold := uint8(opts.BinaryThreshold)

	foreground := make([]bool, width*height)
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+width]
		for x, v := range row {
			if v >= threshold {
				foreground[y*width+x] = true
			}
		}
	}

	visited := make([]bool, width*height)
	regions := make([]Region, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if !foreground[idx] || visited[idx] {
				continue
			}

			box := traceComponent(foreground, visited, x, y, width, height)
			if box.Width > opts.MinRegionSize && box.Height > opts.MinRegionSize &&
				box.Width < opts.MaxRegionSize && box.Height < opts.MaxRegionSize {
				regions = append(regions, box)
			}
		}
	}

	return regions, nil
}

// traceComponent flood-fills the 8-connected component containing (startX,
// startY) and returns its minimal enclosing rectangle. Iterative with an
// explicit stack so large components cannot overflow the call stack.
func traceComponent(foreground, visited []bool, startX, startY, width, height int) Region {
	type point struct{ x, y int }
	stack := []point{{startX, startY}}
	visited[startY*width+startX] = true

	minX, minY := startX, startY
	maxX, maxY := startX, startY

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.x+dx, p.y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				nidx := ny*width + nx
				if foreground[nidx] && !visited[nidx] {
					visited[nidx] = true
					stack = append(stack, point{nx, ny})
				}
			}
		}
	}

	return Region{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}
}
