package pipeline

import (
	"image"

	apperrors "go-dental-annotator/internal/errors"
)

// Enhance returns a contrast-enhanced copy of a grayscale matrix with the
// same dimensions: global histogram equalization followed by a 3x3 Gaussian
// smoothing pass that damps the noise equalization tends to amplify.
//
// Equalization remaps intensities so their cumulative distribution is
// approximately uniform over 0..255. The mapping is fully determined by the
// input histogram. A constant image is returned unchanged by this step.
//
// Smoothing uses the binomial 3x3 kernel (1 2 1 / 2 4 2 / 1 2 1, divided by
// 16). Border policy is edge replication: samples outside the matrix clamp
// to the nearest edge pixel, so boundary pixels are smoothed against copies
// of themselves rather than zeros.
func Enhance(src *image.Gray) (*image.Gray, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, apperrors.NewInvalidImageError("cannot enhance an empty matrix", nil)
	}
	return gaussian3x3(equalizeHistogram(src)), nil
}

// equalizeHistogram applies global histogram equalization. The lookup table
// follows the standard CDF formulation: lut[v] = round((cdf[v] - cdfMin) /
// (total - cdfMin) * 255), where cdfMin is the CDF at the lowest occurring
// intensity. On a perfectly uniform histogram this reduces to the identity,
// so re-equalizing an equalized-uniform image changes nothing.
func equalizeHistogram(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	total := width * height

	var hist [256]int
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+width]
		for _, v := range row {
			hist[v]++
		}
	}

	var cdf [256]int
	sum := 0
	for i, count := range hist {
		sum += count
		cdf[i] = sum
	}

	cdfMin := 0
	for _, count := range hist {
		if count > 0 {
			cdfMin = count
			break
		}
	}

	dst := image.NewGray(image.Rect(0, 0, width, height))
	if total == cdfMin {
		// Single-intensity image: the mapping is undefined, keep it as is.
		copy(dst.Pix, src.Pix)
		return dst
	}

	var lut [256]uint8
	scale := 255.0 / float64(total-cdfMin)
	for i := range lut {
		if cdf[i] == 0 {
			continue
		}
		remapped := float64(cdf[i]-cdfMin) * scale
		lut[i] = uint8(remapped + 0.5)
	}

	for y := 0; y < height; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+width]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+width]
		for x, v := range srcRow {
			dstRow[x] = lut[v]
		}
	}
	return dst
}

// gaussian3x3 convolves with the binomial 3x3 kernel using edge replication
// at the borders. The sum is rounded to nearest before the divide by 16.
func gaussian3x3(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(image.Rect(0, 0, width, height))

	kernel := [3][3]int{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum := 0
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += int(src.Pix[py*src.Stride+px]) * kernel[ky+1][kx+1]
				}
			}
			dst.Pix[y*dst.Stride+x] = uint8((sum + 8) / 16)
		}
	}
	return dst
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
