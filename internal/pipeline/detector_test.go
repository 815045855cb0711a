package pipeline

import (
	"image"
	"testing"

	apperrors "go-dental-annotator/internal/errors"
)

func TestDetectRegions_BlankImage(t *testing.T) {
	src := createGrayImage(200, 200, 0)

	regions, err := DetectRegions(src, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("Expected no regions on blank image, got %d", len(regions))
	}
}

func TestDetectRegions_SingleSquare(t *testing.T) {
	src := createGrayImage(200, 200, 0)
	fillRect(src, 60, 70, 50, 50, 200)

	regions, err := DetectRegions(src, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("Expected exactly one region, got %d", len(regions))
	}

	r := regions[0]
	if r.X != 60 || r.Y != 70 || r.Width != 50 || r.Height != 50 {
		t.Errorf("Expected region {60 70 50 50}, got %+v", r)
	}
}

func TestDetectRegions_SizeFilterBounds(t *testing.T) {
	// Both filter edges are exclusive: 20 and 100 are rejected, 21 and 99
	// survive.
	cases := []struct {
		name string
		size int
		kept bool
	}{
		{"at lower bound", 20, false},
		{"just above lower bound", 21, true},
		{"just below upper bound", 99, true},
		{"at upper bound", 100, false},
		{"tiny noise", 3, false},
		{"large structure", 150, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := createGrayImage(300, 300, 0)
			fillRect(src, 50, 50, tc.size, tc.size, 255)

			regions, err := DetectRegions(src, DefaultOptions())
			if err != nil {
				t.Fatalf("DetectRegions failed: %v", err)
			}
			if tc.kept && len(regions) != 1 {
				t.Errorf("Expected %dx%d square to be kept, got %d regions", tc.size, tc.size, len(regions))
			}
			if !tc.kept && len(regions) != 0 {
				t.Errorf("Expected %dx%d square to be filtered, got %d regions", tc.size, tc.size, len(regions))
			}
		})
	}
}

func TestDetectRegions_OutputWithinWindow(t *testing.T) {
	// A scattering of shapes on either side of the window; whatever comes
	// back must sit strictly inside it.
	src := createGrayImage(400, 400, 0)
	fillRect(src, 5, 5, 10, 10, 255)     // too small
	fillRect(src, 30, 30, 40, 30, 255)   // kept
	fillRect(src, 120, 40, 99, 99, 255)  // kept, at the edge of the window
	fillRect(src, 40, 150, 120, 50, 255) // too wide
	fillRect(src, 250, 250, 30, 140, 255) // too tall

	regions, err := DetectRegions(src, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("Expected 2 surviving regions, got %d", len(regions))
	}
	for _, r := range regions {
		if r.Width <= DefaultMinRegionSize || r.Width >= DefaultMaxRegionSize ||
			r.Height <= DefaultMinRegionSize || r.Height >= DefaultMaxRegionSize {
			t.Errorf("Region %+v outside the (%d, %d) window",
				r, DefaultMinRegionSize, DefaultMaxRegionSize)
		}
	}
}

func TestDetectRegions_EightConnectivity(t *testing.T) {
	// Two 25x25 squares touching only at a corner are one 8-connected
	// component; its joint bounding box is 50x50.
	src := createGrayImage(200, 200, 0)
	fillRect(src, 50, 50, 25, 25, 255)
	fillRect(src, 75, 75, 25, 25, 255)

	regions, err := DetectRegions(src, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("Expected diagonal squares to merge into one region, got %d", len(regions))
	}
	if regions[0].Width != 50 || regions[0].Height != 50 {
		t.Errorf("Expected merged 50x50 bounding box, got %+v", regions[0])
	}
}

func TestDetectRegions_HolesIgnored(t *testing.T) {
	// A bright ring: the dark hole inside must not produce a second
	// region, only the outer bounding box counts.
	src := createGrayImage(200, 200, 0)
	fillRect(src, 50, 50, 60, 60, 255)
	fillRect(src, 70, 70, 20, 20, 0)

	regions, err := DetectRegions(src, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("Expected one region for ring shape, got %d", len(regions))
	}
	if regions[0].Width != 60 || regions[0].Height != 60 {
		t.Errorf("Expected outer 60x60 bounding box, got %+v", regions[0])
	}
}

func TestDetectRegions_DiscoveryOrder(t *testing.T) {
	// Row-major scan discovers the upper square first even though it sits
	// further right.
	src := createGrayImage(300, 300, 0)
	fillRect(src, 200, 20, 30, 30, 255)
	fillRect(src, 20, 150, 30, 30, 255)

	regions, err := DetectRegions(src, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(regions))
	}
	if regions[0].Y != 20 || regions[1].Y != 150 {
		t.Errorf("Expected discovery order by scan position, got %+v", regions)
	}
}

func TestDetectRegions_ThresholdIsInclusive(t *testing.T) {
	src := createGrayImage(200, 200, 0)
	fillRect(src, 50, 50, 30, 30, 127) // exactly at the threshold
	fillRect(src, 120, 50, 30, 30, 126)

	regions, err := DetectRegions(src, DefaultOptions())
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("Expected only the >= threshold square, got %d regions", len(regions))
	}
	if regions[0].X != 50 {
		t.Errorf("Expected the square at x=50, got %+v", regions[0])
	}
}

func TestDetectRegions_EmptyMatrix(t *testing.T) {
	_, err := DetectRegions(nil, DefaultOptions())
	if err == nil {
		t.Fatal("Expected error for nil matrix")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeInvalidImage) {
		t.Errorf("Expected invalid_image error type, got %v", err)
	}

	_, err = DetectRegions(image.NewGray(image.Rect(0, 0, 0, 0)), DefaultOptions())
	if err == nil {
		t.Fatal("Expected error for zero-sized matrix")
	}
}

func TestDetectRegions_CustomWindow(t *testing.T) {
	src := createGrayImage(100, 100, 0)
	fillRect(src, 10, 10, 12, 12, 255)

	opts := DefaultOptions().WithSizeWindow(5, 50)
	regions, err := DetectRegions(src, opts)
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if len(regions) != 1 {
		t.Errorf("Expected widened window to keep the 12x12 square, got %d regions", len(regions))
	}
}
