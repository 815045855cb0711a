package pipeline

import "testing"

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.BinaryThreshold != 127 {
		t.Errorf("Expected threshold 127, got %d", opts.BinaryThreshold)
	}
	if opts.MinRegionSize != 20 || opts.MaxRegionSize != 100 {
		t.Errorf("Expected size window (20, 100), got (%d, %d)", opts.MinRegionSize, opts.MaxRegionSize)
	}
}

func TestOptions_WithThreshold(t *testing.T) {
	opts := DefaultOptions().WithThreshold(200)
	if opts.BinaryThreshold != 200 {
		t.Errorf("Expected threshold 200, got %d", opts.BinaryThreshold)
	}
	if opts.MinRegionSize != DefaultMinRegionSize {
		t.Error("WithThreshold must not touch the size window")
	}
}

func TestOptions_WithSizeWindow(t *testing.T) {
	opts := DefaultOptions().WithSizeWindow(10, 400)
	if opts.MinRegionSize != 10 || opts.MaxRegionSize != 400 {
		t.Errorf("Expected size window (10, 400), got (%d, %d)", opts.MinRegionSize, opts.MaxRegionSize)
	}
	if opts.BinaryThreshold != DefaultBinaryThreshold {
		t.Error("WithSizeWindow must not touch the threshold")
	}
}

func TestOptions_ValueSemantics(t *testing.T) {
	base := DefaultOptions()
	_ = base.WithThreshold(5)
	if base.BinaryThreshold != DefaultBinaryThreshold {
		t.Error("With-style setters must not mutate the receiver")
	}
}
