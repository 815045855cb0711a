package pipeline

// Default detection constants. They mirror the values the detection
// heuristics were tuned with: a mid-scale binary threshold and a size
// window that rejects both speckle noise and large non-tooth structures.
const (
	DefaultBinaryThreshold = 127
	DefaultMinRegionSize   = 20
	DefaultMaxRegionSize   = 100
)

// Options configures the detection stage. The values are plain data so a
// single Options value can be shared by concurrent invocations.
type Options struct {
	// BinaryThreshold separates foreground from background during
	// binarization; pixels at or above it are foreground.
	BinaryThreshold int

	// MinRegionSize and MaxRegionSize bound the size filter. Both edges
	// are exclusive: a region survives only if width and height are
	// strictly inside (MinRegionSize, MaxRegionSize).
	MinRegionSize int
	MaxRegionSize int
}

// DefaultOptions returns the documented default detection parameters
func DefaultOptions() Options {
	return Options{
		BinaryThreshold: DefaultBinaryThreshold,
		MinRegionSize:   DefaultMinRegionSize,
		MaxRegionSize:   DefaultMaxRegionSize,
	}
}

// WithThreshold returns options with a custom binarization threshold
func (o Options) WithThreshold(threshold int) Options {
	o.BinaryThreshold = threshold
	return o
}

// WithSizeWindow returns options with a custom region size window
func (o Options) WithSizeWindow(min, max int) Options {
	o.MinRegionSize = min
	o.MaxRegionSize = max
	return o
}
