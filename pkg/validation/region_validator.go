package validation

import (
	"fmt"

	"go-dental-annotator/pkg/models"
)

// RegionThresholds defines the geometric constraints a detected region must
// satisfy relative to the image it was found in.
type RegionThresholds struct {
	// MinSize and MaxSize bound the size filter window; both exclusive.
	MinSize int
	MaxSize int
}

// DefaultRegionThresholds returns the documented detection window
func DefaultRegionThresholds() RegionThresholds {
	return RegionThresholds{
		MinSize: 20,
		MaxSize: 100,
	}
}

// RegionIssue represents a region validation issue
type RegionIssue struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Index   int    `json:"index"`
}

// RegionValidator checks detected regions against the geometric invariants:
// positive extent, containment within the source image, and the size
// window.
type RegionValidator struct {
	thresholds RegionThresholds
}

// NewRegionValidator creates a region validator with default thresholds
func NewRegionValidator() *RegionValidator {
	return &RegionValidator{thresholds: DefaultRegionThresholds()}
}

// NewRegionValidatorWithThresholds creates a region validator with custom thresholds
func NewRegionValidatorWithThresholds(thresholds RegionThresholds) *RegionValidator {
	return &RegionValidator{thresholds: thresholds}
}

// ValidateRegions checks every region against the invariants and returns
// one issue per violation. An empty slice means all regions are valid.
func (v *RegionValidator) ValidateRegions(regions []models.Position, imageWidth, imageHeight int) []RegionIssue {
	issues := make([]RegionIssue, 0)

	for i, r := range regions {
		if r.Width <= 0 || r.Height <= 0 {
			issues = append(issues, RegionIssue{
				Type:    "empty_region",
				Message: fmt.Sprintf("region %d has non-positive extent %dx%d", i, r.Width, r.Height),
				Index:   i,
			})
			continue
		}
		if r.X < 0 || r.Y < 0 || r.X+r.Width > imageWidth || r.Y+r.Height > imageHeight {
			issues = append(issues, RegionIssue{
				Type:    "out_of_bounds",
				Message: fmt.Sprintf("region %d exceeds image bounds %dx%d", i, imageWidth, imageHeight),
				Index:   i,
			})
		}
		if r.Width <= v.thresholds.MinSize || r.Height <= v.thresholds.MinSize ||
			r.Width >= v.thresholds.MaxSize || r.Height >= v.thresholds.MaxSize {
			issues = append(issues, RegionIssue{
				Type:    "size_window",
				Message: fmt.Sprintf("region %d size %dx%d outside (%d, %d)", i, r.Width, r.Height, v.thresholds.MinSize, v.thresholds.MaxSize),
				Index:   i,
			})
		}
	}

	return issues
}

// ConvertIssuesToMessages flattens issues into plain strings for logging
func (v *RegionValidator) ConvertIssuesToMessages(issues []RegionIssue) []string {
	messages := make([]string, len(issues))
	for i, issue := range issues {
		messages[i] = issue.Message
	}
	return messages
}
