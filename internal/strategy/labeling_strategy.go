package strategy

import (
	"fmt"
	"sort"

	"go-dental-annotator/pkg/models"
)

// LabelingStrategy assigns a sequential "Tooth <n>" label to each detected
// region. The returned map is keyed by the region's detection index, which
// is how the annotator and the descriptor look labels up.
type LabelingStrategy interface {
	AssignLabels(regions []models.Position) map[int]string
	GetStrategyName() string
}

// PositionalLabeling numbers regions left to right: the region with the
// smallest x coordinate becomes "Tooth 1". Ties keep their detection order
// (stable sort), so numbering is deterministic for a given input.
type PositionalLabeling struct{}

// NewPositionalLabeling creates the left-to-right labeling strategy
func NewPositionalLabeling() LabelingStrategy {
	return &PositionalLabeling{}
}

// AssignLabels maps each detection index to its label in ascending-x order
func (s *PositionalLabeling) AssignLabels(regions []models.Position) map[int]string {
	order := make([]int, len(regions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return regions[order[a]].X < regions[order[b]].X
	})

	labels := make(map[int]string, len(regions))
	for rank, idx := range order {
		labels[idx] = fmt.Sprintf("Tooth %d", rank+1)
	}
	return labels
}

// GetStrategyName returns the strategy name
func (s *PositionalLabeling) GetStrategyName() string {
	return "positional"
}

// DetectionOrderLabeling numbers regions in the order the detector found
// them. This reproduces the numbering of an earlier implementation that
// computed labels over a sorted list but applied them by detection index,
// so "Tooth 1" is not guaranteed to be the leftmost region. Kept behind the
// LEGACY_LABEL_ORDER setting for behavioral parity.
type DetectionOrderLabeling struct{}

// NewDetectionOrderLabeling creates the discovery-order labeling strategy
func NewDetectionOrderLabeling() LabelingStrategy {
	return &DetectionOrderLabeling{}
}

// AssignLabels maps each detection index to "Tooth <index+1>"
func (s *DetectionOrderLabeling) AssignLabels(regions []models.Position) map[int]string {
	labels := make(map[int]string, len(regions))
	for i := range regions {
		labels[i] = fmt.Sprintf("Tooth %d", i+1)
	}
	return labels
}

// GetStrategyName returns the strategy name
func (s *DetectionOrderLabeling) GetStrategyName() string {
	return "detection_order"
}

// ForLegacyOrder selects the strategy matching the configured label order
func ForLegacyOrder(legacy bool) LabelingStrategy {
	if legacy {
		return NewDetectionOrderLabeling()
	}
	return NewPositionalLabeling()
}
