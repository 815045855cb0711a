package strategy

import (
	"testing"

	"go-dental-annotator/pkg/models"
)

func TestPositionalLabeling_LeftToRight(t *testing.T) {
	s := NewPositionalLabeling()
	regions := []models.Position{
		{X: 200, Y: 20, Width: 50, Height: 50},
		{X: 10, Y: 150, Width: 50, Height: 50},
		{X: 100, Y: 80, Width: 50, Height: 50},
	}

	labels := s.AssignLabels(regions)
	if len(labels) != 3 {
		t.Fatalf("Expected 3 labels, got %d", len(labels))
	}
	if labels[1] != "Tooth 1" {
		t.Errorf("Expected leftmost region (index 1) to be \"Tooth 1\", got %q", labels[1])
	}
	if labels[2] != "Tooth 2" {
		t.Errorf("Expected middle region (index 2) to be \"Tooth 2\", got %q", labels[2])
	}
	if labels[0] != "Tooth 3" {
		t.Errorf("Expected rightmost region (index 0) to be \"Tooth 3\", got %q", labels[0])
	}
}

func TestPositionalLabeling_TiesKeepDetectionOrder(t *testing.T) {
	s := NewPositionalLabeling()
	regions := []models.Position{
		{X: 50, Y: 10, Width: 30, Height: 30},
		{X: 50, Y: 100, Width: 30, Height: 30},
	}

	labels := s.AssignLabels(regions)
	if labels[0] != "Tooth 1" || labels[1] != "Tooth 2" {
		t.Errorf("Expected stable ordering for equal x, got %v", labels)
	}
}

func TestPositionalLabeling_Empty(t *testing.T) {
	labels := NewPositionalLabeling().AssignLabels(nil)
	if len(labels) != 0 {
		t.Errorf("Expected no labels for no regions, got %v", labels)
	}
}

func TestDetectionOrderLabeling(t *testing.T) {
	s := NewDetectionOrderLabeling()
	regions := []models.Position{
		{X: 200, Y: 20, Width: 50, Height: 50},
		{X: 10, Y: 150, Width: 50, Height: 50},
	}

	labels := s.AssignLabels(regions)
	if labels[0] != "Tooth 1" {
		t.Errorf("Expected first-detected region to be \"Tooth 1\", got %q", labels[0])
	}
	if labels[1] != "Tooth 2" {
		t.Errorf("Expected second-detected region to be \"Tooth 2\", got %q", labels[1])
	}
}

func TestForLegacyOrder(t *testing.T) {
	if got := ForLegacyOrder(false).GetStrategyName(); got != "positional" {
		t.Errorf("Expected positional strategy by default, got %q", got)
	}
	if got := ForLegacyOrder(true).GetStrategyName(); got != "detection_order" {
		t.Errorf("Expected detection_order strategy for legacy mode, got %q", got)
	}
}
