package service

import (
	"context"

	apperrors "go-dental-annotator/internal/errors"
	"go-dental-annotator/internal/logger"
	"go-dental-annotator/internal/pipeline"
	"go-dental-annotator/internal/repository"
	"go-dental-annotator/pkg/validation"

	"github.com/sirupsen/logrus"
)

// AnnotationService defines the interface the transport layer calls to
// annotate dental radiographs.
type AnnotationService interface {
	// AnnotateRadiograph runs the pipeline over uploaded image bytes
	AnnotateRadiograph(ctx context.Context, data []byte) (*pipeline.Result, error)

	// AnnotateRadiographFromURL fetches the image first, then annotates it
	AnnotateRadiographFromURL(ctx context.Context, imageURL string) (*pipeline.Result, error)

	// ValidateImageURL validates a radiograph URL without fetching it
	ValidateImageURL(imageURL string) error
}

// annotationService implements AnnotationService
type annotationService struct {
	radiographRepo  repository.RadiographRepository
	processor       pipeline.Processor
	regionValidator *validation.RegionValidator
}

// NewAnnotationService creates a new annotation service
func NewAnnotationService(
	radiographRepo repository.RadiographRepository,
	processor pipeline.Processor,
	regionValidator *validation.RegionValidator,
) AnnotationService {
	if regionValidator == nil {
		regionValidator = validation.NewRegionValidator()
	}
	return &annotationService{
		radiographRepo:  radiographRepo,
		processor:       processor,
		regionValidator: regionValidator,
	}
}

// AnnotateRadiograph runs the pipeline over uploaded image bytes
func (s *annotationService) AnnotateRadiograph(ctx context.Context, data []byte) (*pipeline.Result, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("no image data provided", nil)
	}

	result, err := s.processor.Process(ctx, data)
	if err != nil {
		return nil, err
	}

	s.checkRegionInvariants(result)
	return result, nil
}

// AnnotateRadiographFromURL fetches the image first, then annotates it
func (s *annotationService) AnnotateRadiographFromURL(ctx context.Context, imageURL string) (*pipeline.Result, error) {
	if err := s.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}

	data, err := s.radiographRepo.FetchRadiograph(ctx, imageURL)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to fetch radiograph", err)
	}

	return s.AnnotateRadiograph(ctx, data)
}

// ValidateImageURL validates a radiograph URL without fetching it
func (s *annotationService) ValidateImageURL(imageURL string) error {
	return s.radiographRepo.ValidateImageURL(imageURL)
}

// checkRegionInvariants cross-checks the descriptor against the geometric
// invariants the detector promises. Violations are logged, not returned;
// they indicate a detector bug rather than bad input.
func (s *annotationService) checkRegionInvariants(result *pipeline.Result) {
	regions := make([]pipeline.Region, len(result.Annotations.Teeth))
	for i, tooth := range result.Annotations.Teeth {
		regions[i] = tooth.Position
	}

	issues := s.regionValidator.ValidateRegions(regions, result.Width, result.Height)
	if len(issues) > 0 {
		logger.WithFields(logrus.Fields{
			"issues": s.regionValidator.ConvertIssuesToMessages(issues),
		}).Warn("Detected regions violate geometric invariants")
	}
}
