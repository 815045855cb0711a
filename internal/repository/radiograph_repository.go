package repository

import (
	"context"

	"go-dental-annotator/internal/storage"
	"go-dental-annotator/pkg/validation"
)

// HTTPRadiographRepository implements RadiographRepository using HTTP storage
type HTTPRadiographRepository struct {
	fetcher   storage.RadiographFetcher
	validator *validation.URLValidator
}

// NewHTTPRadiographRepository creates a new HTTP-based radiograph repository
func NewHTTPRadiographRepository(fetcher storage.RadiographFetcher) RadiographRepository {
	return &HTTPRadiographRepository{
		fetcher:   fetcher,
		validator: validation.NewURLValidator(),
	}
}

// FetchRadiograph retrieves raw radiograph bytes from a URL
func (r *HTTPRadiographRepository) FetchRadiograph(ctx context.Context, imageURL string) ([]byte, error) {
	return r.fetcher.FetchRadiograph(ctx, imageURL)
}

// ValidateImageURL validates if the provided URL is acceptable
func (r *HTTPRadiographRepository) ValidateImageURL(imageURL string) error {
	if imageURL == "" {
		return ErrInvalidImageURL
	}
	return r.validator.Validate(imageURL)
}
