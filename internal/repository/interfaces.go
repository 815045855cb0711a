package repository

import "context"

// RadiographRepository defines the interface for radiograph data access
type RadiographRepository interface {
	// FetchRadiograph retrieves raw radiograph bytes from a URL
	FetchRadiograph(ctx context.Context, imageURL string) ([]byte, error)

	// ValidateImageURL validates if the provided URL is acceptable
	ValidateImageURL(imageURL string) error
}
