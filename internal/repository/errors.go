package repository

import "errors"

var (
	// ErrInvalidImageURL indicates an invalid radiograph URL
	ErrInvalidImageURL = errors.New("invalid radiograph URL")

	// ErrRadiographNotFound indicates the radiograph was not found
	ErrRadiographNotFound = errors.New("radiograph not found")
)
