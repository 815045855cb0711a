package factory

import (
	"fmt"

	"go-dental-annotator/internal/config"
	"go-dental-annotator/internal/logger"
	"go-dental-annotator/internal/observer"
	"go-dental-annotator/internal/pipeline"
	"go-dental-annotator/internal/storage"
	"go-dental-annotator/internal/strategy"
	"go-dental-annotator/pkg/validation"
)

// StorageType represents different types of storage backends
type StorageType string

const (
	// HTTPStorage for HTTP-based radiograph fetching
	HTTPStorage StorageType = "http"
	// LocalStorage for local file system
	LocalStorage StorageType = "local"
)

// PipelineFactory assembles pipeline processors from configuration
type PipelineFactory interface {
	CreateProcessor(cfg *config.Config) (pipeline.Processor, observer.Subject)
}

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateStorage(storageType StorageType, cfg *config.Config) (storage.RadiographFetcher, error)
}

// pipelineFactory implements PipelineFactory
type pipelineFactory struct{}

// NewPipelineFactory creates a new pipeline factory
func NewPipelineFactory() PipelineFactory {
	return &pipelineFactory{}
}

// CreateProcessor builds a processor from the configured detection
// constants and labeling order, wired to logging and metrics observers.
func (f *pipelineFactory) CreateProcessor(cfg *config.Config) (pipeline.Processor, observer.Subject) {
	opts := pipeline.DefaultOptions().
		WithThreshold(cfg.BinaryThreshold).
		WithSizeWindow(cfg.MinRegionSize, cfg.MaxRegionSize)

	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(observer.NewMetricsObserver())

	labeler := strategy.ForLegacyOrder(cfg.LegacyLabelOrder)
	return pipeline.NewProcessor(opts, labeler, events), events
}

// RegionValidatorFromConfig builds a region validator matching the
// configured size window so invariant checks agree with the detector.
func RegionValidatorFromConfig(cfg *config.Config) *validation.RegionValidator {
	return validation.NewRegionValidatorWithThresholds(validation.RegionThresholds{
		MinSize: cfg.MinRegionSize,
		MaxSize: cfg.MaxRegionSize,
	})
}

// storageFactory implements StorageFactory
type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateStorage creates a storage implementation based on the specified type
func (f *storageFactory) CreateStorage(storageType StorageType, cfg *config.Config) (storage.RadiographFetcher, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPRadiographFetcher(cfg.ImageFetchTimeout, cfg.MaxRequestBodySize), nil
	case LocalStorage:
		// TODO: Implement local storage when needed
		return nil, fmt.Errorf("local storage not yet implemented")
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	PipelineFactory PipelineFactory
	StorageFactory  StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		PipelineFactory: NewPipelineFactory(),
		StorageFactory:  NewStorageFactory(),
	}
}
