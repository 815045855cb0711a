package container

import (
	"fmt"
	"net/http"

	"go-dental-annotator/internal/config"
	"go-dental-annotator/internal/factory"
	"go-dental-annotator/internal/observer"
	"go-dental-annotator/internal/pipeline"
	"go-dental-annotator/internal/repository"
	"go-dental-annotator/internal/service"
	"go-dental-annotator/internal/storage"
	"go-dental-annotator/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config            *config.Config
	radiographFetcher storage.RadiographFetcher
	processor         pipeline.Processor
	events            observer.Subject
	radiographRepo    repository.RadiographRepository
	annotationService service.AnnotationService
	handler           http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	factories := factory.NewComponentFactory()

	radiographFetcher, err := factories.StorageFactory.CreateStorage(factory.HTTPStorage, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	processor, events := factories.PipelineFactory.CreateProcessor(cfg)

	radiographRepo := repository.NewHTTPRadiographRepository(radiographFetcher)
	annotationService := service.NewAnnotationService(
		radiographRepo, processor, factory.RegionValidatorFromConfig(cfg))
	handler := transport.NewHandler(annotationService, cfg)

	return &Container{
		config:            cfg,
		radiographFetcher: radiographFetcher,
		processor:         processor,
		events:            events,
		radiographRepo:    radiographRepo,
		annotationService: annotationService,
		handler:           handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
