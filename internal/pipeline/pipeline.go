package pipeline

import (
	"context"
	"time"

	"go-dental-annotator/internal/observer"
	"go-dental-annotator/internal/strategy"
	"go-dental-annotator/pkg/models"
)

// Processor runs the full annotation pipeline over raw image bytes:
// decode -> enhance -> detect -> label -> annotate -> encode.
type Processor interface {
	Process(ctx context.Context, data []byte) (*Result, error)
}

// Result is the terminal record of one pipeline invocation: the annotated
// image as PNG bytes plus the structured region descriptor. It is built
// once and never mutated afterward.
type Result struct {
	ImageBytes  []byte
	Annotations models.Annotations

	// Width and Height are the source image dimensions, carried for
	// callers that need to relate regions back to the image.
	Width  int
	Height int
}

// processor holds the pipeline configuration. It keeps no per-invocation
// state, so one processor is safe for concurrent use; every stage allocates
// its own matrices.
type processor struct {
	opts    Options
	labeler strategy.LabelingStrategy
	events  observer.Subject
}

// NewProcessor creates a pipeline processor. A nil labeler defaults to
// left-to-right positional numbering, and a nil subject disables stage
// events.
func NewProcessor(opts Options, labeler strategy.LabelingStrategy, events observer.Subject) Processor {
	if labeler == nil {
		labeler = strategy.NewPositionalLabeling()
	}
	return &processor{
		opts:    opts,
		labeler: labeler,
		events:  events,
	}
}

// Process sequences the pipeline stages and assembles the result record.
// Any stage error aborts the invocation; no partial result is returned.
func (p *processor) Process(ctx context.Context, data []byte) (*Result, error) {
	start := time.Now()
	p.notify(ctx, observer.PipelineEvent{
		EventType: observer.PipelineStarted,
		Timestamp: start,
		Success:   true,
		Metadata:  map[string]interface{}{"input_bytes": len(data)},
	})

	original, err := Decode(data)
	if err != nil {
		return nil, p.fail(ctx, "decode", start, err)
	}
	p.stageDone(ctx, "decode", start, map[string]interface{}{
		"width":  original.Bounds().Dx(),
		"height": original.Bounds().Dy(),
	})

	enhanced, err := Enhance(original)
	if err != nil {
		return nil, p.fail(ctx, "enhance", start, err)
	}
	p.stageDone(ctx, "enhance", start, nil)

	regions, err := DetectRegions(enhanced, p.opts)
	if err != nil {
		return nil, p.fail(ctx, "detect", start, err)
	}
	p.stageDone(ctx, "detect", start, map[string]interface{}{"regions": len(regions)})

	labels := p.labeler.AssignLabels(regions)

	annotated, err := Annotate(original, regions, labels)
	if err != nil {
		return nil, p.fail(ctx, "annotate", start, err)
	}
	p.stageDone(ctx, "annotate", start, nil)

	encoded, err := EncodePNG(annotated)
	if err != nil {
		return nil, p.fail(ctx, "encode", start, err)
	}

	teeth := make([]models.Tooth, len(regions))
	for i, region := range regions {
		teeth[i] = models.Tooth{
			Number:   labels[i],
			Position: region,
		}
	}

	result := &Result{
		ImageBytes: encoded,
		Annotations: models.Annotations{
			TeethCount: len(regions),
			Teeth:      teeth,
		},
		Width:  original.Bounds().Dx(),
		Height: original.Bounds().Dy(),
	}

	p.notify(ctx, observer.PipelineEvent{
		EventType: observer.PipelineCompleted,
		Timestamp: time.Now(),
		Duration:  time.Since(start),
		Success:   true,
		Metadata:  map[string]interface{}{"teeth_count": len(regions)},
	})
	return result, nil
}

func (p *processor) stageDone(ctx context.Context, stage string, start time.Time, metadata map[string]interface{}) {
	p.notify(ctx, observer.PipelineEvent{
		EventType: observer.StageCompleted,
		Timestamp: time.Now(),
		Stage:     stage,
		Duration:  time.Since(start),
		Success:   true,
		Metadata:  metadata,
	})
}

func (p *processor) fail(ctx context.Context, stage string, start time.Time, err error) error {
	p.notify(ctx, observer.PipelineEvent{
		EventType:    observer.PipelineFailed,
		Timestamp:    time.Now(),
		Stage:        stage,
		Duration:     time.Since(start),
		Success:      false,
		ErrorMessage: err.Error(),
	})
	return err
}

func (p *processor) notify(ctx context.Context, event observer.PipelineEvent) {
	if p.events != nil {
		p.events.NotifyObservers(ctx, event)
	}
}
