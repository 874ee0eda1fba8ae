// Package pipeline composes extraction, classification, entity recognition,
// field mapping, validation, enrichment and routing into one synchronous
// call per document.
package pipeline

import (
	"context"
	"time"

	"github.com/feichai0017/document-intake/internal/classify"
	"github.com/feichai0017/document-intake/internal/enrich"
	"github.com/feichai0017/document-intake/internal/entity"
	"github.com/feichai0017/document-intake/internal/extract"
	"github.com/feichai0017/document-intake/internal/mapping"
	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/internal/sniff"
	"github.com/feichai0017/document-intake/internal/validate"
	"github.com/feichai0017/document-intake/pkg/logger"
)

// Processor runs the full intake pipeline. It holds no per-call state: the
// registry, recognizer and enricher are read-only, so one Processor may be
// shared across goroutines.
type Processor struct {
	extractors *extract.Registry
	recognizer entity.Recognizer
	enricher   *enrich.Enricher
	logger     logger.Logger
}

func NewProcessor(
	extractors *extract.Registry,
	recognizer entity.Recognizer,
	enricher *enrich.Enricher,
	log logger.Logger,
) *Processor {
	return &Processor{
		extractors: extractors,
		recognizer: recognizer,
		enricher:   enricher,
		logger:     log,
	}
}

// Process runs one document through the pipeline and assembles its record.
// Collaborator failures have already been degraded to empty results before
// they reach this composition; nothing here retries or recovers.
func (p *Processor) Process(ctx context.Context, path string) models.Record {
	kind := sniff.Sniff(path)
	text, tables := p.extractors.Extract(ctx, kind, path)

	class := models.ClassUnknown
	ents := models.EntityMap{}
	if text != "" {
		class = classify.Classify(text)
		ents = p.recognizer.Recognize(ctx, text)
	}

	fields := mapping.Map(class, text, ents)

	var (
		valid bool
		conf  models.ConfidenceMap
	)
	if schema, ok := mapping.SchemaFor(class); ok {
		valid, conf = validate.Check(fields, schema)
	} else {
		valid = true
		conf = models.ConfidenceMap{"raw_excerpt": 0.0}
		if text != "" {
			conf["raw_excerpt"] = mapping.ExcerptConfidence
		}
	}

	fields = p.enricher.Enrich(fields)
	docConfidence := AggregateConfidence(conf)
	route := RouteDecision(docConfidence, false)

	p.logger.Info("Document processed",
		logger.String("path", path),
		logger.String("kind", string(kind)),
		logger.String("class", string(class)),
		logger.Int("tables", len(tables)),
		logger.Bool("valid", valid),
		logger.Float64("confidence", docConfidence),
		logger.String("route", string(route)),
	)

	return models.Record{
		Path:               path,
		Class:              class,
		Fields:             fields,
		FieldConfidence:    conf,
		DocumentConfidence: round3(docConfidence),
		Valid:              valid,
		Route:              route,
		ProcessedAt:        nowISO(),
	}
}

// nowISO formats the current UTC time as ISO-8601 with a trailing Z.
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
}
