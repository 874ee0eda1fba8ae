// Package extract pulls plain text and tabular structures out of document
// files. The Registry is the pipeline's only entry point; it absorbs every
// extraction failure into the empty result so the decision logic downstream
// never handles an extraction error.
package extract

import (
	"context"
	"strings"

	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/pkg/logger"
)

// Extractor handles one content kind.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, []models.Table, error)
}

// Registry maps content kinds to extractors.
type Registry struct {
	extractors map[models.ContentKind]Extractor
	logger     logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		extractors: make(map[models.ContentKind]Extractor),
		logger:     log,
	}
}

func (r *Registry) Register(kind models.ContentKind, e Extractor) {
	r.extractors[kind] = e
}

// Extract runs the extractor registered for kind and trims the text. An
// unregistered kind or a failing extractor degrades to ("", nil); this is the
// contract, not an error path.
func (r *Registry) Extract(ctx context.Context, kind models.ContentKind, path string) (string, []models.Table) {
	e, ok := r.extractors[kind]
	if !ok {
		return "", nil
	}

	text, tables, err := e.Extract(ctx, path)
	if err != nil {
		r.logger.Warn("Extraction failed, degrading to empty result",
			logger.String("path", path),
			logger.String("kind", string(kind)),
			logger.Error(err),
		)
		return "", nil
	}
	return strings.TrimSpace(text), tables
}
