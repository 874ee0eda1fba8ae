package entity

import (
	"context"

	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/pkg/logger"
)

// ModelRecognizer layers model-derived entities with the regex set. Model
// spans come first per label, regex spans are appended after them; duplicates
// across the two layers are kept.
type ModelRecognizer struct {
	model  Model
	regex  *RegexRecognizer
	logger logger.Logger
}

func NewModelRecognizer(model Model, log logger.Logger) *ModelRecognizer {
	return &ModelRecognizer{
		model:  model,
		regex:  NewRegexRecognizer(),
		logger: log,
	}
}

func (r *ModelRecognizer) Recognize(ctx context.Context, text string) models.EntityMap {
	ents, err := r.model.Entities(ctx, text)
	if err != nil {
		// Model trouble degrades to the regex layer alone.
		r.logger.Warn("NER model call failed, using regex entities only",
			logger.Error(err),
		)
		ents = nil
	}
	if ents == nil {
		ents = models.EntityMap{}
	}

	for label, spans := range r.regex.Recognize(ctx, text) {
		ents[label] = append(ents[label], spans...)
	}
	return ents
}
