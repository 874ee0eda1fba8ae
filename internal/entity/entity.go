// Package entity extracts labeled text spans (money, dates, emails, phones)
// from document text. Two interchangeable recognizers exist: the always-on
// regex recognizer and a model-augmented recognizer backed by an external
// NER service.
package entity

import (
	"context"

	"github.com/feichai0017/document-intake/internal/models"
)

// Labels produced by the regex recognizer. A model service may add its own.
const (
	LabelMoney = "MONEY"
	LabelDate  = "DATE"
	LabelEmail = "EMAIL"
	LabelPhone = "PHONE"
)

// Recognizer turns document text into an entity map. Implementations never
// fail: degraded collaborators fall back to the regex layer.
type Recognizer interface {
	Recognize(ctx context.Context, text string) models.EntityMap
}

// Model is the injected NER capability. Whether it is present is a
// configuration fact decided at construction time, not a per-call error.
type Model interface {
	Entities(ctx context.Context, text string) (models.EntityMap, error)
}
