package mapping

import (
	"github.com/feichai0017/document-intake/internal/models"
)

// excerptLimit caps the raw-excerpt capture at 500 characters.
const excerptLimit = 500

// ExcerptConfidence scores a non-empty raw excerpt; empty text scores zero.
const ExcerptConfidence = 0.6

func mapFallback(text string) models.FieldMap {
	runes := []rune(text)
	if len(runes) > excerptLimit {
		runes = runes[:excerptLimit]
	}
	return models.FieldMap{"raw_excerpt": string(runes)}
}
