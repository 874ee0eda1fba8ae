// Package validate checks mapped fields against a class schema and assigns
// per-field confidence scores.
package validate

import (
	"strings"

	"github.com/feichai0017/document-intake/internal/models"
)

// Flat heuristic scores keyed on field-name suffix. These are fixed policy
// constants, not calibrated statistics.
const (
	dateConfidence    = 0.9
	amountConfidence  = 0.92
	defaultConfidence = 0.85
)

// Check scores every schema field and reports overall validity. A required
// field that is missing or empty fails validation and scores 0.0; an absent
// optional field scores 0.0 without failing.
func Check(fields models.FieldMap, schema models.FieldSchema) (bool, models.ConfidenceMap) {
	conf := make(models.ConfidenceMap, len(schema))
	valid := true

	for name, rule := range schema {
		val, ok := fields[name]
		present := ok && isPresent(val)

		switch {
		case rule.Required && !present:
			valid = false
			conf[name] = 0.0
		case present && strings.HasSuffix(name, "date"):
			conf[name] = dateConfidence
		case present && strings.HasSuffix(name, "amount"):
			conf[name] = amountConfidence
		case present:
			conf[name] = defaultConfidence
		default:
			conf[name] = 0.0
		}
	}

	return valid, conf
}

// isPresent reports whether a mapped value counts as filled in. Nil values,
// empty strings, empty slices and empty maps do not.
func isPresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
