package entity

import (
	"context"
	"regexp"

	"github.com/feichai0017/document-intake/internal/models"
)

var (
	// moneyRE captures the numeric part of a dollar amount: optional USD
	// marker, $, digits with optional thousands separators, optional cents.
	moneyRE = regexp.MustCompile(`(?:USD\s?)?\$\s?([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?)`)
	// dateRE matches numeric D/D/D dates with /, . or - separators, or a
	// month name (abbreviated or full) followed by day and 4-digit year.
	dateRE = regexp.MustCompile(`\b(?:\d{1,2}[/.-]){2}\d{2,4}|\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},\s*\d{4}`)
	// emailRE matches the local@domain shape without full RFC validation.
	emailRE = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	// phoneRE matches 10 significant digits with optional country code,
	// parenthesized area code, and space/hyphen separators.
	phoneRE = regexp.MustCompile(`(?:\+?\d{1,3}[\s-]?)?(?:\(\d{3}\)|\d{3})[\s-]?\d{3}[\s-]?\d{4}`)
)

// RegexRecognizer applies the four fixed patterns over the full text. It is
// pure logic and always available.
type RegexRecognizer struct{}

func NewRegexRecognizer() *RegexRecognizer {
	return &RegexRecognizer{}
}

// Recognize returns a map with exactly the four regex labels; each span list
// may be empty but is never nil.
func (r *RegexRecognizer) Recognize(_ context.Context, text string) models.EntityMap {
	return models.EntityMap{
		LabelMoney: findCaptures(moneyRE, text),
		LabelDate:  findMatches(dateRE, text),
		LabelEmail: findMatches(emailRE, text),
		LabelPhone: findMatches(phoneRE, text),
	}
}

func findMatches(re *regexp.Regexp, text string) []string {
	spans := re.FindAllString(text, -1)
	if spans == nil {
		return []string{}
	}
	return spans
}

// findCaptures collects the first capture group of every match, mirroring
// findall semantics for patterns with one group.
func findCaptures(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	spans := make([]string, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, m[1])
	}
	return spans
}
