// Package classify scores document text against per-class keyword hints.
package classify

import (
	"strings"

	"github.com/feichai0017/document-intake/internal/models"
)

var (
	invoiceHints  = []string{"invoice", "amount due", "bill to", "subtotal", "total", "tax"}
	formHints     = []string{"form", "name:", "email", "phone", "address"}
	contractHints = []string{"agreement", "party", "contract", "effective date", "term"}
)

// scanOrder fixes the tie-break: a later class must score strictly higher to
// displace an earlier one, so invoice wins ties against form and contract,
// and form wins ties against contract.
var scanOrder = []struct {
	class models.DocumentClass
	hints []string
}{
	{models.ClassInvoice, invoiceHints},
	{models.ClassForm, formHints},
	{models.ClassContract, contractHints},
}

// Classify counts hint substrings per class over the lower-cased text and
// returns the best-scoring class. A winning count of zero means unknown.
func Classify(text string) models.DocumentClass {
	t := strings.ToLower(text)

	best := models.ClassUnknown
	bestScore := 0
	for _, entry := range scanOrder {
		score := 0
		for _, hint := range entry.hints {
			if strings.Contains(t, hint) {
				score++
			}
		}
		if score > bestScore {
			best = entry.class
			bestScore = score
		}
	}
	return best
}
