package mapping

import (
	"regexp"
	"strings"

	"github.com/feichai0017/document-intake/internal/entity"
	"github.com/feichai0017/document-intake/internal/models"
)

var (
	companyRE   = regexp.MustCompile(`(?i)(?:company|vendor|bill from)[:\s]+([A-Za-z0-9&.,'\-\s]{3,})`)
	invoiceNoRE = regexp.MustCompile(`(?i)(invoice\s*(?:no|number|#)[:\s]*)([A-Za-z0-9-]+)`)
)

func mapInvoice(text string, ents models.EntityMap) models.FieldMap {
	fields := models.FieldMap{}

	if m := companyRE.FindStringSubmatch(text); m != nil {
		fields["company_name"] = strings.TrimSpace(m[1])
	}
	if m := invoiceNoRE.FindStringSubmatch(text); m != nil {
		fields["invoice_number"] = strings.TrimSpace(m[2])
	}

	fields["invoice_date"] = firstSpan(ents, entity.LabelDate)
	fields["total_amount"] = maxSpan(ents, entity.LabelMoney)
	return fields
}

// firstSpan returns the first recognized span for label, or nil when none
// matched.
func firstSpan(ents models.EntityMap, label string) any {
	if spans := ents[label]; len(spans) > 0 {
		return spans[0]
	}
	return nil
}

// maxSpan returns the lexicographically largest span for label, or nil.
// The string comparison is deliberate: it reproduces the historical selection
// behavior, under which "999.00" outranks "1000.00". Do not switch this to a
// numeric comparison without a stakeholder decision.
func maxSpan(ents models.EntityMap, label string) any {
	spans := ents[label]
	if len(spans) == 0 {
		return nil
	}

	max := spans[0]
	for _, s := range spans[1:] {
		if s > max {
			max = s
		}
	}
	return max
}
