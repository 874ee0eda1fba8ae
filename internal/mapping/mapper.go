// Package mapping turns free text and recognized entities into schema-shaped
// field maps, dispatched on the document class.
package mapping

import (
	"github.com/feichai0017/document-intake/internal/models"
)

// InvoiceSchema lists the fields an invoice record must carry.
var InvoiceSchema = models.FieldSchema{
	"company_name":   {Required: true},
	"invoice_number": {Required: true},
	"invoice_date":   {Required: true},
	"total_amount":   {Required: true},
}

// SchemaFor returns the schema for classes that have one. Classes without a
// schema use the raw-excerpt fallback scoring instead of validation.
func SchemaFor(class models.DocumentClass) (models.FieldSchema, bool) {
	if class == models.ClassInvoice {
		return InvoiceSchema, true
	}
	return nil, false
}

// Map builds the field map for a document. The switch is exhaustive over the
// closed class set; every non-invoice class shares the raw-excerpt fallback.
func Map(class models.DocumentClass, text string, ents models.EntityMap) models.FieldMap {
	switch class {
	case models.ClassInvoice:
		return mapInvoice(text, ents)
	case models.ClassForm, models.ClassContract, models.ClassUnknown:
		return mapFallback(text)
	default:
		return mapFallback(text)
	}
}
