package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feichai0017/document-intake/internal/models"
)

func TestClassifyInvoice(t *testing.T) {
	text := "INVOICE\nBill To: Someone\nSubtotal $10\nTax $1\nTotal $11"
	assert.Equal(t, models.ClassInvoice, Classify(text))
}

func TestClassifyForm(t *testing.T) {
	text := "Registration Form\nName: Jane\nEmail jane@example.com\nPhone 555\nAddress 1 Main St"
	assert.Equal(t, models.ClassForm, Classify(text))
}

func TestClassifyContract(t *testing.T) {
	text := "This agreement is made between each party; the contract term begins on the effective date."
	assert.Equal(t, models.ClassContract, Classify(text))
}

func TestClassifyNoHints(t *testing.T) {
	assert.Equal(t, models.ClassUnknown, Classify("the quick brown fox jumps over the lazy dog"))
}

func TestClassifyEmptyText(t *testing.T) {
	// Callers short-circuit empty text before classification, but the scan
	// degrades to unknown anyway.
	assert.Equal(t, models.ClassUnknown, Classify(""))
}

func TestClassifyTieBreak(t *testing.T) {
	// One invoice hint and one form hint: invoice wins the tie.
	assert.Equal(t, models.ClassInvoice, Classify("invoice email"))
	// One form hint and one contract hint: form wins the tie.
	assert.Equal(t, models.ClassForm, Classify("phone party"))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	assert.Equal(t, models.ClassInvoice, Classify("AMOUNT DUE: $5 SUBTOTAL"))
}
