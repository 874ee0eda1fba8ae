package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feichai0017/document-intake/internal/models"
)

func TestCheckAllPresent(t *testing.T) {
	schema := models.FieldSchema{
		"company_name":   {Required: true},
		"invoice_number": {Required: true},
		"invoice_date":   {Required: true},
		"total_amount":   {Required: true},
	}
	fields := models.FieldMap{
		"company_name":   "Acme Corp",
		"invoice_number": "INV-77",
		"invoice_date":   "Jan 5, 2024",
		"total_amount":   "500.00",
	}

	valid, conf := Check(fields, schema)

	assert.True(t, valid)
	assert.Equal(t, 0.85, conf["company_name"])
	assert.Equal(t, 0.85, conf["invoice_number"])
	assert.Equal(t, 0.9, conf["invoice_date"])
	assert.Equal(t, 0.92, conf["total_amount"])
}

func TestCheckRequiredMissing(t *testing.T) {
	schema := models.FieldSchema{
		"company_name": {Required: true},
		"total_amount": {Required: true},
	}
	fields := models.FieldMap{
		"total_amount": "10.00",
	}

	valid, conf := Check(fields, schema)

	assert.False(t, valid)
	assert.Equal(t, 0.0, conf["company_name"])
	assert.Equal(t, 0.92, conf["total_amount"])
}

func TestCheckEmptyValuesAreAbsent(t *testing.T) {
	schema := models.FieldSchema{
		"a": {Required: true},
		"b": {Required: true},
		"c": {Required: true},
		"d": {Required: true},
	}
	fields := models.FieldMap{
		"a": nil,
		"b": "",
		"c": []string{},
		"d": map[string]any{},
	}

	valid, conf := Check(fields, schema)

	assert.False(t, valid)
	for name := range schema {
		assert.Equal(t, 0.0, conf[name], name)
	}
}

func TestCheckOptionalAbsent(t *testing.T) {
	schema := models.FieldSchema{
		"note": {Required: false},
	}

	valid, conf := Check(models.FieldMap{}, schema)

	assert.True(t, valid)
	assert.Equal(t, 0.0, conf["note"])
}

func TestCheckEveryScheduledFieldScored(t *testing.T) {
	schema := models.FieldSchema{
		"one": {Required: false},
		"two": {Required: true},
	}

	_, conf := Check(models.FieldMap{"two": "x"}, schema)

	assert.Len(t, conf, len(schema))
}
