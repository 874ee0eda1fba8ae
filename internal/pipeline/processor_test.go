package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/document-intake/internal/enrich"
	"github.com/feichai0017/document-intake/internal/entity"
	"github.com/feichai0017/document-intake/internal/extract"
	"github.com/feichai0017/document-intake/internal/extract/text"
	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/pkg/logger"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()

	log := logger.NewTestLogger()
	registry := extract.NewRegistry(log)
	registry.Register(models.KindText, text.NewExtractor())

	return NewProcessor(registry, entity.NewRegexRecognizer(), enrich.NewEnricher(), log)
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProcessInvoiceEndToEnd(t *testing.T) {
	path := writeDoc(t, "invoice.txt",
		"Invoice\nBill From: Acme Corp\nInvoice Number: INV-77\nTotal $500.00\nDate: Jan 5, 2024")

	rec := newTestProcessor(t).Process(context.Background(), path)

	assert.Equal(t, path, rec.Path)
	assert.Equal(t, models.ClassInvoice, rec.Class)

	company, ok := rec.Fields["company_name"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(company, "Acme Corp"), "got %q", company)
	assert.Equal(t, "INV-77", rec.Fields["invoice_number"])
	assert.Equal(t, "Jan 5, 2024", rec.Fields["invoice_date"])
	assert.Equal(t, "500.00", rec.Fields["total_amount"])

	assert.True(t, rec.Valid)
	assert.InDelta(t, 0.88, rec.DocumentConfidence, 1e-9)
	assert.Equal(t, models.RouteAutoApprove, rec.Route)
	assert.True(t, strings.HasSuffix(rec.ProcessedAt, "Z"))
}

func TestProcessInvoiceMissingFieldsRoutesToReview(t *testing.T) {
	// Classifies as invoice but carries no extractable fields: every required
	// field scores 0.0 and the record goes to a human.
	path := writeDoc(t, "broken.txt", "invoice subtotal tax")

	rec := newTestProcessor(t).Process(context.Background(), path)

	assert.Equal(t, models.ClassInvoice, rec.Class)
	assert.False(t, rec.Valid)
	assert.Equal(t, 0.0, rec.DocumentConfidence)
	assert.Equal(t, models.RouteHumanReview, rec.Route)
	for name, c := range rec.FieldConfidence {
		assert.Equal(t, 0.0, c, name)
	}
}

func TestProcessUnknownExtension(t *testing.T) {
	path := writeDoc(t, "mystery.bin", "some bytes")

	rec := newTestProcessor(t).Process(context.Background(), path)

	assert.Equal(t, models.ClassUnknown, rec.Class)
	assert.Equal(t, "", rec.Fields["raw_excerpt"])
	assert.Equal(t, 0.0, rec.FieldConfidence["raw_excerpt"])
	assert.Equal(t, 0.0, rec.DocumentConfidence)
	assert.True(t, rec.Valid)
	assert.Equal(t, models.RouteHumanReview, rec.Route)
}

func TestProcessNonInvoiceTextCapturesExcerpt(t *testing.T) {
	body := "This agreement is made between each party; the contract term begins on the effective date."
	path := writeDoc(t, "contract.txt", body)

	rec := newTestProcessor(t).Process(context.Background(), path)

	assert.Equal(t, models.ClassContract, rec.Class)
	assert.Equal(t, body, rec.Fields["raw_excerpt"])
	assert.Equal(t, 0.6, rec.FieldConfidence["raw_excerpt"])
	assert.Equal(t, 0.6, rec.DocumentConfidence)
	assert.Equal(t, models.RouteHumanReview, rec.Route)
}

func TestProcessEnrichment(t *testing.T) {
	// Vendor label on the last line so the greedy name capture stops at the
	// end of input and matches the reference table exactly.
	path := writeDoc(t, "invoice.txt",
		"Invoice subtotal\nInvoice Number: 9\nTotal $12.00\nDate 01/02/2024\nVendor: myOnsite Healthcare LLC")

	rec := newTestProcessor(t).Process(context.Background(), path)

	require.Equal(t, models.ClassInvoice, rec.Class)
	assert.Equal(t, "VEND-001", rec.Fields["vendor_id"])
	assert.Equal(t, "healthcare", rec.Fields["domain"])
	// Enrichment adds fields but never touches their confidence map.
	assert.NotContains(t, rec.FieldConfidence, "vendor_id")
}

func TestProcessIdempotent(t *testing.T) {
	path := writeDoc(t, "invoice.txt",
		"Invoice\nBill From: Acme Corp\nInvoice Number: INV-77\nTotal $500.00\nDate: Jan 5, 2024")

	p := newTestProcessor(t)
	first := p.Process(context.Background(), path)
	second := p.Process(context.Background(), path)

	first.ProcessedAt = ""
	second.ProcessedAt = ""
	assert.Equal(t, first, second)
}

func TestProcessMissingFileDegradesToEmpty(t *testing.T) {
	rec := newTestProcessor(t).Process(context.Background(), "/does/not/exist.txt")

	assert.Equal(t, models.ClassUnknown, rec.Class)
	assert.Equal(t, "", rec.Fields["raw_excerpt"])
	assert.Equal(t, models.RouteHumanReview, rec.Route)
}
