package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/pkg/logger"
)

func TestRegexRecognize(t *testing.T) {
	text := "Total: $1,234.56 due by 01/02/2024, contact a@b.com or (212) 555-1234"
	ents := NewRegexRecognizer().Recognize(context.Background(), text)

	assert.Equal(t, []string{"1,234.56"}, ents[LabelMoney])
	assert.Equal(t, []string{"01/02/2024"}, ents[LabelDate])
	assert.Equal(t, []string{"a@b.com"}, ents[LabelEmail])
	assert.Equal(t, []string{"(212) 555-1234"}, ents[LabelPhone])
}

func TestRegexRecognizeEmptyLists(t *testing.T) {
	ents := NewRegexRecognizer().Recognize(context.Background(), "nothing to see here")

	require.Len(t, ents, 4)
	for _, label := range []string{LabelMoney, LabelDate, LabelEmail, LabelPhone} {
		spans, ok := ents[label]
		require.True(t, ok, "label %s must always be present", label)
		assert.Empty(t, spans)
	}
}

func TestRegexRecognizeMoneyVariants(t *testing.T) {
	ents := NewRegexRecognizer().Recognize(context.Background(),
		"USD $999.00 then $1,000,000 and $ 42.50")

	assert.Equal(t, []string{"999.00", "1,000,000", "42.50"}, ents[LabelMoney])
}

func TestRegexRecognizeDateVariants(t *testing.T) {
	ents := NewRegexRecognizer().Recognize(context.Background(),
		"Dated 3-4-99 or December 12, 2023 or Jan 5, 2024")

	assert.Equal(t, []string{"3-4-99", "December 12, 2023", "Jan 5, 2024"}, ents[LabelDate])
}

type fakeModel struct {
	ents models.EntityMap
	err  error
}

func (m *fakeModel) Entities(_ context.Context, _ string) (models.EntityMap, error) {
	return m.ents, m.err
}

func TestModelRecognizerAppendsRegexSpans(t *testing.T) {
	model := &fakeModel{ents: models.EntityMap{
		"ORG":      {"Acme Corp"},
		LabelMoney: {"1,234.56"},
	}}
	rec := NewModelRecognizer(model, logger.NewTestLogger())

	ents := rec.Recognize(context.Background(), "Total: $1,234.56")

	assert.Equal(t, []string{"Acme Corp"}, ents["ORG"])
	// Model span first, regex span appended, duplicate kept.
	assert.Equal(t, []string{"1,234.56", "1,234.56"}, ents[LabelMoney])
	assert.Empty(t, ents[LabelPhone])
}

func TestModelRecognizerDegradesOnModelError(t *testing.T) {
	rec := NewModelRecognizer(&fakeModel{err: errors.New("model down")}, logger.NewTestLogger())

	ents := rec.Recognize(context.Background(), "pay $5,000.00 now")

	assert.Equal(t, []string{"5,000.00"}, ents[LabelMoney])
	assert.NotContains(t, ents, "ORG")
}
