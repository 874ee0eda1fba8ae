package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feichai0017/document-intake/internal/models"
)

func TestAggregateConfidenceEmpty(t *testing.T) {
	assert.Equal(t, 0.0, AggregateConfidence(models.ConfidenceMap{}))
	assert.Equal(t, 0.0, AggregateConfidence(nil))
}

func TestAggregateConfidenceMean(t *testing.T) {
	conf := models.ConfidenceMap{"a": 1.0, "b": 0.0}
	assert.Equal(t, 0.5, AggregateConfidence(conf))

	conf = models.ConfidenceMap{"a": 0.85, "b": 0.85, "c": 0.9, "d": 0.92}
	assert.InDelta(t, 0.88, AggregateConfidence(conf), 1e-9)
}

func TestRouteDecision(t *testing.T) {
	assert.Equal(t, models.RouteAutoApprove, RouteDecision(0.90, false))
	assert.Equal(t, models.RouteHumanReview, RouteDecision(0.90, true))
	assert.Equal(t, models.RouteHumanReview, RouteDecision(0.80, false))
}

func TestRouteDecisionBoundaries(t *testing.T) {
	// Thresholds are exclusive: exactly meeting the bar auto-approves.
	assert.Equal(t, models.RouteAutoApprove, RouteDecision(0.88, false))
	assert.Equal(t, models.RouteAutoApprove, RouteDecision(0.95, true))
	assert.Equal(t, models.RouteHumanReview, RouteDecision(0.9499, true))
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 0.667, round3(2.0/3.0))
	assert.Equal(t, 0.88, round3(0.88))
	assert.Equal(t, 0.0, round3(0.0))
}
