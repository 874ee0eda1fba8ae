package pipeline

import (
	"math"

	"github.com/feichai0017/document-intake/internal/models"
)

// Routing thresholds. Business-critical documents must clear the higher bar
// before auto-approval.
const (
	MinRouteConfidence      = 0.88
	CriticalRouteConfidence = 0.95
)

// AggregateConfidence reduces a per-field confidence map to its arithmetic
// mean; an empty map scores 0.0.
func AggregateConfidence(conf models.ConfidenceMap) float64 {
	if len(conf) == 0 {
		return 0.0
	}

	var sum float64
	for _, v := range conf {
		sum += v
	}
	return sum / float64(len(conf))
}

// RouteDecision applies the threshold policy to the aggregate confidence.
func RouteDecision(docConfidence float64, businessCritical bool) models.Route {
	if businessCritical && docConfidence < CriticalRouteConfidence {
		return models.RouteHumanReview
	}
	if docConfidence < MinRouteConfidence {
		return models.RouteHumanReview
	}
	return models.RouteAutoApprove
}

// round3 rounds to 3 decimal places for inclusion in the final record.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
