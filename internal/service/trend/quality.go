package trend

import (
	"time"

	"github.com/rfinnegan/donorlens/internal/domain"
)

// Quality score penalties. Each one encodes a reason downstream consumers
// would want to filter a trend without re-deriving the underlying flags.
const (
	penaltySingleWordLabel = 15
	penaltyNoTier12        = 20
	penaltyStale           = 25
	penaltyLowEvidence     = 15
	penaltyLowConfidence   = 10
	penaltyEntityOnly      = 10
	penaltyFallbackLabel   = 5

	lowConfidenceFloor = 30
)

// QualityScore rates the trustworthiness of a trend's label and evidence,
// from 100 down, floored at 0.
func (s *Service) QualityScore(ev *domain.TrendEvent, now time.Time) int {
	score := 100

	if ev.IsSingleWordLabel() {
		score -= penaltySingleWordLabel
	}
	if !ev.HasTier12Corroboration() {
		score -= penaltyNoTier12
	}
	if ev.Counts.LastSeen.IsZero() || now.Sub(ev.Counts.LastSeen) > s.cfg.StaleAfter {
		score -= penaltyStale
	}
	if ev.Counts.Daily < s.cfg.MinEvidenceCount {
		score -= penaltyLowEvidence
	}
	if ev.Confidence < lowConfidenceFloor {
		score -= penaltyLowConfidence
	}
	switch ev.LabelQuality {
	case domain.LabelEntityOnly:
		score -= penaltyEntityOnly
	case domain.LabelFallbackGenerated:
		score -= penaltyFallbackLabel
	}

	return max(score, 0)
}
