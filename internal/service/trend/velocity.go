package trend

import (
	"github.com/rfinnegan/donorlens/internal/domain"
)

// NewTopicVelocityCap is the velocity assigned to a topic with six-hour
// activity but no daily baseline: a brand-new spike has no denominator to
// grow against, so it gets the cap rather than infinity.
const NewTopicVelocityCap = 500

// Velocity is the relative growth of the six-hour mention rate over the
// daily baseline rate, as a percentage. Zero counts everywhere mean zero
// velocity, never a division error.
func Velocity(c domain.WindowCounts) float64 {
	sixHourAvg := float64(c.SixHour) / 6
	dailyAvg := float64(c.Daily) / 24

	switch {
	case dailyAvg > 0:
		return ((sixHourAvg - dailyAvg) / dailyAvg) * 100
	case c.SixHour > 0:
		return NewTopicVelocityCap
	default:
		return 0
	}
}

// growthRatio is the velocity as a plain ratio (velocity / 100).
func growthRatio(c domain.WindowCounts) float64 {
	return Velocity(c) / 100
}

// Momentum is the discrete second derivative of topic growth: the change in
// growth ratio since the previous recompute. It needs a real previous
// baseline on both windows; without one it degrades to the current ratio.
func Momentum(cur domain.WindowCounts, prev *domain.WindowCounts) float64 {
	if prev == nil || prev.SixHour == 0 || prev.Daily == 0 {
		return growthRatio(cur)
	}
	return growthRatio(cur) - growthRatio(*prev)
}

// isTrending applies the dual trending condition: sustained growth
// (velocity over threshold with a minimum daily base) or a sudden six-hour
// burst. Both thresholds are policy constants from config.
func (s *Service) isTrending(velocity float64, c domain.WindowCounts) bool {
	if velocity > s.cfg.VelocityThreshold && c.Daily >= s.cfg.MinDailyCount {
		return true
	}
	return c.SixHour >= s.cfg.BurstSixHourCount
}

// isBreaking promotes a trending topic to breaking only with tier-1/2
// corroboration; tier-3-only topics never promote regardless of velocity.
func (s *Service) isBreaking(ev *domain.TrendEvent) bool {
	return ev.IsTrending &&
		ev.HasTier12Corroboration() &&
		ev.Velocity >= s.cfg.BreakingVelocity
}

// Confidence blends volume and source authority into a 0..100 score:
// daily mention volume contributes up to 50, tier-1/2 corroboration the
// other 50.
func Confidence(c domain.WindowCounts) float64 {
	volume := min(float64(c.Daily)*5, 50)
	authority := min(float64(c.Tier1Count)*15+float64(c.Tier2Count)*10, 50)
	return volume + authority
}
