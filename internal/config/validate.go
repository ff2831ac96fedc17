package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Attribution.validate(); err != nil {
		return fmt.Errorf("attribution: %w", err)
	}
	if err := c.Trend.validate(); err != nil {
		return fmt.Errorf("trend: %w", err)
	}
	return nil
}

func (c *AttributionConfig) validate() error {
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold >= 1 {
		return fmt.Errorf("fuzzy_threshold must be in (0, 1) (got %v)", c.FuzzyThreshold)
	}
	if c.FuzzyConfidenceCap <= c.FuzzyThreshold || c.FuzzyConfidenceCap >= 1 {
		return fmt.Errorf("fuzzy_confidence_cap must be in (fuzzy_threshold, 1) (got %v)", c.FuzzyConfidenceCap)
	}
	if c.MappingConfidence <= 0 || c.MappingConfidence >= 1 {
		return fmt.Errorf("mapping_confidence must be in (0, 1) (got %v)", c.MappingConfidence)
	}
	if c.TemporalConfidence <= 0 || c.TemporalConfidence >= c.MappingConfidence {
		return fmt.Errorf("temporal_confidence must be in (0, mapping_confidence) (got %v)", c.TemporalConfidence)
	}
	if c.BatchConcurrency <= 0 {
		return fmt.Errorf("batch_concurrency must be > 0 (got %d)", c.BatchConcurrency)
	}
	return nil
}

func (c *TrendConfig) validate() error {
	if c.VelocityThreshold < 0 {
		return fmt.Errorf("velocity_threshold must be >= 0 (got %v)", c.VelocityThreshold)
	}
	if c.MinDailyCount < 1 {
		return fmt.Errorf("min_daily_count must be >= 1 (got %d)", c.MinDailyCount)
	}
	if c.BurstSixHourCount < 1 {
		return fmt.Errorf("burst_six_hour_count must be >= 1 (got %d)", c.BurstSixHourCount)
	}
	if c.BreakingVelocity < c.VelocityThreshold {
		return fmt.Errorf("breaking_velocity must be >= velocity_threshold (got %v < %v)", c.BreakingVelocity, c.VelocityThreshold)
	}
	if c.StaleAfter <= 0 {
		return fmt.Errorf("stale_after must be > 0 (got %v)", c.StaleAfter)
	}
	if c.MinEvidenceCount < 1 {
		return fmt.Errorf("min_evidence_count must be >= 1 (got %d)", c.MinEvidenceCount)
	}
	if c.LookbackWindow <= 0 {
		return fmt.Errorf("lookback_window must be > 0 (got %v)", c.LookbackWindow)
	}
	if c.RecomputeTimeout <= 0 {
		return fmt.Errorf("recompute_timeout must be > 0 (got %v)", c.RecomputeTimeout)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", c.Concurrency)
	}
	return nil
}
