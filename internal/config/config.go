package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Attribution AttributionConfig `yaml:"attribution"`
	Trend       TrendConfig       `yaml:"trend"`
	Log         LogConfig         `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AttributionConfig holds the attribution waterfall's policy constants.
// Every threshold here is a product decision, not an algorithmic invariant,
// so all of them are tunable without touching the resolver.
type AttributionConfig struct {
	// FuzzyThreshold is the minimum similarity for a tier-3 fuzzy refcode
	// match. Similarity at or below the threshold falls through to tier 4.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold" env:"ATTR_FUZZY_THRESHOLD" env-default:"0.6"`
	// FuzzyConfidenceCap caps fuzzy confidence below exact-match confidence.
	FuzzyConfidenceCap float64 `yaml:"fuzzy_confidence_cap" env:"ATTR_FUZZY_CONFIDENCE_CAP" env-default:"0.80"`
	// MappingConfidence is the score for an exact mapping match without an
	// ad_id (platform known, not ad-specific).
	MappingConfidence float64 `yaml:"mapping_confidence" env:"ATTR_MAPPING_CONFIDENCE" env-default:"0.75"`
	// TemporalConfidence is the score for the tier-4 spend-correlation
	// fallback.
	TemporalConfidence float64 `yaml:"temporal_confidence" env:"ATTR_TEMPORAL_CONFIDENCE" env-default:"0.40"`
	// BatchConcurrency bounds parallel per-row evaluation in ResolveBatch.
	BatchConcurrency int `yaml:"batch_concurrency" env:"ATTR_BATCH_CONCURRENCY" env-default:"8"`
}

// TrendConfig holds the trend engine's policy constants.
type TrendConfig struct {
	// VelocityThreshold and MinDailyCount form the "sustained growth"
	// trending conjunct; BurstSixHourCount is the "sudden burst" disjunct.
	VelocityThreshold float64 `yaml:"velocity_threshold"   env:"TREND_VELOCITY_THRESHOLD"   env-default:"50"`
	MinDailyCount     int     `yaml:"min_daily_count"      env:"TREND_MIN_DAILY_COUNT"      env-default:"3"`
	BurstSixHourCount int     `yaml:"burst_six_hour_count" env:"TREND_BURST_SIX_HOUR"       env-default:"5"`
	// BreakingVelocity is the minimum velocity for promoting a trending,
	// tier-1/2-corroborated topic to breaking.
	BreakingVelocity float64 `yaml:"breaking_velocity" env:"TREND_BREAKING_VELOCITY" env-default:"100"`
	// StaleAfter is how long without new evidence before a trend's quality
	// score takes the staleness penalty.
	StaleAfter time.Duration `yaml:"stale_after" env:"TREND_STALE_AFTER" env-default:"12h"`
	// MinEvidenceCount is the evidence floor below which quality is
	// penalized.
	MinEvidenceCount int `yaml:"min_evidence_count" env:"TREND_MIN_EVIDENCE_COUNT" env-default:"3"`
	// LookbackWindow bounds which topics a recompute run considers active.
	LookbackWindow time.Duration `yaml:"lookback_window" env:"TREND_LOOKBACK_WINDOW" env-default:"24h"`
	// RecomputeTimeout is the wall-clock budget for one recompute run.
	RecomputeTimeout time.Duration `yaml:"recompute_timeout" env:"TREND_RECOMPUTE_TIMEOUT" env-default:"5m"`
	// Concurrency bounds parallel per-topic recomputation.
	Concurrency int `yaml:"concurrency" env:"TREND_CONCURRENCY" env-default:"4"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
