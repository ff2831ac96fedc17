package domain

import (
	"strings"
	"time"
)

// SourceTier ranks the authority of a publication that produced evidence.
type SourceTier string

const (
	SourceTier1 SourceTier = "TIER1" // official / government sources
	SourceTier2 SourceTier = "TIER2" // national news
	SourceTier3 SourceTier = "TIER3" // issue specialists
)

func (t SourceTier) String() string { return string(t) }

func (t SourceTier) IsValid() bool {
	switch t {
	case SourceTier1, SourceTier2, SourceTier3:
		return true
	}
	return false
}

// Evidence is a single timestamped mention of a topic in an ingested
// document. Append-only: evidence ages out of rolling windows by time,
// never by deletion.
type Evidence struct {
	Topic      string // canonical topic key (normalized)
	Source     string
	SourceTier SourceTier
	Sentiment  float64 // [-1, 1]
	DocumentID string
	ObservedAt time.Time
}

// LabelQuality classifies how a trend's display label was produced.
type LabelQuality string

const (
	LabelEventPhrase       LabelQuality = "EVENT_PHRASE"       // extracted multi-word phrase
	LabelEntityOnly        LabelQuality = "ENTITY_ONLY"        // single bare entity
	LabelFallbackGenerated LabelQuality = "FALLBACK_GENERATED" // derived mechanically from a headline
)

func (q LabelQuality) String() string { return string(q) }

func (q LabelQuality) IsValid() bool {
	switch q {
	case LabelEventPhrase, LabelEntityOnly, LabelFallbackGenerated:
		return true
	}
	return false
}

// WindowCounts holds rolling evidence counts for one topic at nested time
// windows, plus per-tier totals over the daily window. Because every window
// is cumulative over the same evidence stream, Weekly >= Daily >= SixHour >=
// OneHour holds by construction.
type WindowCounts struct {
	OneHour    int
	SixHour    int
	Daily      int
	Weekly     int
	Tier1Count int
	Tier2Count int
	Tier3Count int
	LastSeen   time.Time
}

// TrendEvent is the aggregated, scored state of one topic. It is upserted
// per topic on every recompute run; counts are always rebuilt from raw
// evidence, never incrementally patched.
type TrendEvent struct {
	Topic        string
	Label        string
	LabelQuality LabelQuality
	Counts       WindowCounts
	Velocity     float64
	Momentum     float64
	IsTrending   bool
	IsBreaking   bool
	Confidence   float64 // [0, 100]
	QualityScore int     // [0, 100]
	ComputedAt   time.Time
}

// HasTier12Corroboration reports whether any tier-1 or tier-2 source
// mentioned the topic in the daily window.
func (e *TrendEvent) HasTier12Corroboration() bool {
	return e.Counts.Tier1Count+e.Counts.Tier2Count > 0
}

// IsTier3Only reports whether all evidence came from tier-3 sources.
// Tier-3-only topics are suppressed from "breaking" promotion regardless of
// raw velocity.
func (e *TrendEvent) IsTier3Only() bool {
	return e.Counts.Tier3Count > 0 && e.Counts.Tier1Count == 0 && e.Counts.Tier2Count == 0
}

// IsSingleWordLabel reports whether the display label is a bare single word.
func (e *TrendEvent) IsSingleWordLabel() bool {
	return !strings.Contains(strings.TrimSpace(e.Label), " ")
}
