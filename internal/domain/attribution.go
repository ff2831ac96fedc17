package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConfidenceLevel is a monotonic bucketing of the attribution confidence
// score. The buckets never overlap: a given score maps to exactly one level.
type ConfidenceLevel string

const (
	ConfidenceDeterministic ConfidenceLevel = "DETERMINISTIC"
	ConfidenceHigh          ConfidenceLevel = "HIGH"
	ConfidenceMedium        ConfidenceLevel = "MEDIUM"
	ConfidenceLow           ConfidenceLevel = "LOW"
	ConfidenceNone          ConfidenceLevel = "NONE"
)

func (l ConfidenceLevel) String() string { return string(l) }

func (l ConfidenceLevel) IsValid() bool {
	switch l {
	case ConfidenceDeterministic, ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceNone:
		return true
	}
	return false
}

// ConfidenceLevelFor buckets a confidence score into its level.
// Boundaries: 1.0 → DETERMINISTIC, [0.85, 1.0) → HIGH, [0.60, 0.85) → MEDIUM,
// (0, 0.60) → LOW, 0 → NONE.
func ConfidenceLevelFor(score float64) ConfidenceLevel {
	switch {
	case score >= 1.0:
		return ConfidenceDeterministic
	case score >= 0.85:
		return ConfidenceHigh
	case score >= 0.60:
		return ConfidenceMedium
	case score > 0:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// AttributionMethod identifies which waterfall step produced a result.
type AttributionMethod string

const (
	MethodClickID             AttributionMethod = "click_id"
	MethodRefcodeExact        AttributionMethod = "refcode_exact"
	MethodRefcodeRule         AttributionMethod = "refcode_rule"
	MethodRefcodeMapping      AttributionMethod = "refcode_mapping"
	MethodRefcodeFuzzy        AttributionMethod = "refcode_fuzzy"
	MethodTemporalCorrelation AttributionMethod = "temporal_correlation"
	MethodNone                AttributionMethod = "none"
)

func (m AttributionMethod) String() string { return string(m) }

// Attribution tiers. Tier number is non-decreasing as confidence decreases;
// tier 0 means no signal at all.
const (
	TierDeterministic = 1
	TierRule          = 2
	TierMedium        = 3
	TierTemporal      = 4
	TierNone          = 0
)

// PlatformUnattributed is the platform value for tier-0 results.
const PlatformUnattributed = "unattributed"

// PlatformMeta is the platform inferred from click identifiers and
// temporal spend correlation.
const PlatformMeta = "meta"

// AttributionResult is the outcome of one waterfall evaluation for one
// transaction. It is recomputed on demand; callers decide persistence.
type AttributionResult struct {
	Platform          string
	ConfidenceScore   float64 // always within [0, 1]
	ConfidenceLevel   ConfidenceLevel
	Method            AttributionMethod
	Tier              int
	MatchedAdID       *string
	MatchedCampaignID *string
	RuleName          *string
	// FormHint carries contribution-form SMS pattern metadata. It is
	// informational only and never participates in tier ordering.
	FormHint *string
}

// Unattributed returns the terminal tier-0 result. Absence of any signal is
// a valid outcome, not an error.
func Unattributed() AttributionResult {
	return AttributionResult{
		Platform:        PlatformUnattributed,
		ConfidenceScore: 0,
		ConfidenceLevel: ConfidenceNone,
		Method:          MethodNone,
		Tier:            TierNone,
	}
}

// RefcodeMapping maps a refcode string to its marketing source for one
// organization. AdID presence means the mapping was URL-verified during the
// ad-platform sync, which is the deterministic signal; mappings without an
// AdID only identify the platform. The same refcode can be reassigned
// between campaigns over time, hence the validity window.
type RefcodeMapping struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Refcode        string // stored normalized (lowercase)
	Platform       string
	CampaignID     *string
	AdID           *string
	CreativeID     *string
	FirstSeen      time.Time
	LastSeen       time.Time
	IsActive       bool
}

// MatchesAt reports whether the mapping's validity window covers t.
// A zero LastSeen means the mapping is still current.
func (m *RefcodeMapping) MatchesAt(t time.Time) bool {
	if !m.IsActive {
		return false
	}
	if t.Before(m.FirstSeen) {
		return false
	}
	if m.LastSeen.IsZero() {
		return true
	}
	return !t.After(m.LastSeen)
}

// RuleType selects how an AttributionRule pattern is applied.
type RuleType string

const (
	RulePrefix   RuleType = "PREFIX"
	RuleSuffix   RuleType = "SUFFIX"
	RuleContains RuleType = "CONTAINS"
	RuleExact    RuleType = "EXACT"
	RuleRegex    RuleType = "REGEX"
)

func (r RuleType) String() string { return string(r) }

func (r RuleType) IsValid() bool {
	switch r {
	case RulePrefix, RuleSuffix, RuleContains, RuleExact, RuleRegex:
		return true
	}
	return false
}

// AttributionRule is an admin-defined refcode pattern. Rules are evaluated
// in ascending Priority order; the first match wins. Confidence comes from
// the rule itself and is expected within [0.85, 0.95].
type AttributionRule struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	Name            string
	Pattern         string
	RuleType        RuleType
	Platform        string
	ConfidenceScore float64
	Priority        int
	IsActive        bool
}

// CampaignSpend is one ad campaign's spend on one calendar date, used only
// for the tier-4 temporal fallback.
type CampaignSpend struct {
	OrganizationID uuid.UUID
	CampaignID     string
	Date           time.Time
	SpendCents     int64
}
