package domain

import (
	"testing"
	"time"
)

func TestConfidenceLevelFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score float64
		want  ConfidenceLevel
	}{
		{name: "deterministic at 1.0", score: 1.0, want: ConfidenceDeterministic},
		{name: "high at upper bound", score: 0.95, want: ConfidenceHigh},
		{name: "high at lower bound", score: 0.85, want: ConfidenceHigh},
		{name: "medium just below high", score: 0.849, want: ConfidenceMedium},
		{name: "medium at mapping confidence", score: 0.75, want: ConfidenceMedium},
		{name: "medium at lower bound", score: 0.60, want: ConfidenceMedium},
		{name: "low just below medium", score: 0.599, want: ConfidenceLow},
		{name: "low at temporal confidence", score: 0.40, want: ConfidenceLow},
		{name: "none at zero", score: 0, want: ConfidenceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ConfidenceLevelFor(tt.score); got != tt.want {
				t.Errorf("ConfidenceLevelFor(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

// Bucketing must be monotonic: a higher score never maps to a weaker level.
func TestConfidenceLevelFor_Monotonic(t *testing.T) {
	t.Parallel()

	rank := map[ConfidenceLevel]int{
		ConfidenceNone:          0,
		ConfidenceLow:           1,
		ConfidenceMedium:        2,
		ConfidenceHigh:          3,
		ConfidenceDeterministic: 4,
	}

	prev := rank[ConfidenceLevelFor(0)]
	for s := 1; s <= 100; s++ {
		cur := rank[ConfidenceLevelFor(float64(s) / 100)]
		if cur < prev {
			t.Fatalf("level rank decreased at score %v", float64(s)/100)
		}
		prev = cur
	}
}

func TestUnattributed(t *testing.T) {
	t.Parallel()

	r := Unattributed()
	if r.Platform != PlatformUnattributed {
		t.Errorf("platform = %q", r.Platform)
	}
	if r.ConfidenceScore != 0 || r.ConfidenceLevel != ConfidenceNone || r.Tier != TierNone {
		t.Errorf("unexpected tier-0 result: %+v", r)
	}
}

func TestRefcodeMapping_MatchesAt(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	m := RefcodeMapping{
		Refcode:   "fb_spring24",
		FirstSeen: base,
		LastSeen:  base.AddDate(0, 1, 0),
		IsActive:  true,
	}

	tests := []struct {
		name string
		m    RefcodeMapping
		at   time.Time
		want bool
	}{
		{name: "inside window", m: m, at: base.AddDate(0, 0, 10), want: true},
		{name: "at first seen", m: m, at: base, want: true},
		{name: "at last seen", m: m, at: base.AddDate(0, 1, 0), want: true},
		{name: "before window", m: m, at: base.AddDate(0, 0, -1), want: false},
		{name: "after window", m: m, at: base.AddDate(0, 2, 0), want: false},
		{
			name: "open ended window",
			m:    RefcodeMapping{FirstSeen: base, IsActive: true},
			at:   base.AddDate(5, 0, 0),
			want: true,
		},
		{
			name: "inactive mapping never matches",
			m:    RefcodeMapping{FirstSeen: base, IsActive: false},
			at:   base.AddDate(0, 0, 1),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.m.MatchesAt(tt.at); got != tt.want {
				t.Errorf("MatchesAt(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestRuleType_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rt   RuleType
		want bool
	}{
		{RulePrefix, true},
		{RuleSuffix, true},
		{RuleContains, true},
		{RuleExact, true},
		{RuleRegex, true},
		{RuleType("GLOB"), false},
		{RuleType(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.rt), func(t *testing.T) {
			t.Parallel()
			if got := tt.rt.IsValid(); got != tt.want {
				t.Errorf("RuleType(%q).IsValid() = %v, want %v", tt.rt, got, tt.want)
			}
		})
	}
}
