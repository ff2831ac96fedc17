package domain

import (
	"strings"
)

// NormalizeRefcode prepares a refcode for comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//
// Refcodes are matched case-insensitively throughout the waterfall, so every
// comparison goes through this function on both sides. An empty result means
// the transaction carries no usable refcode.
func NormalizeRefcode(refcode string) string {
	return strings.ToLower(strings.TrimSpace(refcode))
}

// NormalizeTopic produces the canonical topic key for evidence aggregation:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses internal runs of whitespace into single spaces
func NormalizeTopic(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ""
	}
	topic = strings.ToLower(topic)

	var b strings.Builder
	b.Grow(len(topic))
	prevSpace := false
	for _, r := range topic {
		if r == ' ' || r == '\t' || r == '\n' {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
