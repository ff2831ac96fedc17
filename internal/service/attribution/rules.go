package attribution

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rfinnegan/donorlens/internal/domain"
)

// matchRule applies one rule's pattern to a normalized refcode. Patterns are
// matched case-insensitively throughout: literal patterns are lowered,
// regex patterns get the (?i) flag. A pattern that fails to compile returns
// an error so the caller can isolate the bad rule.
func matchRule(rule domain.AttributionRule, refcode string) (bool, error) {
	pattern := strings.ToLower(strings.TrimSpace(rule.Pattern))
	if pattern == "" {
		return false, fmt.Errorf("empty pattern")
	}

	switch rule.RuleType {
	case domain.RulePrefix:
		return strings.HasPrefix(refcode, pattern), nil
	case domain.RuleSuffix:
		return strings.HasSuffix(refcode, pattern), nil
	case domain.RuleContains:
		return strings.Contains(refcode, pattern), nil
	case domain.RuleExact:
		return refcode == pattern, nil
	case domain.RuleRegex:
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return false, fmt.Errorf("compile pattern: %w", err)
		}
		return re.MatchString(refcode), nil
	default:
		return false, fmt.Errorf("unknown rule type %q", rule.RuleType)
	}
}
