package attribution

import (
	"strings"

	"github.com/rfinnegan/donorlens/internal/domain"
)

// FormHintSMS marks a donation that came through an SMS contribution form.
const FormHintSMS = "sms"

// smsFormMarkers are substrings of contribution form slugs created by the
// SMS sending flow.
var smsFormMarkers = []string{"sms", "text2give", "txt"}

// AnnotateContributionForm attaches contribution-form channel metadata to a
// result. The hint is informational only: it never participates in tier
// ordering and never changes the platform, score, or method.
func AnnotateContributionForm(res *domain.AttributionResult, form *string) {
	res.FormHint = formHint(form)
}

func formHint(form *string) *string {
	if form == nil {
		return nil
	}
	f := strings.ToLower(strings.TrimSpace(*form))
	if f == "" {
		return nil
	}
	for _, marker := range smsFormMarkers {
		if strings.Contains(f, marker) {
			hint := FormHintSMS
			return &hint
		}
	}
	return nil
}
