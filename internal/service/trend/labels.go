package trend

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rfinnegan/donorlens/internal/domain"
)

// displayLabel derives a display label and its quality class from a
// normalized topic key. Two- and three-word topics are extracted event
// phrases; a bare single word is just an entity; anything longer came from
// mechanical headline truncation.
func displayLabel(topic string) (string, domain.LabelQuality) {
	words := strings.Fields(topic)

	label := make([]string, len(words))
	for i, w := range words {
		label[i] = titleWord(w)
	}

	switch {
	case len(words) >= 2 && len(words) <= 3:
		return strings.Join(label, " "), domain.LabelEventPhrase
	case len(words) == 1:
		return label[0], domain.LabelEntityOnly
	default:
		return strings.Join(label, " "), domain.LabelFallbackGenerated
	}
}

func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 || r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
