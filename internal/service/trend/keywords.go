package trend

import (
	"regexp"
	"strings"

	"github.com/rfinnegan/donorlens/internal/domain"
)

// Candidate topic discovery from free text. Phrases outrank single words
// because they carry more semantic specificity; a capitalized single word
// is only trusted when it names a known political figure, since generic
// English capitalized words match the same shape.

// capitalizedRunRe matches a maximal run of capitalized words, the raw shape
// of a candidate proper name. A word may carry internal capitals so that
// intercapped surnames ("McConnell", "DeSantis") stay one word.
var capitalizedRunRe = regexp.MustCompile(`(?:[A-Z][a-z]+(?:[A-Z][a-z]+)* )*[A-Z][a-z]+(?:[A-Z][a-z]+)*`)

// leadingStopWords are sentence-position artifacts and honorifics stripped
// from the front of a capitalized run before it is judged.
var leadingStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "that": true,
	"mr": true, "mrs": true, "ms": true, "dr": true,
	"sen": true, "rep": true, "gov": true,
}

// knownFigures is the curated list of political figures trusted as
// single-word topics.
var knownFigures = map[string]bool{
	"biden":      true,
	"trump":      true,
	"harris":     true,
	"vance":      true,
	"obama":      true,
	"pelosi":     true,
	"schumer":    true,
	"mcconnell":  true,
	"johnson":    true,
	"jeffries":   true,
	"desantis":   true,
	"newsom":     true,
	"whitmer":    true,
	"shapiro":    true,
	"fetterman":  true,
	"warnock":    true,
	"ossoff":     true,
	"sinema":     true,
	"manchin":    true,
	"buttigieg":  true,
	"haley":      true,
	"ramaswamy":  true,
	"gaetz":      true,
	"greene":     true,
	"boebert":    true,
	"cheney":     true,
	"clyburn":    true,
	"raskin":     true,
	"porter":     true,
	"khanna":     true,
	"slotkin":    true,
	"gallego":    true,
	"casey":      true,
	"tester":     true,
	"brown":      true,
	"baldwin":    true,
	"rosen":      true,
	"spanberger": true,
}

// stopPhrases filters common bigrams and generic phrases that match the
// capitalized-phrase regexes but carry no topical signal.
var stopPhrases = map[string]bool{
	"new york":         true,
	"new jersey":       true,
	"new hampshire":    true,
	"new mexico":       true,
	"north carolina":   true,
	"south carolina":   true,
	"north dakota":     true,
	"south dakota":     true,
	"west virginia":    true,
	"rhode island":     true,
	"los angeles":      true,
	"san francisco":    true,
	"las vegas":        true,
	"white house":      true,
	"supreme court":    true,
	"united states":    true,
	"capitol hill":     true,
	"wall street":      true,
	"main street":      true,
	"breaking news":    true,
	"good morning":     true,
	"last week":        true,
	"last night":       true,
	"this week":        true,
	"this year":        true,
	"next year":        true,
	"election day":     true,
	"press release":    true,
	"news conference":  true,
	"town hall":        true,
	"social media":     true,
	"political action": true,
	"happy birthday":   true,
	"thank you":        true,
}

// ExtractCandidates pulls candidate trending topics out of free text,
// normalized and ranked: multi-word phrases first (never more than three
// words), then known single-word figures. Stop phrases and duplicates are
// dropped.
func ExtractCandidates(text string) []string {
	var phrases, singles []string
	seen := make(map[string]bool)

	accept := func(dst *[]string, topic string) {
		if topic == "" || seen[topic] || stopPhrases[topic] {
			return
		}
		seen[topic] = true
		*dst = append(*dst, topic)
	}

	for _, run := range capitalizedRunRe.FindAllString(text, -1) {
		words := strings.Fields(domain.NormalizeTopic(run))
		for len(words) > 0 && leadingStopWords[words[0]] {
			words = words[1:]
		}
		switch {
		case len(words) >= 2:
			if len(words) > 3 {
				words = words[:3]
			}
			accept(&phrases, strings.Join(words, " "))
		case len(words) == 1 && knownFigures[words[0]]:
			accept(&singles, words[0])
		}
	}
	return append(phrases, singles...)
}
