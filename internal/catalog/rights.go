package catalog

import (
	"strings"

	"github.com/nlitools/almagraph/internal/model"
)

// Rights phrase lists, checked in order of decreasing openness. The Hebrew
// phrases appear verbatim in NLI rights notes and are matched case-sensitively.
var (
	openPhrases       = []string{"no restrictions", "public domain"}
	openPhrasesHebrew = []string{"נחלת הכלל", "ללא מגבלות"}

	limitedPhrases = []string{"contract", "attribution"}

	restrictedPhrases       = []string{"restricted", "permission"}
	restrictedPhrasesHebrew = []string{"אסור"}
)

// ClassifyRights maps free-text rights wording to an access badge. This is a
// cosmetic display rule: it has no effect on classification or hierarchy
// structure.
func ClassifyRights(text string) model.RightsClass {
	if strings.TrimSpace(text) == "" {
		return model.RightsUnknown
	}
	lower := strings.ToLower(text)

	if containsAny(lower, openPhrases) || containsAny(text, openPhrasesHebrew) {
		return model.RightsOpen
	}
	if containsAny(lower, limitedPhrases) {
		return model.RightsLimited
	}
	if containsAny(lower, restrictedPhrases) || containsAny(text, restrictedPhrasesHebrew) {
		return model.RightsRestricted
	}
	return model.RightsUnknown
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
