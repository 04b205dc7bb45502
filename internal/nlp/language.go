package nlp

import (
	"strings"
	"unicode"

	"github.com/xaenox/shop-assistant/internal/models"
)

// tokenize splits normalized text into lowercase word tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c) && c != '\''
	})
}

// DetectLanguage scores the text against each language's common-word
// list and returns the highest-scoring language. When every score is
// zero the result is English; that is the defined default, not an error.
func DetectLanguage(text string) models.Language {
	tokens := tokenize(text)

	best := models.LanguageEnglish
	bestScore := 0
	for _, entry := range languageTable {
		listed := make(map[string]struct{}, len(entry.Words))
		for _, w := range entry.Words {
			listed[w] = struct{}{}
		}

		score := 0
		for _, tok := range tokens {
			if _, ok := listed[tok]; ok {
				score++
			}
		}
		if score > bestScore {
			best = entry.Language
			bestScore = score
		}
	}
	return best
}
