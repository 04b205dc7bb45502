package nlp

import (
	"regexp"
	"sort"
	"strings"
)

var normalizationRe = buildNormalizationRe()

func buildNormalizationRe() *regexp.Regexp {
	keys := make([]string, 0, len(normalizationTable))
	for k := range normalizationTable {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	// Longer alternatives first so "don't" is not shadowed by "r".
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return regexp.MustCompile(`\b(?:` + strings.Join(keys, "|") + `)\b`)
}

// Normalize lowercases the input and rewrites informal spellings and
// contractions to their standard forms, matching whole words only.
// It is idempotent: normalizing already-normalized text is a no-op.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}
	return normalizationRe.ReplaceAllStringFunc(text, func(word string) string {
		if repl, ok := normalizationTable[word]; ok {
			return repl
		}
		return word
	})
}
