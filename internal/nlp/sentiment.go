package nlp

import (
	"regexp"
	"strings"

	"github.com/xaenox/shop-assistant/internal/models"
)

// AnalyzeSentiment scores the text against the positive, negative and
// strong-negative keyword sets. A strong-negative hit adds 2 to the
// negative score instead of 1. Equal scores yield neutral.
func AnalyzeSentiment(text string) models.Sentiment {
	positive, negative := SentimentScores(text)
	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// SentimentScores returns the raw positive and negative keyword counts,
// with strong-negative keywords weighted double into the negative side.
func SentimentScores(text string) (positive, negative int) {
	tokens := tokenize(text)
	for _, tok := range tokens {
		switch {
		case containsWord(positiveWords, tok):
			positive++
		case containsWord(strongNegativeWords, tok):
			negative += 2
		case containsWord(negativeWords, tok):
			negative++
		}
	}
	return positive, negative
}

// DetectEmotion picks the first emotion whose phrase table hits the
// text. It feeds the tone-adjustment step only; polarity comes from
// AnalyzeSentiment.
func DetectEmotion(text string) models.Emotion {
	for _, entry := range emotionTable {
		for _, phrase := range entry.Phrases {
			if matchPhrase(text, phrase) {
				return entry.Emotion
			}
		}
	}
	return models.EmotionNeutral
}

func containsWord(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}
	return false
}

var phraseRes = map[string]*regexp.Regexp{}

func init() {
	for _, entry := range emotionTable {
		for _, phrase := range entry.Phrases {
			phraseRes[phrase] = regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
		}
	}
}

func matchPhrase(text, phrase string) bool {
	if !strings.Contains(text, phrase) {
		return false
	}
	return phraseRes[phrase].MatchString(text)
}
