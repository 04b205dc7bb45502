package nlp

import "github.com/xaenox/shop-assistant/internal/models"

// All analysis rules live here as data so that new languages, entities
// and keyword sets are additive edits, not code changes.

// normalizationTable maps informal spellings and contractions to their
// standard forms. Replacements apply on whole words only. No replacement
// value may itself be a key, which keeps normalization idempotent.
var normalizationTable = map[string]string{
	"u":       "you",
	"ur":      "your",
	"r":       "are",
	"pls":     "please",
	"plz":     "please",
	"thx":     "thanks",
	"thanx":   "thanks",
	"wanna":   "want to",
	"gonna":   "going to",
	"gotta":   "got to",
	"gimme":   "give me",
	"lemme":   "let me",
	"asap":    "as soon as possible",
	"im":      "i am",
	"i'm":     "i am",
	"ive":     "i have",
	"i've":    "i have",
	"dont":    "do not",
	"don't":   "do not",
	"cant":    "cannot",
	"can't":   "cannot",
	"wont":    "will not",
	"won't":   "will not",
	"isnt":    "is not",
	"isn't":   "is not",
	"didnt":   "did not",
	"didn't":  "did not",
	"doesnt":  "does not",
	"doesn't": "does not",
	"whats":   "what is",
	"what's":  "what is",
	"wheres":  "where is",
	"where's": "where is",
	"it's":    "it is",
}

// languageTable holds per-language common-word lists. Scoring counts how
// many tokens of the text appear in each list; ties resolve in slice
// order, so English stays the default.
var languageTable = []struct {
	Language models.Language
	Words    []string
}{
	{models.LanguageEnglish, []string{
		"the", "is", "are", "what", "where", "when", "how", "my", "your",
		"i", "you", "can", "help", "want", "need", "please", "thanks",
		"order", "delivery", "product", "not", "and", "have", "do",
	}},
	{models.LanguageSpanish, []string{
		"el", "la", "es", "donde", "cuando", "como", "mi", "tu", "yo",
		"quiero", "necesito", "ayuda", "por", "favor", "gracias",
		"pedido", "entrega", "producto", "no", "y", "tengo", "que",
	}},
	{models.LanguageFrench, []string{
		"le", "la", "est", "ou", "quand", "comment", "mon", "votre", "je",
		"veux", "besoin", "aide", "merci", "bonjour", "vous",
		"commande", "livraison", "produit", "pas", "et", "ai", "que",
	}},
}

// Sentiment keyword sets. Strong-negative hits count double into the
// negative score.
var (
	positiveWords = []string{
		"good", "great", "love", "excellent", "amazing", "awesome",
		"perfect", "happy", "wonderful", "fantastic", "helpful", "nice",
		"best", "fast", "thanks", "thank",
	}
	negativeWords = []string{
		"bad", "broken", "refund", "late", "slow", "wrong", "missing",
		"damaged", "poor", "problem", "issue", "complaint",
		"disappointed", "return", "cancel", "never",
	}
	strongNegativeWords = []string{
		"terrible", "horrible", "awful", "worst", "scam", "unacceptable",
		"useless", "garbage", "furious", "hate",
	}
)

// emotionTable is evaluated in order; the first emotion with a phrase
// hit wins. Phrases are matched on whole-word boundaries against the
// normalized text.
var emotionTable = []struct {
	Emotion models.Emotion
	Phrases []string
}{
	{models.EmotionAngry, []string{
		"angry", "furious", "hate", "outraged", "mad", "disgusted",
	}},
	{models.EmotionFrustrated, []string{
		"frustrated", "frustrating", "annoyed", "annoying", "ridiculous",
		"fed up", "sick of", "tired of", "again and again",
	}},
	{models.EmotionConfused, []string{
		"confused", "confusing", "unclear", "do not understand",
		"how do i", "what does", "not sure how", "lost",
	}},
	{models.EmotionHappy, []string{
		"happy", "great", "love", "awesome", "excellent", "wonderful",
		"thank you", "thanks",
	}},
}
