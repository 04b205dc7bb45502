package classifier

import (
	"context"
	"regexp"

	"github.com/xaenox/shop-assistant/internal/models"
)

// Result is a classified intent with the classifier's confidence in it.
type Result struct {
	Intent     models.Intent
	Confidence float64
}

// Classifier resolves normalized text plus the session's recent
// categories into an intent. Implementations must be safe for
// concurrent use. The rule-based classifier is the default; anything
// smarter can be swapped in behind this interface without touching
// response generation or memory.
type Classifier interface {
	Classify(ctx context.Context, text string, contextStack []models.Category) Result
}

// recencyBonus is added to every intent whose category matches the most
// recently resolved one. It is the tie-break for ambiguous follow-ups.
const recencyBonus = 2

// RuleClassifier scores text against fixed per-intent pattern tables.
// It is greedy and non-probabilistic: the strictly highest cumulative
// score wins, and an all-zero board yields the general intent.
type RuleClassifier struct {
	patterns map[models.Intent][]compiledPattern
}

type compiledPattern struct {
	re     *regexp.Regexp
	weight int
}

func NewRuleClassifier() *RuleClassifier {
	patterns := make(map[models.Intent][]compiledPattern, len(intentTable))
	for intent, rules := range intentTable {
		compiled := make([]compiledPattern, 0, len(rules))
		for _, rule := range rules {
			compiled = append(compiled, compiledPattern{
				re:     regexp.MustCompile(rule.Pattern),
				weight: rule.Weight,
			})
		}
		patterns[intent] = compiled
	}
	return &RuleClassifier{patterns: patterns}
}

func (c *RuleClassifier) Classify(_ context.Context, text string, contextStack []models.Category) Result {
	var recent models.Category
	if len(contextStack) > 0 {
		recent = contextStack[len(contextStack)-1]
	}

	best := models.IntentGeneral
	bestScore := 0
	total := 0
	for _, intent := range intentOrder {
		score := 0
		for _, p := range c.patterns[intent] {
			if p.re.MatchString(text) {
				score += p.weight
			}
		}
		if recent != "" && categoryTable[intent] == recent {
			score += recencyBonus
		}
		total += score
		if score > bestScore {
			best = intent
			bestScore = score
		}
	}

	if bestScore == 0 {
		return Result{Intent: models.IntentGeneral, Confidence: 0.3}
	}
	return Result{
		Intent:     best,
		Confidence: float64(bestScore) / float64(total+2),
	}
}

// CategoryFor maps an intent onto the shared category set.
func CategoryFor(intent models.Intent) models.Category {
	if cat, ok := categoryTable[intent]; ok {
		return cat
	}
	return models.CategoryGeneral
}

var followUpRes = compileFollowUps()

func compileFollowUps() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(followUpPatterns))
	for _, p := range followUpPatterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}

// IsFollowUp reports whether the normalized text looks like a short
// anaphoric continuation of the previous turn.
func IsFollowUp(text string) bool {
	for _, re := range followUpRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
