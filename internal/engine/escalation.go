package engine

import (
	"strings"

	"github.com/xaenox/shop-assistant/internal/models"
)

// shouldEscalate decides the human hand-off from the analysis alone.
// Any one condition is enough: an explicit trigger phrase, a strong
// negative phrase, or negative sentiment paired with high classifier
// confidence. Complaints always escalate so the sympathy reply arrives
// with a hand-off attached.
func (e *Engine) shouldEscalate(analysis *models.AnalysisResult) bool {
	if analysis.Intent == models.IntentComplaint || analysis.Intent == models.IntentEscalate {
		return true
	}
	for _, phrase := range escalationTriggers {
		if strings.Contains(analysis.Normalized, phrase) {
			return true
		}
	}
	for _, phrase := range strongNegativePhrases {
		if strings.Contains(analysis.Normalized, phrase) {
			return true
		}
	}
	return analysis.Sentiment == models.SentimentNegative &&
		analysis.Confidence > e.cfg.EscalationConfidence
}
