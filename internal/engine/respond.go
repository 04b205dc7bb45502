package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/xaenox/shop-assistant/internal/models"
)

var (
	greetingRe = regexp.MustCompile(`^(hi|hello|hey|good (morning|afternoon|evening))\b`)
	farewellRe = regexp.MustCompile(`\b(bye|goodbye|see you|farewell)\b`)
	nameRe     = regexp.MustCompile(`my name is ([a-z]+)`)
)

// respond selects a response strategy by intent and renders the base
// answer text. Collaborator failures are logged and handled as misses —
// every branch has a no-result fallback, nothing propagates.
func (e *Engine) respond(ctx context.Context, analysis *models.AnalysisResult, convo *models.ConversationContext, rawText string, opts Options) string {
	// A form in progress captures ambiguous turns as field answers.
	if convo.StepInProgress != "" && formContinues(analysis.Intent) {
		return e.advanceForm(convo, rawText)
	}

	var answer string
	switch analysis.Intent {
	case models.IntentTrackOrder:
		answer = e.respondTrackOrder(ctx, analysis)
	case models.IntentComplaint:
		answer = e.respondComplaint(analysis, opts)
	case models.IntentCompliment:
		answer = e.respondCompliment(convo.Profile)
	case models.IntentRecommendation:
		answer = e.respondRecommendation(convo.Profile, opts)
	case models.IntentProductInfo:
		answer = e.respondProductInfo(ctx, analysis)
	case models.IntentFormHelp:
		answer = e.startForm(convo)
	case models.IntentEscalate:
		answer = bridgingMessage(analysis.Language)
	case models.IntentPersonalInfo:
		answer = e.respondPersonalInfo(ctx, analysis, convo)
	case models.IntentFeedback:
		answer = "I'd love your feedback! You can rate this conversation from 1 to 5, and add a comment if you like."
	default:
		answer = e.respondGeneral(analysis, convo.Profile)
	}

	return toneLeadIns[analysis.Emotion] + answer
}

func (e *Engine) respondTrackOrder(ctx context.Context, analysis *models.AnalysisResult) string {
	orderID, ok := analysis.Entities[models.EntityOrderID]
	if !ok {
		return "I can check on that for you — could you confirm your order number?"
	}

	status, err := e.deps.Orders.Lookup(ctx, orderID)
	if err != nil {
		e.logger.Warn("Order lookup failed",
			zap.Error(err),
			zap.String("order_id", orderID))
		status = nil
	}
	if status == nil {
		return fmt.Sprintf("I couldn't find an order matching %q — could you double-check the order number?", orderID)
	}

	phrase, ok := statusPhrases[status.Status]
	if !ok {
		phrase = "is being looked after"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Your order %s %s.", status.OrderID, phrase)
	if status.Location != "" {
		fmt.Fprintf(&b, " It was last scanned at %s.", status.Location)
	}
	if status.EstimatedDelivery != "" {
		fmt.Fprintf(&b, " Estimated delivery: %s.", status.EstimatedDelivery)
	}
	if n := len(status.Updates); n > 0 {
		last := status.Updates[n-1]
		fmt.Fprintf(&b, " Last update: %s (%s).", last.Note, last.Timestamp.Format("2 Jan 2006"))
	}
	return b.String()
}

func (e *Engine) respondComplaint(analysis *models.AnalysisResult, opts Options) string {
	var opener string
	if opts.Mode == ModeSeller {
		opener = e.pick(sellerSympathyOpeners)
	} else {
		opener = e.pick(buyerSympathyOpeners)
	}

	var remedy string
	if _, hasOrder := analysis.Entities[models.EntityOrderID]; hasOrder {
		remedy = "I can start a return or refund for that order right away, and I'm also looping in a support agent to make sure this gets resolved."
	} else {
		remedy = "Tell me which item this is about and I can set up a return or replacement — I'm also looping in a support agent to make sure this gets resolved."
	}
	return opener + " " + remedy
}

func (e *Engine) respondCompliment(profile *models.UserProfile) string {
	line := e.pick(appreciationLines)
	if profile != nil && profile.Name != "" {
		return fmt.Sprintf("%s It's always a pleasure, %s.", line, profile.Name)
	}
	return line
}

func (e *Engine) respondRecommendation(profile *models.UserProfile, opts Options) string {
	if opts.Mode == ModeSeller {
		return "Based on your shop's recent activity, I'd suggest refreshing your top listings with seasonal keywords and bundling slow movers with your bestsellers."
	}
	if profile != nil && profile.Sustainability {
		return "Since you prefer sustainable options, I'd start with our recycled and low-impact collection — want me to pull up the top-rated eco picks?"
	}
	return "Happy to help you choose! Our bestsellers are a safe bet — tell me what you're shopping for and I'll narrow it down."
}

func (e *Engine) respondProductInfo(ctx context.Context, analysis *models.AnalysisResult) string {
	articles, err := e.deps.Knowledge.Search(ctx, analysis.Normalized)
	if err != nil {
		e.logger.Warn("Knowledge base search failed", zap.Error(err))
		articles = nil
	}
	if len(articles) == 0 {
		return "I can help with product details like pricing, sizing, materials and availability — which product are you looking at?"
	}

	top := articles[0]
	preview := truncate(top.Content, e.cfg.PreviewLength)
	return fmt.Sprintf("Here's what I found in %q: %s Is that what you were after, or would you like more detail?", top.Title, preview)
}

func (e *Engine) startForm(convo *models.ConversationContext) string {
	if convo.StepInProgress != "" {
		return e.advanceForm(convo, "")
	}
	first := formSteps[0]
	e.memory.SetFormState(convo.SessionID, first.Field, map[string]string{})
	return first.Prompt
}

// advanceForm stores the raw turn as the answer to the current field
// and asks for the next one. The final answer completes the form.
func (e *Engine) advanceForm(convo *models.ConversationContext, rawText string) string {
	current := -1
	for i, step := range formSteps {
		if step.Field == convo.StepInProgress {
			current = i
			break
		}
	}
	if current < 0 {
		e.memory.SetFormState(convo.SessionID, "", nil)
		return formSteps[0].Prompt
	}
	if rawText == "" {
		return formSteps[current].Prompt
	}

	if current+1 < len(formSteps) {
		next := formSteps[current+1]
		e.memory.SetFormState(convo.SessionID, next.Field, map[string]string{
			formSteps[current].Field: rawText,
		})
		return next.Prompt
	}

	e.memory.SetFormState(convo.SessionID, "", nil)
	return "That's everything I need — your return request has been submitted. You'll get a confirmation email shortly."
}

func (e *Engine) respondPersonalInfo(ctx context.Context, analysis *models.AnalysisResult, convo *models.ConversationContext) string {
	if m := nameRe.FindStringSubmatch(analysis.Normalized); m != nil {
		name := strings.ToUpper(m[1][:1]) + m[1][1:]
		profile := convo.Profile
		if profile == nil {
			profile = &models.UserProfile{UserID: convo.UserID}
		}
		profile.Name = name
		if err := e.deps.Profiles.Update(ctx, profile); err != nil {
			e.logger.Warn("Profile update failed",
				zap.Error(err),
				zap.String("user_id", convo.UserID))
		}
		e.memory.MergeProfile(convo.SessionID, profile)
		return fmt.Sprintf("Nice to meet you, %s! I'll remember that for next time.", name)
	}
	if convo.Profile != nil && convo.Profile.Name != "" {
		return fmt.Sprintf("Your profile is set up under the name %s. You can ask me to update your details anytime.", convo.Profile.Name)
	}
	return "I can help with your account details — what would you like to view or change?"
}

func (e *Engine) respondGeneral(analysis *models.AnalysisResult, profile *models.UserProfile) string {
	name := ""
	if profile != nil && profile.Name != "" {
		name = " " + profile.Name
	}
	switch {
	case greetingRe.MatchString(analysis.Normalized):
		return fmt.Sprintf("Hello%s! How can I help you today?", name)
	case farewellRe.MatchString(analysis.Normalized):
		return fmt.Sprintf("Goodbye%s, happy shopping!", name)
	default:
		return fmt.Sprintf("I'm your shopping assistant%s — I can track orders, answer product questions, recommend items, and help with returns. What would you like to do?", name)
	}
}

func formContinues(intent models.Intent) bool {
	switch intent {
	case models.IntentFormHelp, models.IntentGeneral, models.IntentPersonalInfo:
		return true
	default:
		return false
	}
}

func bridgingMessage(lang models.Language) string {
	if msg, ok := bridgingMessages[lang]; ok {
		return msg
	}
	return bridgingMessages[models.LanguageEnglish]
}

// truncate cuts text to at most n runes on a word boundary where
// possible, appending an ellipsis when anything was dropped.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	cut := string(runes[:n])
	if idx := strings.LastIndex(cut, " "); idx > n/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
