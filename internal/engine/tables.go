package engine

import "github.com/xaenox/shop-assistant/internal/models"

// Fixed phrase tables for escalation and response generation. Read-only
// after init, safe for concurrent reads across sessions.

// escalationTriggers hand the conversation off as soon as one appears
// in the normalized text.
var escalationTriggers = []string{
	"human agent",
	"speak to someone",
	"talk to a human",
	"real person",
	"supervisor",
	"customer service representative",
}

// strongNegativePhrases escalate on their own, independent of the
// sentiment keyword sets.
var strongNegativePhrases = []string{
	"this is unacceptable",
	"worst experience",
	"absolutely terrible",
	"complete scam",
	"legal action",
	"report you",
}

var statusPhrases = map[string]string{
	"processing":       "is being processed",
	"shipped":          "has been shipped",
	"in_transit":       "is in transit",
	"out_for_delivery": "is out for delivery",
	"delivered":        "has been delivered",
	"cancelled":        "was cancelled",
}

var buyerSympathyOpeners = []string{
	"I'm really sorry to hear that.",
	"That's not the experience we want you to have.",
	"I apologize for the trouble this has caused.",
}

var sellerSympathyOpeners = []string{
	"Sorry you're running into this on your store.",
	"That shouldn't be happening with your listings.",
	"Apologies for the disruption to your shop.",
}

var appreciationLines = []string{
	"Thank you so much, that really made my day!",
	"I'm so glad I could help!",
	"That's wonderful to hear, thank you!",
}

var toneLeadIns = map[models.Emotion]string{
	models.EmotionFrustrated: "I understand this has been frustrating. ",
	models.EmotionAngry:      "I'm really sorry about this experience. ",
	models.EmotionConfused:   "No worries, let me clear that up. ",
	models.EmotionHappy:      "Glad to hear it! ",
	models.EmotionNeutral:    "",
}

var bridgingMessages = map[models.Language]string{
	models.LanguageEnglish: "Of course — I'm connecting you with a member of our support team. They'll have your conversation so far and will take it from here.",
	models.LanguageSpanish: "Por supuesto — te estoy conectando con un miembro de nuestro equipo de soporte. Tendrán tu conversación hasta ahora y continuarán desde aquí.",
	models.LanguageFrench:  "Bien sûr — je vous mets en relation avec un membre de notre équipe d'assistance. Il disposera de votre conversation et prendra le relais.",
}

// Return-request form, asked one field per turn.
var formSteps = []struct {
	Field  string
	Prompt string
}{
	{"order_number", "Let's get that return started. What's your order number?"},
	{"reason", "Got it. What's the reason for the return?"},
	{"contact_email", "Almost done — what email should we use to follow up?"},
}

var baseSuggestions = map[models.Category][]string{
	models.CategoryOrder: {
		"Track another order",
		"Change delivery address",
		"View order history",
	},
	models.CategoryProduct: {
		"Compare similar products",
		"Check sizing guide",
		"See customer reviews",
	},
	models.CategoryRecommendation: {
		"Show bestsellers",
		"Browse new arrivals",
		"See sustainable picks",
	},
	models.CategoryComplaint: {
		"Start a return",
		"Request a refund",
		"Talk to support",
	},
	models.CategorySupport: {
		"Browse help articles",
		"Talk to support",
	},
	models.CategoryAccount: {
		"Update my details",
		"View my preferences",
	},
	models.CategoryFeedback: {
		"Rate this conversation",
		"Leave a review",
	},
	models.CategoryGeneral: {
		"Track my order",
		"Get a recommendation",
		"Browse help articles",
	},
}

var thinkingPhrases = []string{
	"Let me look into that…",
	"One moment…",
	"Checking…",
}
