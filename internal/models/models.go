package models

import "time"

// Sentiment is the coarse polarity of an utterance.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Emotion is a finer-grained signal used only for tone adjustment.
type Emotion string

const (
	EmotionFrustrated Emotion = "frustrated"
	EmotionAngry      Emotion = "angry"
	EmotionConfused   Emotion = "confused"
	EmotionHappy      Emotion = "happy"
	EmotionNeutral    Emotion = "neutral"
)

// Language is a detected utterance language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageFrench  Language = "fr"
)

// Intent is the classified purpose of a user utterance.
type Intent string

const (
	IntentTrackOrder     Intent = "track_order"
	IntentProductInfo    Intent = "product_info"
	IntentRecommendation Intent = "recommendation"
	IntentComplaint      Intent = "complaint"
	IntentCompliment     Intent = "compliment"
	IntentFormHelp       Intent = "form_help"
	IntentEscalate       Intent = "escalate"
	IntentPersonalInfo   Intent = "personal_info"
	IntentFeedback       Intent = "feedback"
	IntentGeneral        Intent = "general"
)

// Category tags both analysis results and responses. AnalysisResult and
// Response always draw from this same set.
type Category string

const (
	CategoryOrder          Category = "order"
	CategoryProduct        Category = "product"
	CategoryRecommendation Category = "recommendation"
	CategoryComplaint      Category = "complaint"
	CategorySupport        Category = "support"
	CategoryAccount        Category = "account"
	CategoryFeedback       Category = "feedback"
	CategoryGeneral        Category = "general"
)

// Entity map keys. A key is present only when the matching pattern fired.
const (
	EntityOrderID = "orderId"
	EntityPrice   = "price"
	EntityDate    = "date"
)

// Utterance is one raw incoming user message. Immutable once received.
type Utterance struct {
	Text       string    `json:"text"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	ReceivedAt time.Time `json:"received_at"`
}

// AnalysisResult is the combined output of the analysis stages for a
// single utterance. Produced fresh per utterance, never mutated after.
type AnalysisResult struct {
	Normalized string            `json:"normalized"`
	Language   Language          `json:"language"`
	Sentiment  Sentiment         `json:"sentiment"`
	Emotion    Emotion           `json:"emotion"`
	Intent     Intent            `json:"intent"`
	Category   Category          `json:"category"`
	Entities   map[string]string `json:"entities"`
	Confidence float64           `json:"confidence"`
	IsFollowUp bool              `json:"is_follow_up"`
}

// Message is one turn stored in a conversation context. Append-only.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"` // "user" or "bot"
	Timestamp time.Time `json:"timestamp"`
	Category  Category  `json:"category"`
}

// UserProfile holds the preferences the engine reads and the counters it
// increments. The profile store owns the profile's lifecycle.
type UserProfile struct {
	UserID             string   `json:"user_id"`
	Name               string   `json:"name,omitempty"`
	CommunicationStyle string   `json:"communication_style,omitempty"`
	Sustainability     bool     `json:"sustainability"`
	Interests          []string `json:"interests,omitempty"`
	Interactions       int      `json:"interactions"`
}

// ConversationContext is the per-session state carried across turns.
type ConversationContext struct {
	SessionID      string            `json:"session_id"`
	UserID         string            `json:"user_id"`
	History        []Message         `json:"history"`
	ContextStack   []Category        `json:"context_stack"`
	FormData       map[string]string `json:"form_data,omitempty"`
	StepInProgress string            `json:"step_in_progress,omitempty"`
	Profile        *UserProfile      `json:"profile,omitempty"`
}

// Response is the engine's answer to one utterance.
type Response struct {
	Answer          string        `json:"answer"`
	Category        Category      `json:"category"`
	Confidence      float64       `json:"confidence"`
	Suggestions     []string      `json:"suggestions,omitempty"`
	EscalateToHuman bool          `json:"escalate_to_human"`
	Sentiment       Sentiment     `json:"sentiment"`
	Language        Language      `json:"language"`
	ProcessingTime  time.Duration `json:"processing_time"`
}

// OrderStatus is the order tracker's view of one order. Status is one of
// processing, shipped, in_transit, out_for_delivery, delivered, cancelled.
type OrderStatus struct {
	OrderID           string        `json:"order_id"`
	Status            string        `json:"status"`
	Location          string        `json:"location,omitempty"`
	EstimatedDelivery string        `json:"estimated_delivery,omitempty"`
	Updates           []OrderUpdate `json:"updates,omitempty"`
}

// OrderUpdate is one entry in an order's tracking history.
type OrderUpdate struct {
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// Article is one knowledge-base entry.
type Article struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
}
