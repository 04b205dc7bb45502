package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xaenox/shop-assistant/internal/models"
)

type gptResult struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// GPTClassifier asks a chat model to pick an intent from the fixed set.
// It implements the same Classifier interface as RuleClassifier and
// falls back to the rules on any API or parse failure, so the engine
// never loses determinism guarantees below this seam.
type GPTClassifier struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	fallback    *RuleClassifier
	logger      *zap.Logger
}

func NewGPTClassifier(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *GPTClassifier {
	return &GPTClassifier{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		fallback:    NewRuleClassifier(),
		logger:      logger,
	}
}

func (c *GPTClassifier) Classify(ctx context.Context, text string, contextStack []models.Category) Result {
	labels := make([]string, 0, len(intentOrder)+1)
	for _, intent := range intentOrder {
		labels = append(labels, string(intent))
	}
	labels = append(labels, string(models.IntentGeneral))

	prompt := fmt.Sprintf(`Classify the customer message into exactly one intent from this list:
%s

Recent conversation categories (oldest to newest): %v

Return a JSON object with this structure:
{"intent": "one_of_the_labels", "confidence": 0.0}

Message: %s`, strings.Join(labels, ", "), contextStack, text)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		c.logger.Error("Failed to get model response", zap.Error(err))
		return c.fallback.Classify(ctx, text, contextStack)
	}

	var parsed gptResult
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		c.logger.Error("Failed to parse model response",
			zap.Error(err),
			zap.String("response", raw))
		return c.fallback.Classify(ctx, text, contextStack)
	}

	intent := models.Intent(strings.ToLower(parsed.Intent))
	if _, ok := categoryTable[intent]; !ok {
		c.logger.Warn("Model returned unknown intent", zap.String("intent", parsed.Intent))
		return c.fallback.Classify(ctx, text, contextStack)
	}

	confidence := parsed.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.5
	}
	return Result{Intent: intent, Confidence: confidence}
}
