package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xaenox/shop-assistant/internal/classifier"
	"github.com/xaenox/shop-assistant/internal/models"
	"github.com/xaenox/shop-assistant/internal/storage"
)

func newTestEngine(t *testing.T, cfg Config) (*Engine, *storage.MemoryStorage) {
	t.Helper()

	store := storage.NewMemoryStorage()
	deps := Deps{
		Profiles:     store,
		Orders:       store,
		Knowledge:    store,
		Interactions: store,
		Feedback:     store,
		Classifier:   classifier.NewRuleClassifier(),
	}
	return New(deps, cfg, zap.NewNop()), store
}

func TestProcessMessageOrderScenario(t *testing.T) {
	eng, store := newTestEngine(t, Config{})
	store.AddOrder(&models.OrderStatus{
		OrderID:  "ZWM-7829",
		Status:   "out_for_delivery",
		Location: "Local Distribution Center",
	})

	resp := eng.ProcessMessage(context.Background(), "where is my order ZWM-7829", "s1", "u1", Options{})

	assert.Contains(t, resp.Answer, "out for delivery")
	assert.Contains(t, resp.Answer, "Local Distribution Center")
	assert.False(t, resp.EscalateToHuman)
	assert.Equal(t, models.CategoryOrder, resp.Category)
}

func TestProcessMessageComplaintScenario(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})

	resp := eng.ProcessMessage(context.Background(), "this product is terrible and broken, I want a refund", "s1", "u1", Options{})

	assert.Equal(t, models.SentimentNegative, resp.Sentiment)
	assert.Equal(t, models.CategoryComplaint, resp.Category)
	assert.True(t, resp.EscalateToHuman)
}

func TestEscalationTriggerPhrases(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})

	for _, phrase := range escalationTriggers {
		t.Run(phrase, func(t *testing.T) {
			text := "I really need a " + strings.ToUpper(phrase) + " right now"
			resp := eng.ProcessMessage(context.Background(), text, "s-"+phrase, "u1", Options{})
			assert.True(t, resp.EscalateToHuman, "phrase %q must escalate", phrase)
		})
	}
}

func TestRecencyResolvesFollowUp(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})
	ctx := context.Background()

	first := eng.ProcessMessage(ctx, "tell me about this product", "s1", "u1", Options{})
	require.Equal(t, models.CategoryProduct, first.Category)

	second := eng.ProcessMessage(ctx, "what about price?", "s1", "u1", Options{})
	assert.Equal(t, models.CategoryProduct, second.Category,
		"ambiguous follow-up must lean on the previous category")
}

func TestSuggestionCap(t *testing.T) {
	eng, store := newTestEngine(t, Config{})
	ctx := context.Background()

	interests := make([]string, 10)
	for i := range interests {
		interests[i] = fmt.Sprintf("hobby-%d", i)
	}
	require.NoError(t, store.Update(ctx, &models.UserProfile{UserID: "u1", Interests: interests}))

	resp := eng.ProcessMessage(ctx, "recommend me something nice", "s1", "u1", Options{})
	assert.NotEmpty(t, resp.Suggestions)
	assert.LessOrEqual(t, len(resp.Suggestions), 4)
}

func TestEmptyInputShortCircuits(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})

	resp := eng.ProcessMessage(context.Background(), "   \t  ", "s1", "u1", Options{})

	assert.Equal(t, models.CategoryGeneral, resp.Category)
	assert.Zero(t, resp.Confidence)
	assert.Empty(t, eng.memory.Get("s1", "u1").History, "empty input must not touch memory")
}

type failingOrders struct{}

func (failingOrders) Lookup(context.Context, string) (*models.OrderStatus, error) {
	return nil, errors.New("tracker unavailable")
}

type failingLogger struct{}

func (failingLogger) Log(context.Context, string, string, models.Category) error {
	return errors.New("log sink down")
}

func TestCollaboratorFailureIsAMiss(t *testing.T) {
	store := storage.NewMemoryStorage()
	deps := Deps{
		Profiles:     store,
		Orders:       failingOrders{},
		Knowledge:    store,
		Interactions: failingLogger{},
		Feedback:     store,
		Classifier:   classifier.NewRuleClassifier(),
	}
	eng := New(deps, Config{}, zap.NewNop())

	resp := eng.ProcessMessage(context.Background(), "where is my order 12345", "s1", "u1", Options{})

	assert.Contains(t, resp.Answer, "double-check")
	assert.Equal(t, models.CategoryOrder, resp.Category)
}

type panickingClassifier struct{}

func (panickingClassifier) Classify(context.Context, string, []models.Category) classifier.Result {
	panic("classifier exploded")
}

func TestPipelinePanicConvertsToApology(t *testing.T) {
	store := storage.NewMemoryStorage()
	deps := Deps{
		Profiles:     store,
		Orders:       store,
		Knowledge:    store,
		Interactions: store,
		Feedback:     store,
		Classifier:   panickingClassifier{},
	}
	eng := New(deps, Config{}, zap.NewNop())

	resp := eng.ProcessMessage(context.Background(), "hello there", "s1", "u1", Options{})

	require.NotNil(t, resp)
	assert.Equal(t, models.CategoryGeneral, resp.Category)
	assert.InDelta(t, 0.05, resp.Confidence, 0.0001)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestToneAdjustmentPrepended(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})

	resp := eng.ProcessMessage(context.Background(), "i am furious, where is my order 1111", "s1", "u1", Options{})

	assert.True(t, strings.HasPrefix(resp.Answer, toneLeadIns[models.EmotionAngry]),
		"answer %q must open with the angry lead-in", resp.Answer)
}

func TestFormFlow(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})
	ctx := context.Background()

	resp := eng.ProcessMessage(ctx, "help me fill out the return request form", "s1", "u1", Options{})
	assert.Contains(t, resp.Answer, "order number")

	resp = eng.ProcessMessage(ctx, "12345", "s1", "u1", Options{})
	assert.Contains(t, resp.Answer, "reason")

	resp = eng.ProcessMessage(ctx, "changed my mind", "s1", "u1", Options{})
	assert.Contains(t, resp.Answer, "email")

	resp = eng.ProcessMessage(ctx, "ada@example.com", "s1", "u1", Options{})
	assert.Contains(t, resp.Answer, "submitted")

	assert.Empty(t, eng.memory.Get("s1", "u1").StepInProgress)
}

func TestEscalateIntentBridgesLocalized(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})

	resp := eng.ProcessMessage(context.Background(), "i want to talk to a human", "s1", "u1", Options{})

	assert.True(t, resp.EscalateToHuman)
	assert.Contains(t, resp.Answer, "support team")
}

func TestSellerModeRecommendation(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})

	resp := eng.ProcessMessage(context.Background(), "can you recommend how to improve sales", "s1", "u1", Options{Mode: ModeSeller})

	assert.Equal(t, models.CategoryRecommendation, resp.Category)
	assert.Contains(t, resp.Answer, "listings")
}

func TestCollectFeedback(t *testing.T) {
	eng, store := newTestEngine(t, Config{})
	ctx := context.Background()

	assert.Error(t, eng.CollectFeedback(ctx, "s1", 0, ""))
	assert.Error(t, eng.CollectFeedback(ctx, "s1", 6, ""))

	require.NoError(t, eng.CollectFeedback(ctx, "s1", 4, "pretty good"))
	feedback := store.Feedbacks()
	require.Len(t, feedback, 1)
	assert.Equal(t, 4, feedback[0].Rating)
}

func TestClearSession(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})
	ctx := context.Background()

	eng.ProcessMessage(ctx, "hello", "s1", "u1", Options{})
	require.NotEmpty(t, eng.memory.Get("s1", "u1").History)

	eng.ClearSession("s1")
	assert.Empty(t, eng.memory.Get("s1", "u1").History)
}

func TestInteractionLoggedBestEffort(t *testing.T) {
	eng, store := newTestEngine(t, Config{})

	eng.ProcessMessage(context.Background(), "hello", "s1", "u1", Options{})

	logs := store.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "hello", logs[0].Message)
}
