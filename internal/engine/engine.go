package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xaenox/shop-assistant/internal/classifier"
	"github.com/xaenox/shop-assistant/internal/memory"
	"github.com/xaenox/shop-assistant/internal/models"
	"github.com/xaenox/shop-assistant/internal/nlp"
	"github.com/xaenox/shop-assistant/internal/storage"
)

// Storefront modes change recommendation and sympathy phrasing.
const (
	ModeBuyer  = "buyer"
	ModeSeller = "seller"
)

const anonymousUser = "anonymous"

// Deps are the engine's collaborators. All of them are injected so a
// test can run the engine fully hermetic.
type Deps struct {
	Profiles     storage.ProfileStore
	Orders       storage.OrderTracker
	Knowledge    storage.KnowledgeBase
	Interactions storage.InteractionLogger
	Feedback     storage.FeedbackSink
	Classifier   classifier.Classifier
}

// Config carries the engine's bounds and thresholds.
type Config struct {
	HistoryCap           int
	HistoryTrim          int
	ContextStackSize     int
	SuggestionCap        int
	EscalationConfidence float64
	PreviewLength        int
	StreamDelay          time.Duration
}

func (c Config) withDefaults() Config {
	if c.SuggestionCap <= 0 {
		c.SuggestionCap = 4
	}
	if c.EscalationConfidence <= 0 {
		c.EscalationConfidence = 0.8
	}
	if c.PreviewLength <= 0 {
		c.PreviewLength = 160
	}
	if c.StreamDelay <= 0 {
		c.StreamDelay = 30 * time.Millisecond
	}
	return c
}

// Options tune the processing of a single message.
type Options struct {
	Mode string // buyer (default) or seller
}

type stream struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Engine is the dialogue pipeline: normalize, analyze, classify, decide
// escalation, generate, suggest, remember. One engine serves any number
// of sessions concurrently; per-session state lives in the memory store.
type Engine struct {
	deps   Deps
	cfg    Config
	memory *memory.Store
	logger *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	streamMu sync.Mutex
	streams  map[string]*stream
}

func New(deps Deps, cfg Config, logger *zap.Logger) *Engine {
	cfg = cfg.withDefaults()
	if deps.Classifier == nil {
		deps.Classifier = classifier.NewRuleClassifier()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		deps:    deps,
		cfg:     cfg,
		memory:  memory.NewStore(cfg.HistoryCap, cfg.HistoryTrim, cfg.ContextStackSize),
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		streams: make(map[string]*stream),
	}
}

// ProcessMessage runs the full pipeline for one utterance and returns a
// response. It never returns nil and never panics outward: any internal
// failure converts into the fixed apologetic response here.
func (e *Engine) ProcessMessage(ctx context.Context, text, sessionID, userID string, opts Options) (resp *models.Response) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Pipeline failure",
				zap.Any("panic", r),
				zap.String("session_id", sessionID))
			resp = e.apologeticResponse(start)
		}
	}()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		// No pipeline run and no memory mutation for empty input.
		return &models.Response{
			Answer:         "I didn't catch that — could you type your question?",
			Category:       models.CategoryGeneral,
			Confidence:     0,
			Sentiment:      models.SentimentNeutral,
			Language:       models.LanguageEnglish,
			ProcessingTime: time.Since(start),
		}
	}

	return e.process(ctx, trimmed, sessionID, userID, opts, start)
}

func (e *Engine) process(ctx context.Context, text, sessionID, userID string, opts Options, start time.Time) *models.Response {
	if userID == "" {
		userID = anonymousUser
	}
	convo := e.memory.Get(sessionID, userID)
	if convo.Profile == nil && userID != anonymousUser {
		profile, err := e.deps.Profiles.Get(ctx, userID)
		if err != nil {
			e.logger.Warn("Profile load failed",
				zap.Error(err),
				zap.String("user_id", userID))
		} else if profile != nil {
			e.memory.MergeProfile(sessionID, profile)
			convo.Profile = profile
		}
	}

	analysis := e.analyze(ctx, text, &convo)
	escalate := e.shouldEscalate(analysis)
	answer := e.respond(ctx, analysis, &convo, text, opts)
	suggestions := e.suggest(analysis.Category, convo.Profile)

	now := time.Now()
	e.memory.Append(sessionID, models.Message{
		ID:        uuid.New().String(),
		Content:   text,
		Sender:    "user",
		Timestamp: now,
		Category:  analysis.Category,
	})
	e.memory.Append(sessionID, models.Message{
		ID:        uuid.New().String(),
		Content:   answer,
		Sender:    "bot",
		Timestamp: now,
		Category:  analysis.Category,
	})
	e.memory.PushContext(sessionID, analysis.Category)

	// Best effort only; neither call may affect the response.
	if err := e.deps.Interactions.Log(ctx, userID, text, analysis.Category); err != nil {
		e.logger.Warn("Interaction log failed", zap.Error(err))
	}
	if userID != anonymousUser {
		if err := e.deps.Profiles.TrackInteraction(ctx, userID, "message", string(analysis.Intent)); err != nil {
			e.logger.Warn("Interaction tracking failed", zap.Error(err))
		}
	}

	return &models.Response{
		Answer:          answer,
		Category:        analysis.Category,
		Confidence:      analysis.Confidence,
		Suggestions:     suggestions,
		EscalateToHuman: escalate,
		Sentiment:       analysis.Sentiment,
		Language:        analysis.Language,
		ProcessingTime:  time.Since(start),
	}
}

// analyze runs the independent analysis stages over one utterance and
// resolves the intent against the session's recent categories.
func (e *Engine) analyze(ctx context.Context, text string, convo *models.ConversationContext) *models.AnalysisResult {
	normalized := nlp.Normalize(text)

	result := e.deps.Classifier.Classify(ctx, normalized, convo.ContextStack)
	return &models.AnalysisResult{
		Normalized: normalized,
		Language:   nlp.DetectLanguage(normalized),
		Sentiment:  nlp.AnalyzeSentiment(normalized),
		Emotion:    nlp.DetectEmotion(normalized),
		Intent:     result.Intent,
		Category:   classifier.CategoryFor(result.Intent),
		Entities:   nlp.ExtractEntities(normalized),
		Confidence: result.Confidence,
		IsFollowUp: classifier.IsFollowUp(normalized),
	}
}

// StreamMessage runs the pipeline and delivers the answer incrementally
// through onChunk, then calls onComplete with the full response. At
// most one stream is active per session: starting a new one cancels the
// previous stream first. A cancelled stream emits nothing further and
// never calls onComplete.
func (e *Engine) StreamMessage(ctx context.Context, text, sessionID, userID string, opts Options, onChunk func(string), onComplete func(*models.Response)) {
	s := e.newStream(ctx, sessionID)
	go func() {
		defer e.finishStream(sessionID, s)
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("Stream failure",
					zap.Any("panic", r),
					zap.String("session_id", sessionID))
			}
		}()

		resp := e.ProcessMessage(s.ctx, text, sessionID, userID, opts)
		if s.ctx.Err() != nil {
			// Cancelled while the pipeline ran; drop the result.
			return
		}

		ctrl := &streamController{delay: e.cfg.StreamDelay}
		if ctrl.run(s.ctx, e.pick(thinkingPhrases), resp.Answer, onChunk) && onComplete != nil {
			onComplete(resp)
		}
	}()
}

// CancelStream cancels the session's active stream, if any. Cancelling
// is not an error; the stream just stops.
func (e *Engine) CancelStream(sessionID string) {
	e.streamMu.Lock()
	defer e.streamMu.Unlock()
	if s, ok := e.streams[sessionID]; ok {
		s.cancel()
	}
}

// CollectFeedback records a 1..5 rating for the session.
func (e *Engine) CollectFeedback(ctx context.Context, sessionID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	if err := e.deps.Feedback.Record(ctx, sessionID, rating, comment); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	return nil
}

// ClearSession cancels any active stream and discards the session's
// conversation memory.
func (e *Engine) ClearSession(sessionID string) {
	e.CancelStream(sessionID)
	e.memory.Clear(sessionID)
}

func (e *Engine) newStream(ctx context.Context, sessionID string) *stream {
	e.streamMu.Lock()
	defer e.streamMu.Unlock()

	if prev, ok := e.streams[sessionID]; ok {
		prev.cancel()
	}
	streamCtx, cancel := context.WithCancel(ctx)
	s := &stream{ctx: streamCtx, cancel: cancel}
	e.streams[sessionID] = s
	return s
}

func (e *Engine) finishStream(sessionID string, s *stream) {
	s.cancel()
	e.streamMu.Lock()
	defer e.streamMu.Unlock()
	if current, ok := e.streams[sessionID]; ok && current == s {
		delete(e.streams, sessionID)
	}
}

func (e *Engine) apologeticResponse(start time.Time) *models.Response {
	return &models.Response{
		Answer:     "I'm sorry, something went wrong on my end. Could you try that again? If it keeps happening I can hand you over to a person.",
		Category:   models.CategoryGeneral,
		Confidence: 0.05,
		Suggestions: []string{
			"Try asking again",
			"Talk to support",
		},
		Sentiment:      models.SentimentNeutral,
		Language:       models.LanguageEnglish,
		ProcessingTime: time.Since(start),
	}
}

func (e *Engine) pick(list []string) string {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return list[e.rng.Intn(len(list))]
}
