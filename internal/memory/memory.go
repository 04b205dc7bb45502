package memory

import (
	"sync"

	"github.com/xaenox/shop-assistant/internal/models"
)

const (
	// DefaultHistoryCap triggers a trim; DefaultHistoryTrim is what the
	// history is cut down to, keeping the most recent messages.
	DefaultHistoryCap  = 100
	DefaultHistoryTrim = 50
	// DefaultStackCap bounds the resolved-category stack.
	DefaultStackCap = 5
)

// Store holds one bounded ConversationContext per active session.
// Mutations for a given session are serialized on that session's own
// lock; different sessions never contend. Contexts are created lazily
// on first access and live until Clear — there is no TTL, callers that
// embed the engine own session expiry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session

	historyCap  int
	historyTrim int
	stackCap    int
}

type session struct {
	mu  sync.Mutex
	ctx models.ConversationContext
}

func NewStore(historyCap, historyTrim, stackCap int) *Store {
	if historyCap <= 0 {
		historyCap = DefaultHistoryCap
	}
	if historyTrim <= 0 || historyTrim > historyCap {
		historyTrim = DefaultHistoryTrim
	}
	if stackCap <= 0 {
		stackCap = DefaultStackCap
	}
	return &Store{
		sessions:    make(map[string]*session),
		historyCap:  historyCap,
		historyTrim: historyTrim,
		stackCap:    stackCap,
	}
}

func (s *Store) session(sessionID, userID string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; ok {
		return sess
	}
	sess = &session{ctx: models.ConversationContext{
		SessionID: sessionID,
		UserID:    userID,
	}}
	s.sessions[sessionID] = sess
	return sess
}

// Get returns a copy of the session's context, creating an empty one if
// the session is new. The copy keeps callers from racing with appends.
func (s *Store) Get(sessionID, userID string) models.ConversationContext {
	sess := s.session(sessionID, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return copyContext(&sess.ctx)
}

// Append adds a message to the session's history, trimming to the most
// recent messages once the hard cap is exceeded.
func (s *Store) Append(sessionID string, msg models.Message) {
	sess := s.session(sessionID, "")
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.ctx.History = append(sess.ctx.History, msg)
	if len(sess.ctx.History) > s.historyCap {
		trimmed := sess.ctx.History[len(sess.ctx.History)-s.historyTrim:]
		sess.ctx.History = append([]models.Message(nil), trimmed...)
	}
}

// PushContext records a resolved category, evicting the oldest entry
// beyond the stack cap.
func (s *Store) PushContext(sessionID string, category models.Category) {
	sess := s.session(sessionID, "")
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.ctx.ContextStack = append(sess.ctx.ContextStack, category)
	if len(sess.ctx.ContextStack) > s.stackCap {
		sess.ctx.ContextStack = sess.ctx.ContextStack[len(sess.ctx.ContextStack)-s.stackCap:]
	}
}

// MergeProfile attaches (or refreshes) the user profile on the session.
func (s *Store) MergeProfile(sessionID string, profile *models.UserProfile) {
	if profile == nil {
		return
	}
	sess := s.session(sessionID, "")
	sess.mu.Lock()
	defer sess.mu.Unlock()

	clone := *profile
	sess.ctx.Profile = &clone
}

// SetFormState updates the multi-step form bookkeeping. An empty step
// clears the form entirely.
func (s *Store) SetFormState(sessionID, step string, data map[string]string) {
	sess := s.session(sessionID, "")
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if step == "" {
		sess.ctx.StepInProgress = ""
		sess.ctx.FormData = nil
		return
	}
	sess.ctx.StepInProgress = step
	if sess.ctx.FormData == nil {
		sess.ctx.FormData = make(map[string]string)
	}
	for k, v := range data {
		sess.ctx.FormData[k] = v
	}
}

// Clear discards the session's context entirely.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func copyContext(ctx *models.ConversationContext) models.ConversationContext {
	out := models.ConversationContext{
		SessionID:      ctx.SessionID,
		UserID:         ctx.UserID,
		StepInProgress: ctx.StepInProgress,
	}
	out.History = append([]models.Message(nil), ctx.History...)
	out.ContextStack = append([]models.Category(nil), ctx.ContextStack...)
	if ctx.FormData != nil {
		out.FormData = make(map[string]string, len(ctx.FormData))
		for k, v := range ctx.FormData {
			out.FormData[k] = v
		}
	}
	if ctx.Profile != nil {
		clone := *ctx.Profile
		out.Profile = &clone
	}
	return out
}
