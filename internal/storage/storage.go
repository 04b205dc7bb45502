package storage

import (
	"context"

	"github.com/xaenox/shop-assistant/internal/models"
)

// Collaborator contracts consumed by the dialogue engine. They are the
// only places the engine performs real I/O; every method takes a
// context and the engine passes through the caller's, imposing no
// deadline of its own.

// ProfileStore owns user profiles. Get returns (nil, nil) for an
// unknown user — the engine treats an absent profile as anonymous.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Update(ctx context.Context, profile *models.UserProfile) error
	TrackInteraction(ctx context.Context, userID, interactionType, data string) error
}

// OrderTracker resolves order ids or tracking numbers. Lookup returns
// (nil, nil) on a miss.
type OrderTracker interface {
	Lookup(ctx context.Context, orderID string) (*models.OrderStatus, error)
}

// KnowledgeBase searches help articles, most relevant first.
type KnowledgeBase interface {
	Search(ctx context.Context, query string) ([]models.Article, error)
}

// InteractionLogger records processed messages. Best-effort: the engine
// logs and swallows its errors.
type InteractionLogger interface {
	Log(ctx context.Context, userID, message string, category models.Category) error
}

// FeedbackSink records end-of-conversation ratings (1..5).
type FeedbackSink interface {
	Record(ctx context.Context, sessionID string, rating int, comment string) error
}
