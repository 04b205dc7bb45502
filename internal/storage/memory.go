package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xaenox/shop-assistant/internal/models"
)

// MemoryStorage implements every collaborator contract in memory. It
// backs tests and the use_in_memory deployment mode.
type MemoryStorage struct {
	mu           sync.RWMutex
	profiles     map[string]*models.UserProfile
	orders       map[string]*models.OrderStatus
	articles     []models.Article
	interactions []Interaction
	logs         []LogEntry
	feedback     []Feedback
}

// Interaction is one tracked profile interaction.
type Interaction struct {
	UserID    string
	Type      string
	Data      string
	CreatedAt time.Time
}

// LogEntry is one best-effort interaction log record.
type LogEntry struct {
	UserID    string
	Message   string
	Category  models.Category
	CreatedAt time.Time
}

// Feedback is one recorded rating.
type Feedback struct {
	SessionID string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		profiles: make(map[string]*models.UserProfile),
		orders:   make(map[string]*models.OrderStatus),
	}
}

func (s *MemoryStorage) Get(_ context.Context, userID string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if profile, ok := s.profiles[userID]; ok {
		clone := *profile
		return &clone, nil
	}
	return nil, nil
}

func (s *MemoryStorage) Update(_ context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *profile
	s.profiles[profile.UserID] = &clone
	return nil
}

func (s *MemoryStorage) TrackInteraction(_ context.Context, userID, interactionType, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.interactions = append(s.interactions, Interaction{
		UserID:    userID,
		Type:      interactionType,
		Data:      data,
		CreatedAt: time.Now(),
	})
	if profile, ok := s.profiles[userID]; ok {
		profile.Interactions++
	}
	return nil
}

func (s *MemoryStorage) Lookup(_ context.Context, orderID string) (*models.OrderStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.orders[strings.ToLower(orderID)]; ok {
		clone := *status
		return &clone, nil
	}
	return nil, nil
}

// Search scores each article by keyword and title-word overlap with the
// query and returns hits ordered by descending score. The sort is
// stable so seeding order breaks ties deterministically.
func (s *MemoryStorage) Search(_ context.Context, query string) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queryWords := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(query)) {
		queryWords[w] = struct{}{}
	}

	type scored struct {
		article models.Article
		score   int
	}
	var hits []scored
	for _, article := range s.articles {
		score := 0
		for _, kw := range article.Keywords {
			if _, ok := queryWords[strings.ToLower(kw)]; ok {
				score += 2
			}
		}
		for _, w := range strings.Fields(strings.ToLower(article.Title)) {
			if _, ok := queryWords[w]; ok {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{article, score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	out := make([]models.Article, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.article)
	}
	return out, nil
}

func (s *MemoryStorage) Log(_ context.Context, userID, message string, category models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, LogEntry{
		UserID:    userID,
		Message:   message,
		Category:  category,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *MemoryStorage) Record(_ context.Context, sessionID string, rating int, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feedback = append(s.feedback, Feedback{
		SessionID: sessionID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	})
	return nil
}

// Seeding helpers for tests and the in-memory deployment mode.

func (s *MemoryStorage) AddOrder(status *models.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *status
	s.orders[strings.ToLower(status.OrderID)] = &clone
}

func (s *MemoryStorage) AddArticle(article models.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.articles = append(s.articles, article)
}

// Feedbacks returns a copy of all recorded feedback.
func (s *MemoryStorage) Feedbacks() []Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Feedback(nil), s.feedback...)
}

// Logs returns a copy of all interaction log entries.
func (s *MemoryStorage) Logs() []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]LogEntry(nil), s.logs...)
}

func (s *MemoryStorage) Close() error {
	return nil
}
