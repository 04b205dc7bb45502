package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/shop-assistant/internal/models"
)

func TestMemoryStorageProfiles(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got, "unknown user resolves to nil, not an error")

	require.NoError(t, s.Update(ctx, &models.UserProfile{UserID: "u1", Name: "Ada", Interests: []string{"running"}}))

	got, err = s.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Name)

	require.NoError(t, s.TrackInteraction(ctx, "u1", "message", "track_order"))
	got, _ = s.Get(ctx, "u1")
	assert.Equal(t, 1, got.Interactions)
}

func TestMemoryStorageOrders(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	s.AddOrder(&models.OrderStatus{OrderID: "ZWM-7829", Status: "out_for_delivery", Location: "Local Distribution Center"})

	status, err := s.Lookup(ctx, "zwm-7829")
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "out_for_delivery", status.Status)

	status, err = s.Lookup(ctx, "nope-123")
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestMemoryStorageSearchRelevance(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	s.AddArticle(models.Article{Title: "Shipping times", Content: "...", Keywords: []string{"shipping", "delivery"}})
	s.AddArticle(models.Article{Title: "Return policy", Content: "...", Keywords: []string{"return", "refund", "policy"}})
	s.AddArticle(models.Article{Title: "Gift wrapping", Content: "...", Keywords: []string{"gift"}})

	articles, err := s.Search(ctx, "what is your return refund policy")
	require.NoError(t, err)
	require.NotEmpty(t, articles)
	assert.Equal(t, "Return policy", articles[0].Title)

	articles, err = s.Search(ctx, "quantum chromodynamics")
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestMemoryStorageFeedbackAndLogs(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "s1", 5, "great"))
	require.NoError(t, s.Log(ctx, "u1", "hello", models.CategoryGeneral))

	feedback := s.Feedbacks()
	require.Len(t, feedback, 1)
	assert.Equal(t, 5, feedback[0].Rating)

	logs := s.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, models.CategoryGeneral, logs[0].Category)
}
