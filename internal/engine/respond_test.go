package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/shop-assistant/internal/models"
)

func TestProductInfoUsesKnowledgeBase(t *testing.T) {
	eng, store := newTestEngine(t, Config{PreviewLength: 40})
	store.AddArticle(models.Article{
		Title:    "Canvas tote care",
		Content:  strings.Repeat("The canvas tote is made from organic cotton and should be washed cold. ", 5),
		Keywords: []string{"tote", "canvas", "care"},
	})

	resp := eng.ProcessMessage(context.Background(), "how much does the canvas tote cost", "s1", "u1", Options{})

	assert.Equal(t, models.CategoryProduct, resp.Category)
	assert.Contains(t, resp.Answer, "Canvas tote care")
	assert.Contains(t, resp.Answer, "…", "long article content must be truncated to a preview")
}

func TestProductInfoMissFallsBack(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})

	resp := eng.ProcessMessage(context.Background(), "what is the price of the hoverboard", "s1", "u1", Options{})

	assert.Equal(t, models.CategoryProduct, resp.Category)
	assert.Contains(t, resp.Answer, "which product")
}

func TestComplimentPersonalized(t *testing.T) {
	eng, store := newTestEngine(t, Config{})
	ctx := context.Background()
	require.NoError(t, store.Update(ctx, &models.UserProfile{UserID: "u1", Name: "Ada"}))

	resp := eng.ProcessMessage(ctx, "thank you, this was awesome", "s1", "u1", Options{})

	assert.Contains(t, resp.Answer, "Ada")
}

func TestBuyerSustainabilityRecommendation(t *testing.T) {
	eng, store := newTestEngine(t, Config{})
	ctx := context.Background()
	require.NoError(t, store.Update(ctx, &models.UserProfile{UserID: "u1", Sustainability: true}))

	resp := eng.ProcessMessage(ctx, "recommend me a backpack", "s1", "u1", Options{})

	assert.Equal(t, models.CategoryRecommendation, resp.Category)
	assert.Contains(t, resp.Answer, "sustainable")
}

func TestTrackOrderWithoutIDAsksForNumber(t *testing.T) {
	eng, _ := newTestEngine(t, Config{})

	resp := eng.ProcessMessage(context.Background(), "can you track my package", "s1", "u1", Options{})

	assert.Equal(t, models.CategoryOrder, resp.Category)
	assert.Contains(t, resp.Answer, "order number")
}

func TestPersonalInfoRemembersName(t *testing.T) {
	eng, store := newTestEngine(t, Config{})
	ctx := context.Background()

	resp := eng.ProcessMessage(ctx, "my name is ada", "s1", "u1", Options{})
	assert.Contains(t, resp.Answer, "Ada")

	profile, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Ada", profile.Name)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	long := truncate("one two three four five six seven eight", 20)
	assert.True(t, strings.HasSuffix(long, "…"))
	assert.LessOrEqual(t, len([]rune(long)), 21)
}
