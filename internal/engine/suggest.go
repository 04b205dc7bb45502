package engine

import (
	"fmt"
	"strings"

	"github.com/xaenox/shop-assistant/internal/models"
)

// suggest builds the follow-up suggestions for a response: the
// category's base list first, then personalized entries from the
// profile's interests, deduplicated, truncated to the cap. Order is
// deterministic so identical inputs render identical chips.
func (e *Engine) suggest(category models.Category, profile *models.UserProfile) []string {
	base, ok := baseSuggestions[category]
	if !ok {
		base = baseSuggestions[models.CategoryGeneral]
	}

	out := make([]string, 0, e.cfg.SuggestionCap)
	seen := make(map[string]struct{})
	add := func(s string) {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	for _, s := range base {
		add(s)
	}
	if profile != nil {
		for _, interest := range profile.Interests {
			add(fmt.Sprintf("Show me more %s", interest))
		}
	}

	if len(out) > e.cfg.SuggestionCap {
		out = out[:e.cfg.SuggestionCap]
	}
	return out
}
