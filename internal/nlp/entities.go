package nlp

import (
	"regexp"
	"strings"

	"github.com/xaenox/shop-assistant/internal/models"
)

// Entity patterns run against normalized (lowercased) text. Each is
// independent; a pattern that does not fire leaves its key out of the
// result entirely. Matched values are passed through as-is — validating
// an order id against real orders is the order tracker's job.
var (
	orderIDRe = regexp.MustCompile(`(?:\border(?:\s+(?:number|no|id))?\b|#)[\s:#]*([a-z0-9][a-z0-9-]*)`)
	priceRe   = regexp.MustCompile(`[$€£]\s?\d+(?:\.\d{2})?|\b\d+\.\d{2}\b`)
	dateRe    = regexp.MustCompile(`\b(?:today|tomorrow|yesterday|\d{1,2}/\d{1,2}/\d{4})\b`)
)

// ExtractEntities pulls order ids, prices and dates out of the text.
func ExtractEntities(text string) map[string]string {
	entities := make(map[string]string)

	for _, m := range orderIDRe.FindAllStringSubmatch(text, -1) {
		// An order id has to carry at least one digit; "order status"
		// should not capture "status".
		if strings.ContainsAny(m[1], "0123456789") {
			entities[models.EntityOrderID] = m[1]
			break
		}
	}
	if m := priceRe.FindString(text); m != "" {
		entities[models.EntityPrice] = strings.ReplaceAll(m, " ", "")
	}
	if m := dateRe.FindString(text); m != "" {
		entities[models.EntityDate] = m
	}
	return entities
}
