package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xaenox/shop-assistant/internal/models"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Language
	}{
		{"english", "where is my order and when will it arrive", models.LanguageEnglish},
		{"spanish", "donde esta mi pedido por favor", models.LanguageSpanish},
		{"french", "bonjour comment va ma commande merci", models.LanguageFrench},
		{"no common words defaults english", "zxqv blorp", models.LanguageEnglish},
		{"empty defaults english", "", models.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}

func TestDetectLanguageDeterministic(t *testing.T) {
	text := "gracias por la entrega"
	first := DetectLanguage(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DetectLanguage(text))
	}
}
