package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"lowercases", "WHERE IS MY ORDER", "where is my order"},
		{"informal words", "u r great thx", "you are great thanks"},
		{"contractions", "I can't find it, don't worry", "i cannot find it, do not worry"},
		{"apostrophe forms", "Where's my package?", "where is my package?"},
		{"whole words only", "your product is pure gold", "your product is pure gold"},
		{"mixed", "pls track my order ASAP", "please track my order as soon as possible"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	samples := []string{
		"u wanna know where's my order?",
		"Dont do that, im waiting",
		"I've been waiting since YESTERDAY, plz help",
		"perfectly normal sentence already",
		"",
	}

	for _, s := range samples {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", s)
	}
}
