package engine

import (
	"context"
	"strings"
	"time"
)

// streamController turns a finished answer into an incremental
// word-by-word feed. Cancellation is cooperative: the token is checked
// before every chunk, so a cancelled stream stops cleanly and never
// emits again.
type streamController struct {
	delay time.Duration
}

// run emits a thinking phrase followed by the answer word by word. It
// returns true only if every chunk was delivered; false means the
// context was cancelled and the caller must not invoke onComplete.
func (s *streamController) run(ctx context.Context, thinking, answer string, onChunk func(string)) bool {
	chunks := make([]string, 0, 16)
	if thinking != "" {
		chunks = append(chunks, thinking)
	}
	words := strings.Fields(answer)
	for i, word := range words {
		if i < len(words)-1 {
			word += " "
		}
		chunks = append(chunks, word)
	}

	for _, chunk := range chunks {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		onChunk(chunk)

		if s.delay > 0 {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(s.delay):
			}
		}
	}
	select {
	case <-ctx.Done():
		return false
	default:
		return true
	}
}
