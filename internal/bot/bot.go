package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/shop-assistant/internal/engine"
	"github.com/xaenox/shop-assistant/internal/models"
)

// editEvery throttles how often a streaming reply is edited in place;
// Telegram rate-limits message edits aggressively.
const editEvery = 8

// Bot is a thin Telegram front-end over the dialogue engine. One chat
// maps to one engine session.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *engine.Engine
	mode   string
	logger *zap.Logger
}

func New(token string, eng *engine.Engine, mode string, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:    api,
		engine: eng,
		mode:   mode,
		logger: logger,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx := context.Background()

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	sessionID := strconv.FormatInt(message.Chat.ID, 10)
	userID := strconv.FormatInt(message.From.ID, 10)

	if _, err := b.api.Request(tgbotapi.NewChatAction(message.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Warn("Failed to send typing action", zap.Error(err))
	}

	// Stream the answer into one message, editing it in place as
	// chunks arrive.
	var mu sync.Mutex
	var buf strings.Builder
	var sentID int
	chunks := 0

	onChunk := func(chunk string) {
		mu.Lock()
		defer mu.Unlock()

		buf.WriteString(chunk)
		chunks++
		if sentID == 0 {
			msg := tgbotapi.NewMessage(message.Chat.ID, buf.String())
			sent, err := b.api.Send(msg)
			if err != nil {
				b.logger.Error("Failed to send streamed message",
					zap.Error(err),
					zap.Int64("chat_id", message.Chat.ID))
				return
			}
			sentID = sent.MessageID
			buf.Reset()
			return
		}
		if chunks%editEvery == 0 {
			b.editStream(message.Chat.ID, sentID, buf.String())
		}
	}

	onComplete := func(resp *models.Response) {
		mu.Lock()
		defer mu.Unlock()

		text := resp.Answer
		if len(resp.Suggestions) > 0 {
			text += "\n\nYou could also:\n• " + strings.Join(resp.Suggestions, "\n• ")
		}
		if resp.EscalateToHuman {
			text += "\n\nA support agent has been notified and will join this chat."
		}
		if sentID == 0 {
			b.sendMessage(message.Chat.ID, text)
			return
		}
		b.editStream(message.Chat.ID, sentID, text)
	}

	b.engine.StreamMessage(ctx, messageContent(message), sessionID, userID, engine.Options{Mode: b.mode}, onChunk, onComplete)
}

// editStream replaces the streamed message's text. The streamed prefix
// and the final text always share a prefix, so edits look like typing.
func (b *Bot) editStream(chatID int64, messageID int, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("Failed to edit streamed message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	sessionID := strconv.FormatInt(message.Chat.ID, 10)

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "reset":
		b.engine.ClearSession(sessionID)
		b.sendMessage(message.Chat.ID, "Done — we're starting fresh. What can I help you with?")
	case "rate":
		b.handleRate(ctx, message, sessionID)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Hi! I'm your shopping assistant. 🛍

I can track orders, answer product questions, recommend items, and help with returns.
Just type your question. Use /help to see all commands.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/start - Start the assistant
/help - Show this help message
/reset - Forget this conversation and start over
/rate N [comment] - Rate this conversation from 1 to 5

You can ask me things like:
- "Where is my order #12345?"
- "How much does the canvas tote cost?"
- "Recommend a gift for a runner"`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleRate(ctx context.Context, message *tgbotapi.Message, sessionID string) {
	args := strings.Fields(message.CommandArguments())
	if len(args) == 0 {
		b.sendMessage(message.Chat.ID, "Usage: /rate N [comment], where N is 1 to 5.")
		return
	}

	rating, err := strconv.Atoi(args[0])
	if err != nil {
		b.sendMessage(message.Chat.ID, "Usage: /rate N [comment], where N is 1 to 5.")
		return
	}
	comment := strings.Join(args[1:], " ")

	if err := b.engine.CollectFeedback(ctx, sessionID, rating, comment); err != nil {
		b.logger.Error("Failed to collect feedback",
			zap.Error(err),
			zap.String("session_id", sessionID))
		b.sendMessage(message.Chat.ID, "Sorry, I couldn't record that rating. Ratings go from 1 to 5.")
		return
	}
	b.sendMessage(message.Chat.ID, "Thanks for the feedback! 🙏")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func messageContent(message *tgbotapi.Message) string {
	if message.Caption != "" {
		return message.Caption
	}
	return message.Text
}
