package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/shop-assistant/internal/bot"
	"github.com/xaenox/shop-assistant/internal/classifier"
	"github.com/xaenox/shop-assistant/internal/engine"
	"github.com/xaenox/shop-assistant/internal/storage"
	"github.com/xaenox/shop-assistant/pkg/config"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Storage backs every collaborator: profiles, orders, knowledge
	// base, interaction log and feedback.
	var deps engine.Deps
	var closer interface{ Close() error }
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store := storage.NewMemoryStorage()
		deps = engine.Deps{
			Profiles:     store,
			Orders:       store,
			Knowledge:    store,
			Interactions: store,
			Feedback:     store,
		}
		closer = store
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err := storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
		deps = engine.Deps{
			Profiles:     store,
			Orders:       store,
			Knowledge:    store,
			Interactions: store,
			Feedback:     store,
		}
		closer = store
	}
	defer closer.Close()

	// The rule classifier is the default; an API key switches in the
	// model-backed one, which still falls back to the rules.
	if cfg.OpenAI.APIKey != "" {
		logger.Info("Using GPT classifier", zap.String("model", cfg.OpenAI.Model))
		deps.Classifier = classifier.NewGPTClassifier(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	} else {
		logger.Info("Using rule classifier")
		deps.Classifier = classifier.NewRuleClassifier()
	}

	eng := engine.New(deps, engine.Config{
		HistoryCap:           cfg.Engine.HistoryCap,
		HistoryTrim:          cfg.Engine.HistoryTrim,
		ContextStackSize:     cfg.Engine.ContextStackSize,
		SuggestionCap:        cfg.Engine.SuggestionCap,
		EscalationConfidence: cfg.Engine.EscalationConfidence,
		PreviewLength:        cfg.Engine.PreviewLength,
		StreamDelay:          time.Duration(cfg.Engine.StreamDelayMs) * time.Millisecond,
	}, logger)

	b, err := bot.New(cfg.Telegram.Token, eng, cfg.Engine.Mode, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
