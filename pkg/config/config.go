package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram Telegram `mapstructure:"telegram"`
	Database Database `mapstructure:"database"`
	Engine   Engine   `mapstructure:"engine"`
	OpenAI   OpenAI   `mapstructure:"openai"`
}

type Telegram struct {
	Token string `mapstructure:"token"`
}

type Database struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type Engine struct {
	HistoryCap           int     `mapstructure:"history_cap"`
	HistoryTrim          int     `mapstructure:"history_trim"`
	ContextStackSize     int     `mapstructure:"context_stack_size"`
	SuggestionCap        int     `mapstructure:"suggestion_cap"`
	EscalationConfidence float64 `mapstructure:"escalation_confidence"`
	PreviewLength        int     `mapstructure:"preview_length"`
	StreamDelayMs        int     `mapstructure:"stream_delay_ms"`
	Mode                 string  `mapstructure:"mode"`
}

type OpenAI struct {
	// When api_key is empty the deterministic rule classifier is used.
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

func parseDatabaseURL(dbURL string) (Database, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return Database{}, err
	}

	password, _ := u.User.Password()
	port := 5432
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	return Database{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   strings.TrimPrefix(u.Path, "/"),
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", false)
	v.SetDefault("engine.history_cap", 100)
	v.SetDefault("engine.history_trim", 50)
	v.SetDefault("engine.context_stack_size", 5)
	v.SetDefault("engine.suggestion_cap", 4)
	v.SetDefault("engine.escalation_confidence", 0.8)
	v.SetDefault("engine.preview_length", 160)
	v.SetDefault("engine.stream_delay_ms", 30)
	v.SetDefault("engine.mode", "buyer")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 150)
	v.SetDefault("openai.temperature", 0.2)

	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		config.Database = dbConfig
	}

	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}
	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	return &config, nil
}
