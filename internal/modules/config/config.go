package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	configFilePathENV  = "CONFIG_FILE"
	tokenTelegramENV   = "TELEGRAM_TOKEN"
	databaseDSN        = "DATABASE_DSN"
	anthropicKeyENV    = "ANTHROPIC_API_KEY"
	openaiKeyENV       = "OPENAI_API_KEY"
	signalChannelIDENV = "SIGNAL_CHANNEL_ID"
)

// Config ...
type Config struct {
	Telegram struct {
		Token string `mapstructure:"token"`
		// SignalChannelID — канал, из которого читаем сигналы.
		SignalChannelID int64 `mapstructure:"signal_channel_id"`
	} `mapstructure:"telegram"`

	DB string `mapstructure:"db_dsn"`

	AI struct {
		AnthropicKey   string        `mapstructure:"anthropic_key"`
		OpenAIKey      string        `mapstructure:"openai_key"`
		AnthropicModel string        `mapstructure:"anthropic_model"`
		OpenAIModel    string        `mapstructure:"openai_model"`
		Timeout        time.Duration `mapstructure:"timeout"`
	} `mapstructure:"ai"`

	Service struct {
		HealthAddr string `mapstructure:"health_addr"`
		JaegerHost string `mapstructure:"jaeger_host"`
		JaegerPort int    `mapstructure:"jaeger_port"`
	} `mapstructure:"service"`

	// Лимиты чата
	RateLimit      time.Duration `mapstructure:"rate_limit"`
	HistoryDepth   int           `mapstructure:"history_depth"`
	FAQFile        string        `mapstructure:"faq_file"`
	PersistSignals bool          `mapstructure:"persist_signals"`
}

func NewConfig() (*Config, error) {
	v := viper.New()

	configFileName := "values_local"
	if name := os.Getenv(configFilePathENV); name != "" {
		configFileName = name
	}

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.AutomaticEnv()

	v.SetDefault("ai.anthropic_model", "claude-sonnet-4-20250514")
	v.SetDefault("ai.openai_model", "gpt-3.5-turbo")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("service.health_addr", ":8080")
	v.SetDefault("service.jaeger_host", "127.0.0.1")
	v.SetDefault("service.jaeger_port", 6831)
	v.SetDefault("rate_limit", "3s")
	v.SetDefault("history_depth", 8)
	v.SetDefault("faq_file", "configs/faq.yaml")
	v.SetDefault("persist_signals", false)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// env всегда важнее файла
	if token := v.GetString(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if dsn := v.GetString(databaseDSN); dsn != "" {
		config.DB = dsn
	}
	if key := v.GetString(anthropicKeyENV); key != "" {
		config.AI.AnthropicKey = key
	}
	if key := v.GetString(openaiKeyENV); key != "" {
		config.AI.OpenAIKey = key
	}
	if id := v.GetInt64(signalChannelIDENV); id != 0 {
		config.Telegram.SignalChannelID = id
	}

	return config, nil
}
