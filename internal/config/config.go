package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// Provider API settings. Both backends go through the same proxy key.
	ProxyAPIKey      string `env:"PROXY_API_KEY,required"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL" envDefault:"https://api.proxyapi.ru/openai/v1"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.proxyapi.ru/anthropic"`
	// The proxy does not pass reasoning parameters through; when false any
	// requested reasoning effort is dropped before the request is sent.
	ProxySupportsReasoning bool   `env:"PROXY_SUPPORTS_REASONING" envDefault:"false"`
	ReasoningEffort        string `env:"REASONING_EFFORT"`

	// Session defaults for freshly created users.
	DefaultModel       string  `env:"DEFAULT_MODEL" envDefault:"claude-sonnet-4-5-20250929"`
	DefaultTemperature float64 `env:"DEFAULT_TEMPERATURE" envDefault:"1.0"`
	DefaultLanguage    string  `env:"DEFAULT_LANGUAGE" envDefault:"ru"`

	// Storage
	HistoryDir        string `env:"HISTORY_DIR" envDefault:"data"`
	WelcomePromptPath string `env:"WELCOME_PROMPT_PATH" envDefault:"prompts/welcome_prompt.json"`

	// Logging
	LogFilePath string `env:"LOG_FILE_PATH" envDefault:"logs/app.log"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// BackupCron schedules the nightly transcript export sweep. Empty
	// disables it.
	BackupCron string `env:"BACKUP_CRON" envDefault:"0 21 * * *"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
