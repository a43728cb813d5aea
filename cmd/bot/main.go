package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ai-assistant/internal/assistant"
	"ai-assistant/internal/config"
	"ai-assistant/internal/llm"
	"ai-assistant/internal/logging"
	"ai-assistant/internal/prompt"
	"ai-assistant/internal/registry"
	"ai-assistant/internal/scheduler"
	"ai-assistant/internal/store"
	"ai-assistant/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFilePath)
	if err != nil {
		log.Fatalf("failed to init logging: %v", err)
	}
	defer logger.Close()

	fileStore, err := store.NewFileStore(cfg.HistoryDir, logger)
	if err != nil {
		log.Fatalf("failed to init history store: %v", err)
	}

	router := llm.NewRouter(
		llm.NewOpenAI(cfg.ProxyAPIKey, cfg.OpenAIBaseURL, cfg.ProxySupportsReasoning),
		llm.NewAnthropic(cfg.ProxyAPIKey, cfg.AnthropicBaseURL),
		logger,
	)

	reg := registry.New(fileStore, registry.Defaults{
		Model:       cfg.DefaultModel,
		Temperature: cfg.DefaultTemperature,
		Language:    cfg.DefaultLanguage,
	}, logger)

	asst := assistant.New(reg, router, fileStore, cfg.ReasoningEffort, logger)
	welcomer := prompt.NewWelcomer(router, cfg.WelcomePromptPath, cfg.DefaultModel, cfg.DefaultTemperature, logger)

	sched := scheduler.New(logger)
	sched.SetBackupFunction(asst.ExportAll)
	if err := sched.Start(cfg.BackupCron); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	bot, err := telegram.New(cfg.TelegramBotToken, asst, welcomer, logger)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot.Start(ctx)
}
