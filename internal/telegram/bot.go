package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-assistant/internal/assistant"
	"ai-assistant/internal/logging"
	"ai-assistant/internal/prompt"
)

// maxMessageLength is the Telegram limit for one message.
const maxMessageLength = 4096

type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	assistant *assistant.Assistant
	welcomer  *prompt.Welcomer
	log       *logging.Logger
}

func New(botToken string, asst *assistant.Assistant, welcomer *prompt.Welcomer, log *logging.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		api:       api,
		s:         botAPISender{api: api},
		assistant: asst,
		welcomer:  welcomer,
		log:       log,
	}
	b.registerCommands()
	return b, nil
}

func (b *Bot) registerCommands() {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Начать работу с ботом (открывает меню)"},
		tgbotapi.BotCommand{Command: "menu", Description: "Открыть главное меню"},
		tgbotapi.BotCommand{Command: "model", Description: "Выбрать модель AI"},
		tgbotapi.BotCommand{Command: "temperature", Description: "Установить температуру генерации"},
		tgbotapi.BotCommand{Command: "language", Description: "Переключить язык интерфейса"},
		tgbotapi.BotCommand{Command: "clear", Description: "Очистить историю диалога"},
		tgbotapi.BotCommand{Command: "export", Description: "Скачать историю диалога"},
		tgbotapi.BotCommand{Command: "help", Description: "Показать справку по командам"},
	)
	if _, err := b.api.Request(commands); err != nil {
		b.log.Error(err, map[string]any{"action": "set_my_commands"})
	}
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.log.Event("bot started", map[string]any{"username": b.api.Self.UserName})

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Event("bot stopped", nil)
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
				continue
			}
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		b.log.Error(err, map[string]any{"action": "send_message", "chat_id": chatID})
	}
}

// sendLong splits text into pieces under the Telegram length cap before
// sending.
func (b *Bot) sendLong(chatID int64, text string) {
	for _, part := range splitMessage(text, maxMessageLength) {
		b.sendMessage(chatID, part)
	}
}

func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}
	var parts []string
	for len(runes) > 0 {
		n := limit
		if n > len(runes) {
			n = len(runes)
		}
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	return parts
}
