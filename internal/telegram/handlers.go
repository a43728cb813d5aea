package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-assistant/internal/i18n"
	"ai-assistant/internal/llm"
)

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(ctx, msg)
		case "menu":
			b.sendMenu(chatID, userID)
		case "model":
			b.handleModel(chatID, userID, strings.TrimSpace(msg.CommandArguments()))
		case "temperature":
			b.handleTemperature(chatID, userID, strings.TrimSpace(msg.CommandArguments()))
		case "language":
			b.handleLanguageToggle(chatID, userID)
		case "clear":
			b.handleClear(chatID, userID)
		case "export":
			b.handleExport(chatID, userID)
		case "help":
			b.sendMessage(chatID, i18n.T(b.lang(userID), "help"))
		default:
			b.sendMessage(chatID, i18n.T(b.lang(userID), "help"))
		}
		return
	}

	lowered := strings.ToLower(strings.TrimSpace(msg.Text))
	if lowered == "exit" || lowered == "меню" || lowered == "menu" {
		b.sendMenu(chatID, userID)
		return
	}
	if msg.Text == "" {
		return
	}

	b.handleText(ctx, chatID, userID, msg.Text)
}

func (b *Bot) handleText(ctx context.Context, chatID, userID int64, text string) {
	b.request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	reply, usage := b.assistant.HandleTurn(ctx, userID, text)
	out := reply + metricsFooter(b.lang(userID), usage)
	b.sendLong(chatID, out)
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	s := b.assistant.Session(userID)

	welcome := b.welcomer.Generate(ctx, msg.From.FirstName, s.Language())
	welcome += "\n\n" + i18n.T(s.Language(), "current_model", s.Model())

	out := tgbotapi.NewMessage(msg.Chat.ID, welcome)
	out.ReplyMarkup = b.menuKeyboard(userID)
	if _, err := b.s.Send(out); err != nil {
		b.log.Error(err, map[string]any{"action": "send_welcome", "chat_id": msg.Chat.ID})
	}
}

func (b *Bot) sendMenu(chatID, userID int64) {
	s := b.assistant.Session(userID)
	lang := s.Language()
	text := fmt.Sprintf("%s\n\n%s\n%s\n\n%s",
		i18n.T(lang, "main_menu"),
		i18n.T(lang, "current_model", s.Model()),
		i18n.T(lang, "current_temperature", s.Temperature()),
		i18n.T(lang, "select_model"),
	)
	out := tgbotapi.NewMessage(chatID, text)
	out.ReplyMarkup = b.menuKeyboard(userID)
	if _, err := b.s.Send(out); err != nil {
		b.log.Error(err, map[string]any{"action": "send_menu", "chat_id": chatID})
	}
}

func (b *Bot) handleModel(chatID, userID int64, arg string) {
	lang := b.lang(userID)
	if arg == "" {
		b.sendMessage(chatID, i18n.T(lang, "model_usage", b.assistant.Session(userID).Model()))
		return
	}
	old := b.assistant.SetModel(userID, arg)
	b.sendMessage(chatID, i18n.T(lang, "model_changed", old, arg))
}

func (b *Bot) handleTemperature(chatID, userID int64, arg string) {
	lang := b.lang(userID)
	if arg == "" {
		b.sendMessage(chatID, i18n.T(lang, "temperature_usage", b.assistant.Session(userID).Temperature()))
		return
	}
	t, err := b.assistant.SetTemperature(userID, arg)
	if err != nil {
		b.sendMessage(chatID, i18n.T(lang, "temperature_invalid"))
		return
	}
	b.sendMessage(chatID, i18n.T(lang, "temperature_set", t))
}

func (b *Bot) handleLanguageToggle(chatID, userID int64) {
	next := i18n.LangEnglish
	if b.lang(userID) == i18n.LangEnglish {
		next = i18n.LangRussian
	}
	b.assistant.SetLanguage(userID, next)
	b.sendMessage(chatID, i18n.T(next, "language_set"))
}

func (b *Bot) handleClear(chatID, userID int64) {
	b.assistant.Clear(userID)
	b.sendMessage(chatID, i18n.T(b.lang(userID), "history_cleared"))
}

func (b *Bot) handleExport(chatID, userID int64) {
	lang := b.lang(userID)
	path, err := b.assistant.Export(userID)
	if err != nil {
		b.sendMessage(chatID, i18n.T(lang, "history_empty"))
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = i18n.T(lang, "export_caption")
	if _, err := b.s.Send(doc); err != nil {
		b.log.Error(err, map[string]any{"action": "send_export", "chat_id": chatID})
		b.sendMessage(chatID, i18n.T(lang, "history_empty"))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	b.request(tgbotapi.NewCallback(cb.ID, ""))

	// Inline-mode callbacks carry no message to act on.
	if cb.Message == nil {
		return
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	lang := b.lang(userID)

	switch {
	case strings.HasPrefix(cb.Data, "model_"):
		model := strings.TrimPrefix(cb.Data, "model_")
		old := b.assistant.SetModel(userID, model)
		b.editMenu(chatID, cb.Message.MessageID, userID, i18n.T(lang, "model_changed", old, model))
	case cb.Data == "download_history":
		b.handleExport(chatID, userID)
	case cb.Data == "clear_history":
		b.assistant.Clear(userID)
		b.editMenu(chatID, cb.Message.MessageID, userID, i18n.T(lang, "history_cleared"))
	case cb.Data == "toggle_language":
		next := i18n.LangEnglish
		if lang == i18n.LangEnglish {
			next = i18n.LangRussian
		}
		b.assistant.SetLanguage(userID, next)
		b.editMenu(chatID, cb.Message.MessageID, userID, i18n.T(next, "language_set"))
	case cb.Data == "close_menu":
		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, i18n.T(lang, "menu_closed"))
		if _, err := b.s.Send(edit); err != nil {
			b.log.Error(err, map[string]any{"action": "close_menu", "chat_id": chatID})
		}
	}
}

func (b *Bot) editMenu(chatID int64, messageID int, userID int64, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, b.menuKeyboard(userID))
	if _, err := b.s.Send(edit); err != nil {
		b.log.Error(err, map[string]any{"action": "edit_menu", "chat_id": chatID})
	}
}

func (b *Bot) menuKeyboard(userID int64) tgbotapi.InlineKeyboardMarkup {
	s := b.assistant.Session(userID)
	lang := s.Language()

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range llm.KnownModels {
		label := m.Label
		if m.ID == s.Model() {
			label += " ✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "model_"+m.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "download_history"), "download_history"),
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "clear_history"), "clear_history"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "language_button", strings.ToUpper(lang)), "toggle_language"),
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "close_menu"), "close_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// metricsFooter renders the family-tagged usage block appended to replies.
// Nil usage (a degraded turn) produces nothing.
func metricsFooter(lang string, u *llm.Usage) string {
	if u == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(i18n.T(lang, "metrics_header"))
	b.WriteString("\n")
	if u.Family == llm.FamilySystemTurn {
		b.WriteString(i18n.T(lang, "input_tokens", u.InputTokens))
		b.WriteString("\n")
		b.WriteString(i18n.T(lang, "output_tokens", u.OutputTokens))
		if u.CacheCreationTokens > 0 {
			b.WriteString("\n")
			b.WriteString(i18n.T(lang, "cache_creation", u.CacheCreationTokens))
		}
		if u.CacheReadTokens > 0 {
			b.WriteString("\n")
			b.WriteString(i18n.T(lang, "cache_read", u.CacheReadTokens))
		}
	} else {
		b.WriteString(i18n.T(lang, "prompt_tokens", u.PromptTokens))
		b.WriteString("\n")
		b.WriteString(i18n.T(lang, "completion_tokens", u.CompletionTokens))
		b.WriteString("\n")
		b.WriteString(i18n.T(lang, "total_tokens", u.TotalTokens))
	}
	return b.String()
}

func (b *Bot) lang(userID int64) string {
	return b.assistant.Session(userID).Language()
}

// request fires a non-message API call (chat action, callback answer).
func (b *Bot) request(c tgbotapi.Chattable) {
	if b.api == nil {
		return
	}
	if _, err := b.api.Request(c); err != nil {
		b.log.Error(err, map[string]any{"action": "api_request"})
	}
}
