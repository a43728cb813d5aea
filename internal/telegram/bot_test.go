package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-assistant/internal/assistant"
	"ai-assistant/internal/llm"
	"ai-assistant/internal/logging"
	"ai-assistant/internal/prompt"
	"ai-assistant/internal/registry"
	"ai-assistant/internal/store"
)

type fakeSender struct{ sent []tgbotapi.Chattable }

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) texts() []string {
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

type fakeClient struct {
	reply llm.Reply
	err   error
}

func (f *fakeClient) Generate(_ context.Context, _ llm.Request) (llm.Reply, error) {
	return f.reply, f.err
}

func newTestBot(t *testing.T, turnArray, systemTurn *fakeClient) (*Bot, *fakeSender) {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir(), logging.Nop())
	require.NoError(t, err)
	reg := registry.New(fs, registry.Defaults{Model: "claude-sonnet-4-5-20250929", Temperature: 1.0, Language: "ru"}, logging.Nop())
	router := llm.NewRouter(turnArray, systemTurn, logging.Nop())
	asst := assistant.New(reg, router, fs, "", logging.Nop())
	welcomer := prompt.NewWelcomer(router, "", "claude-sonnet-4-5-20250929", 1.0, logging.Nop())

	s := &fakeSender{}
	return &Bot{s: s, assistant: asst, welcomer: welcomer, log: logging.Nop()}, s
}

func userMessage(text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: 42, FirstName: "Анна"},
		Chat:      &tgbotapi.Chat{ID: 100},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		cmdLen := len(strings.Fields(text)[0])
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}}
	}
	return msg
}

func TestTextTurnSendsReplyWithMetrics(t *testing.T) {
	systemTurn := &fakeClient{reply: llm.Reply{
		Content: "Привет! Как дела?",
		Usage:   &llm.Usage{Family: llm.FamilySystemTurn, InputTokens: 12, OutputTokens: 6},
	}}
	b, s := newTestBot(t, &fakeClient{}, systemTurn)

	b.handleIncomingMessage(context.Background(), userMessage("Привет"))

	texts := s.texts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Привет! Как дела?")
	assert.Contains(t, texts[0], "📊 Метрики:")
	assert.Contains(t, texts[0], "Входные токены: 12")
}

func TestFailedTurnSendsErrorReplyWithoutMetrics(t *testing.T) {
	systemTurn := &fakeClient{err: errors.New("boom")}
	b, s := newTestBot(t, &fakeClient{}, systemTurn)

	b.handleIncomingMessage(context.Background(), userMessage("Привет"))

	texts := s.texts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Ошибка при получении ответа")
	assert.NotContains(t, texts[0], "Метрики")
}

func TestMenuKeywords(t *testing.T) {
	b, s := newTestBot(t, &fakeClient{}, &fakeClient{})

	b.handleIncomingMessage(context.Background(), userMessage("меню"))
	texts := s.texts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Главное меню")
	assert.Contains(t, texts[0], "claude-sonnet-4-5-20250929")
}

func TestModelCommandChangesModel(t *testing.T) {
	b, s := newTestBot(t, &fakeClient{}, &fakeClient{})

	b.handleIncomingMessage(context.Background(), userMessage("/model gpt-4o"))

	texts := s.texts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Модель изменена")
	assert.Equal(t, "gpt-4o", b.assistant.Session(42).Model())
}

func TestTemperatureCommandRejectsOutOfRange(t *testing.T) {
	b, s := newTestBot(t, &fakeClient{}, &fakeClient{})

	b.handleIncomingMessage(context.Background(), userMessage("/temperature 2.5"))

	texts := s.texts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Некорректная температура")
	assert.InDelta(t, 1.0, b.assistant.Session(42).Temperature(), 1e-9)
}

func TestClearCommand(t *testing.T) {
	systemTurn := &fakeClient{reply: llm.Reply{Content: "ok", Usage: &llm.Usage{Family: llm.FamilySystemTurn}}}
	b, s := newTestBot(t, &fakeClient{}, systemTurn)
	b.handleIncomingMessage(context.Background(), userMessage("Привет"))

	b.handleIncomingMessage(context.Background(), userMessage("/clear"))

	assert.Equal(t, 1, b.assistant.Session(42).Len())
	assert.Contains(t, s.texts()[1], "История диалога очищена")
}

func TestLanguageToggleSwitchesInterface(t *testing.T) {
	b, s := newTestBot(t, &fakeClient{}, &fakeClient{})

	b.handleIncomingMessage(context.Background(), userMessage("/language"))
	assert.Equal(t, "en", b.assistant.Session(42).Language())
	assert.Contains(t, s.texts()[0], "English")

	b.handleIncomingMessage(context.Background(), userMessage("/language"))
	assert.Equal(t, "ru", b.assistant.Session(42).Language())
}

func TestMenuKeyboardMarksCurrentModel(t *testing.T) {
	b, _ := newTestBot(t, &fakeClient{}, &fakeClient{})

	kb := b.menuKeyboard(42)
	var marked string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if strings.Contains(btn.Text, "✅") {
				marked = btn.Text
			}
		}
	}
	assert.Contains(t, marked, "Claude 4.5 Sonnet")
}

func TestCallbackWithoutMessageIsIgnored(t *testing.T) {
	b, s := newTestBot(t, &fakeClient{}, &fakeClient{})

	// Inline-mode callbacks have no attached message.
	cb := &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		From: &tgbotapi.User{ID: 42},
		Data: "clear_history",
	}
	assert.NotPanics(t, func() { b.handleCallback(context.Background(), cb) })
	assert.Empty(t, s.sent)
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", maxMessageLength))

	long := strings.Repeat("п", maxMessageLength+10)
	parts := splitMessage(long, maxMessageLength)
	require.Len(t, parts, 2)
	assert.Len(t, []rune(parts[0]), maxMessageLength)
	assert.Len(t, []rune(parts[1]), 10)
}

func TestMetricsFooterTurnArrayFamily(t *testing.T) {
	u := &llm.Usage{Family: llm.FamilyTurnArray, PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}
	footer := metricsFooter("ru", u)
	assert.Contains(t, footer, "Промпт токены: 10")
	assert.Contains(t, footer, "Всего токенов: 15")
}

func TestMetricsFooterNilUsage(t *testing.T) {
	assert.Empty(t, metricsFooter("ru", nil))
}
