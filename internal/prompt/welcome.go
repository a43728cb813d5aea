package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"ai-assistant/internal/chat"
	"ai-assistant/internal/i18n"
	"ai-assistant/internal/llm"
	"ai-assistant/internal/logging"
)

// WelcomeConfig describes the prompt used to generate the greeting shown on
// /start. Loaded from a JSON file so the wording can change without a
// rebuild.
type WelcomeConfig struct {
	Role    string `json:"role"`
	Context string `json:"context"`
	Task    string `json:"task"`
	Format  string `json:"format"`
}

// Welcomer produces the one-shot welcome message. The generation uses an
// ephemeral session that is never persisted; any failure falls back to a
// static localized greeting.
type Welcomer struct {
	router      *llm.Router
	cfg         *WelcomeConfig
	model       string
	temperature float64
	log         *logging.Logger
}

func NewWelcomer(router *llm.Router, configPath, model string, temperature float64, log *logging.Logger) *Welcomer {
	w := &Welcomer{router: router, model: model, temperature: temperature, log: log}
	cfg, err := loadWelcomeConfig(configPath)
	if err != nil {
		log.Warn("welcome prompt not loaded, using static greeting", map[string]any{"file": configPath, "error": err.Error()})
	} else {
		w.cfg = cfg
	}
	return w
}

func loadWelcomeConfig(path string) (*WelcomeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read welcome prompt: %w", err)
	}
	var cfg WelcomeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse welcome prompt: %w", err)
	}
	return &cfg, nil
}

// Generate returns a greeting for the user, AI-written when the prompt
// config is available and the call succeeds, static otherwise.
func (w *Welcomer) Generate(ctx context.Context, userName, lang string) string {
	fallback := i18n.T(lang, "welcome_default", userName)
	if w.cfg == nil {
		return fallback
	}

	system := fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s%s",
		w.cfg.Role, w.cfg.Context, w.cfg.Task, w.cfg.Format, languageInstruction(lang))
	userPrompt := fmt.Sprintf("Имя пользователя: %s", userName)
	if lang == i18n.LangEnglish {
		userPrompt = fmt.Sprintf("User name: %s", userName)
	}

	session := chat.New(w.model, system, w.temperature, lang)
	session.Append(chat.RoleUser, userPrompt)

	res := w.router.Send(ctx, llm.Request{
		Model:       session.Model(),
		Temperature: session.Temperature(),
		Turns:       session.Snapshot(),
		Language:    lang,
	})
	if res.Failed || res.Text == "" {
		return fallback
	}
	return res.Text
}

func languageInstruction(lang string) string {
	if lang == i18n.LangEnglish {
		return "\n\nIMPORTANT: Generate the welcome message in English language only."
	}
	return "\n\nВАЖНО: Сгенерируй приветственное сообщение только на русском языке."
}
