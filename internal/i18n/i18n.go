package i18n

import "fmt"

// Supported interface languages.
const (
	LangRussian = "ru"
	LangEnglish = "en"
)

// DefaultLanguage is used whenever a user has no stored preference.
const DefaultLanguage = LangRussian

var translations = map[string]map[string]string{
	LangRussian: {
		"welcome_default":     "👋 Привет, %s!\n\nЯ AI-ассистент с поддержкой OpenAI и Claude моделей.\n💬 Просто отправь мне сообщение, и я отвечу!",
		"main_menu":           "📋 Главное меню",
		"current_model":       "📊 Текущая модель: %s",
		"current_temperature": "🌡️ Текущая температура: %.1f",
		"select_model":        "Выберите модель или действие:",
		"download_history":    "📥 Скачать историю",
		"clear_history":       "🗑️ Очистить",
		"language_button":     "🌐 Язык: %s",
		"close_menu":          "❌ Закрыть меню",
		"menu_closed":         "✅ Меню закрыто.\n\n💡 Напишите «меню» или /menu, чтобы открыть его снова.",
		"model_changed":       "✅ Модель изменена:\nБыло: %s\nСтало: %s",
		"model_usage":         "Использование: /model <название_модели>\n\n📊 Текущая модель: %s",
		"temperature_set":     "✅ Температура установлена: %.1f",
		"temperature_invalid": "❌ Некорректная температура. Укажите число от 0.0 до 2.0.",
		"temperature_usage":   "Использование: /temperature <значение>\n\n🌡️ Текущая температура: %.1f",
		"history_cleared":     "🗑️ История диалога очищена!\nСистемное сообщение сохранено.",
		"history_empty":       "❌ История пуста или произошла ошибка при экспорте",
		"export_caption":      "📄 История диалога\n💾 История автоматически сохраняется после каждого сообщения.",
		"language_set":        "✅ Язык интерфейса: русский",
		"response_error":      "Ошибка при получении ответа: %s",
		"metrics_header":      "\n\n📊 Метрики:",
		"prompt_tokens":       "• Промпт токены: %d",
		"completion_tokens":   "• Токены ответа: %d",
		"total_tokens":        "• Всего токенов: %d",
		"input_tokens":        "• Входные токены: %d",
		"output_tokens":       "• Выходные токены: %d",
		"cache_creation":      "• Токены создания кэша: %d",
		"cache_read":          "• Токены чтения кэша: %d",
		"help": "📚 Справка по командам:\n\n" +
			"/start - начать работу с ботом (открывает меню)\n" +
			"/menu - открыть главное меню\n" +
			"/model - выбрать модель AI\n" +
			"/temperature - установить температуру генерации\n" +
			"/language - переключить язык интерфейса\n" +
			"/clear - очистить историю диалога\n" +
			"/export - скачать историю диалога в txt файл\n" +
			"/help - показать эту справку\n\n" +
			"💡 Просто отправь сообщение, и я отвечу с использованием выбранной модели!",
		"transcript_header": "=== История диалога ===",
		"role_system":       "Система",
		"role_user":         "Пользователь",
		"role_assistant":    "Ассистент",
		"system_message":    "Ты дружелюбный и умный помощник. Отвечай подробно и полезно.",
	},
	LangEnglish: {
		"welcome_default":     "👋 Hi, %s!\n\nI am an AI assistant with OpenAI and Claude models.\n💬 Just send me a message and I will reply!",
		"main_menu":           "📋 Main menu",
		"current_model":       "📊 Current model: %s",
		"current_temperature": "🌡️ Current temperature: %.1f",
		"select_model":        "Choose a model or an action:",
		"download_history":    "📥 Download history",
		"clear_history":       "🗑️ Clear",
		"language_button":     "🌐 Language: %s",
		"close_menu":          "❌ Close menu",
		"menu_closed":         "✅ Menu closed.\n\n💡 Type \"menu\" or /menu to open it again.",
		"model_changed":       "✅ Model changed:\nWas: %s\nNow: %s",
		"model_usage":         "Usage: /model <model_name>\n\n📊 Current model: %s",
		"temperature_set":     "✅ Temperature set: %.1f",
		"temperature_invalid": "❌ Invalid temperature. Provide a number between 0.0 and 2.0.",
		"temperature_usage":   "Usage: /temperature <value>\n\n🌡️ Current temperature: %.1f",
		"history_cleared":     "🗑️ Conversation history cleared!\nThe system message is kept.",
		"history_empty":       "❌ History is empty or the export failed",
		"export_caption":      "📄 Conversation history\n💾 History is saved automatically after every message.",
		"language_set":        "✅ Interface language: English",
		"response_error":      "Failed to get a response: %s",
		"metrics_header":      "\n\n📊 Metrics:",
		"prompt_tokens":       "• Prompt tokens: %d",
		"completion_tokens":   "• Completion tokens: %d",
		"total_tokens":        "• Total tokens: %d",
		"input_tokens":        "• Input tokens: %d",
		"output_tokens":       "• Output tokens: %d",
		"cache_creation":      "• Cache creation tokens: %d",
		"cache_read":          "• Cache read tokens: %d",
		"help": "📚 Commands:\n\n" +
			"/start - start the bot (opens the menu)\n" +
			"/menu - open the main menu\n" +
			"/model - choose an AI model\n" +
			"/temperature - set the sampling temperature\n" +
			"/language - switch the interface language\n" +
			"/clear - clear the conversation history\n" +
			"/export - download the history as a txt file\n" +
			"/help - show this help\n\n" +
			"💡 Just send a message and I will reply using the selected model!",
		"transcript_header": "=== Conversation history ===",
		"role_system":       "System",
		"role_user":         "User",
		"role_assistant":    "Assistant",
		"system_message":    "You are a friendly and smart assistant. Answer thoroughly and helpfully.",
	},
}

// T returns the translated string for key in the given language, formatted
// with args when provided. Unknown languages fall back to Russian, unknown
// keys fall back to the key itself so a missing translation never hides a
// message completely.
func T(lang, key string, args ...any) string {
	table, ok := translations[lang]
	if !ok {
		table = translations[DefaultLanguage]
	}
	s, ok := table[key]
	if !ok {
		s = key
	}
	if len(args) == 0 {
		return s
	}
	return fmt.Sprintf(s, args...)
}

// SystemMessage returns the default system message for the given language.
func SystemMessage(lang string) string {
	return T(lang, "system_message")
}
