package llm

// ModelOption is a model offered in the selection menu. The list only
// drives the menu: dispatch works for any model string, listed or not.
type ModelOption struct {
	ID    string
	Label string
}

var KnownModels = []ModelOption{
	{ID: "gpt-3.5-turbo", Label: "🤖 GPT-3.5 Turbo"},
	{ID: "gpt-4o", Label: "🚀 GPT-4o"},
	{ID: "gpt-5-pro", Label: "🧠 GPT-5 Pro"},
	{ID: "o1", Label: "🔮 O1"},
	{ID: "o3", Label: "🔮 O3"},
	{ID: "claude-sonnet-4-5-20250929", Label: "💎 Claude 4.5 Sonnet"},
}
