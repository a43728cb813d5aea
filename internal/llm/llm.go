package llm

import (
	"context"
	"strings"

	"ai-assistant/internal/chat"
)

// Family is the provider wire-format family a model is routed to.
type Family int

const (
	// FamilyTurnArray is the chat-completions shape: every turn, system
	// included, travels in one ordered message list.
	FamilyTurnArray Family = iota
	// FamilySystemTurn is the messages shape: the system turn is a separate
	// request field and only user/assistant turns go into the list.
	FamilySystemTurn
)

func (f Family) String() string {
	if f == FamilySystemTurn {
		return "anthropic"
	}
	return "openai"
}

// systemTurnMarkers route a model to the system/turn family when any of
// them occurs in the model id. This is a heuristic, not a registry: any
// model without a marker goes to the turn-array family, so unknown and
// future model names still route somewhere.
var systemTurnMarkers = []string{"claude", "sonnet"}

// ClassifyModel picks the family for a model id by case-insensitive
// substring match.
func ClassifyModel(model string) Family {
	m := strings.ToLower(model)
	for _, marker := range systemTurnMarkers {
		if strings.Contains(m, marker) {
			return FamilySystemTurn
		}
	}
	return FamilyTurnArray
}

// Request is one normalized generation request. Each client translates it
// into its own wire format and applies its family's parameter rules.
type Request struct {
	Model       string
	Temperature float64
	Turns       []chat.Turn
	// ReasoningEffort is only meaningful for the turn-array family and only
	// when the provider capability flag allows it.
	ReasoningEffort string
	// Language selects the wording of a degraded error reply.
	Language string
}

// Usage carries the provider's token accounting. The shape differs per
// family, so the struct is tagged: callers must check Family before
// reading the counters.
type Usage struct {
	Family Family

	// Turn-array family counters.
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int

	// System/turn family counters.
	InputTokens         int64
	OutputTokens        int64
	CacheCreationTokens int64
	CacheReadTokens     int64
	StopReason          string
}

// Reply is a successful provider response.
type Reply struct {
	Content string
	Usage   *Usage
}

// Client generates a reply for one family of backends.
type Client interface {
	Generate(ctx context.Context, req Request) (Reply, error)
}
