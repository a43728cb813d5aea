package llm

import (
	"context"
	"time"

	"ai-assistant/internal/i18n"
	"ai-assistant/internal/logging"
)

// Result is what a dispatched call always produces. A provider failure is
// not an error to the caller: it degrades to a displayable reply (Failed
// set, Usage nil) that becomes part of the conversation like any other
// assistant turn.
type Result struct {
	Text   string
	Usage  *Usage
	Failed bool
}

// Router dispatches a request to the client of its model's family and
// converts transport failures into displayable replies at this boundary.
type Router struct {
	turnArray  Client
	systemTurn Client
	log        *logging.Logger
}

func NewRouter(turnArray, systemTurn Client, log *logging.Logger) *Router {
	return &Router{turnArray: turnArray, systemTurn: systemTurn, log: log}
}

// Send classifies the model, calls the matching backend and logs the
// request. Any provider error is logged with full request context and
// returned as an error reply, never raised.
func (r *Router) Send(ctx context.Context, req Request) Result {
	family := ClassifyModel(req.Model)
	client := r.turnArray
	if family == FamilySystemTurn {
		client = r.systemTurn
	}

	start := time.Now()
	reply, err := client.Generate(ctx, req)
	if err != nil {
		r.log.Error(err, map[string]any{
			"model":  req.Model,
			"family": family.String(),
			"turns":  len(req.Turns),
		})
		return Result{Text: i18n.T(req.Language, "response_error", err.Error()), Failed: true}
	}

	r.log.Request(family.String(), req.Model, len(req.Turns), time.Since(start), tokenFields(reply.Usage))
	return Result{Text: reply.Content, Usage: reply.Usage}
}

func tokenFields(u *Usage) map[string]any {
	if u == nil {
		return nil
	}
	if u.Family == FamilySystemTurn {
		return map[string]any{
			"input_tokens":  u.InputTokens,
			"output_tokens": u.OutputTokens,
		}
	}
	return map[string]any{
		"prompt_tokens":     u.PromptTokens,
		"completion_tokens": u.CompletionTokens,
		"total_tokens":      u.TotalTokens,
	}
}
