package assistant

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"ai-assistant/internal/chat"
	"ai-assistant/internal/i18n"
	"ai-assistant/internal/llm"
	"ai-assistant/internal/logging"
	"ai-assistant/internal/registry"
	"ai-assistant/internal/store"
)

// ErrInvalidTemperature reports a temperature outside the accepted range or
// a value that does not parse as a number. The session keeps its prior
// value.
var ErrInvalidTemperature = errors.New("temperature must be a number between 0.0 and 2.0")

// Assistant is the public entry point of the conversation core: it resolves
// the user's session, runs the turn against the right provider and keeps
// the persisted record in step with memory.
type Assistant struct {
	registry *registry.Registry
	router   *llm.Router
	store    *store.FileStore
	log      *logging.Logger

	// reasoningEffort is forwarded on every turn-array call; the client
	// drops it when the provider capability flag is off.
	reasoningEffort string

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(reg *registry.Registry, router *llm.Router, st *store.FileStore, reasoningEffort string, log *logging.Logger) *Assistant {
	return &Assistant{
		registry:        reg,
		router:          router,
		store:           st,
		log:             log,
		reasoningEffort: reasoningEffort,
		locks:           make(map[int64]*sync.Mutex),
	}
}

// lockFor returns the per-user mutex. The append-then-send-then-persist
// sequence is not atomic, so at most one turn per user may be in flight;
// different users proceed independently.
func (a *Assistant) lockFor(userID int64) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[userID] = l
	}
	return l
}

// HandleTurn runs one conversational turn: append the user's message,
// dispatch to the model's provider family, append the reply and return it
// with the usage metrics. A failed provider call still becomes the
// assistant turn, with nil metrics; the turn never fails outright.
func (a *Assistant) HandleTurn(ctx context.Context, userID int64, text string) (string, *llm.Usage) {
	l := a.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	s := a.registry.GetOrCreate(userID)
	s.Append(chat.RoleUser, text)

	res := a.router.Send(ctx, llm.Request{
		Model:           s.Model(),
		Temperature:     s.Temperature(),
		Turns:           s.Snapshot(),
		ReasoningEffort: a.reasoningEffort,
		Language:        s.Language(),
	})

	s.Append(chat.RoleAssistant, res.Text)

	if res.Failed {
		return res.Text, nil
	}
	return res.Text, res.Usage
}

// Session returns the user's session, creating it if needed.
func (a *Assistant) Session(userID int64) *chat.Session {
	return a.registry.GetOrCreate(userID)
}

// SetModel switches the user's model and persists the change. Returns the
// previous model id. The id is opaque here: dispatch happens per call, so
// any string is accepted.
func (a *Assistant) SetModel(userID int64, model string) string {
	l := a.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	s := a.registry.GetOrCreate(userID)
	old := s.Model()
	s.SetModel(model)
	s.Persist()
	a.log.Event("model changed", map[string]any{"user_id": userID, "from": old, "to": model})
	return old
}

// SetTemperature validates and applies a new sampling temperature. An
// out-of-range or unparsable value is rejected and leaves the session
// untouched.
func (a *Assistant) SetTemperature(userID int64, raw string) (float64, error) {
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil || t < 0.0 || t > 2.0 {
		return 0, ErrInvalidTemperature
	}

	l := a.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	s := a.registry.GetOrCreate(userID)
	s.SetTemperature(t)
	s.Persist()
	return t, nil
}

// SetLanguage switches the interface language, rewrites the system turn in
// that language and persists the session with the new tag.
func (a *Assistant) SetLanguage(userID int64, lang string) {
	l := a.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	s := a.registry.GetOrCreate(userID)
	s.SetLanguage(lang)
	s.SetSystemMessage(i18n.SystemMessage(lang))
	s.Persist()
	a.log.Event("language changed", map[string]any{"user_id": userID, "language": lang})
}

// Clear wipes the conversation, keeping the system turn, and persists the
// cleared state.
func (a *Assistant) Clear(userID int64) {
	l := a.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	s := a.registry.GetOrCreate(userID)
	s.Clear(true)
	s.Persist()
}

// Export writes the user's transcript to its deterministic path and
// returns that path.
func (a *Assistant) Export(userID int64) (string, error) {
	l := a.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	s := a.registry.GetOrCreate(userID)
	path := a.store.TranscriptPath(userID)
	if err := a.store.ExportTranscript(path, s.Snapshot(), s.Language()); err != nil {
		return "", err
	}
	return path, nil
}

// ExportAll refreshes the transcripts of every live session. Driven by the
// nightly backup schedule.
func (a *Assistant) ExportAll(ctx context.Context) error {
	var firstErr error
	for _, userID := range a.registry.Live() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := a.Export(userID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
