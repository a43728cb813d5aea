package registry

import (
	"errors"
	"sync"

	"ai-assistant/internal/chat"
	"ai-assistant/internal/i18n"
	"ai-assistant/internal/logging"
	"ai-assistant/internal/store"
)

// Defaults is the initial state of a session created for a user with no
// persisted history.
type Defaults struct {
	Model       string
	Temperature float64
	Language    string
}

// Registry owns all live sessions and maps each user to exactly one of
// them for the lifetime of the process. Lookups after the first return the
// same instance, mutated in place.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*chat.Session
	store    *store.FileStore
	defaults Defaults
	log      *logging.Logger
}

func New(st *store.FileStore, defaults Defaults, log *logging.Logger) *Registry {
	if defaults.Language == "" {
		defaults.Language = i18n.DefaultLanguage
	}
	return &Registry{
		sessions: make(map[int64]*chat.Session),
		store:    st,
		defaults: defaults,
		log:      log,
	}
}

// GetOrCreate returns the user's live session, hydrating it from the
// persisted record on first touch. When no record exists the session is
// built from defaults and persisted immediately so the locator exists from
// then on.
func (r *Registry) GetOrCreate(userID int64) *chat.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[userID]; ok {
		return s
	}

	locator := r.store.HistoryPath(userID)
	rec, err := r.store.Read(locator)

	var s *chat.Session
	if errors.Is(err, store.ErrNotFound) {
		s = chat.New(r.defaults.Model, i18n.SystemMessage(r.defaults.Language), r.defaults.Temperature, r.defaults.Language)
		s.Bind(locator, r.store)
		s.Persist()
		r.log.Event("session created", map[string]any{"user_id": userID, "file": locator})
	} else {
		// Older or hand-edited records may miss individual keys; absent
		// values fall back to defaults instead of hydrating an unusable
		// session with an empty model.
		model := rec.Model
		if model == "" {
			model = r.defaults.Model
		}
		temperature := rec.Temperature
		if temperature == 0 {
			temperature = r.defaults.Temperature
		}
		lang := rec.Language
		if lang == "" {
			lang = r.defaults.Language
		}
		s = chat.Hydrate(model, temperature, lang, i18n.SystemMessage(lang), rec.Messages)
		s.SetSystemMessage(i18n.SystemMessage(lang))
		s.Bind(locator, r.store)
		r.log.Event("session hydrated", map[string]any{"user_id": userID, "turns": s.Len()})
	}

	r.sessions[userID] = s
	return s
}

// Peek returns the live session for a user without creating one.
func (r *Registry) Peek(userID int64) (*chat.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// Live returns a snapshot of the user ids with a live session. Used by the
// transcript backup sweep.
func (r *Registry) Live() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}
