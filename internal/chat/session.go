package chat

// Role identifies the author of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of a conversation. Turns are immutable once appended;
// ordering is insertion order and the first turn of a session is always the
// system turn.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Saver persists a session snapshot to durable storage. Implementations log
// their own failures; a failed save never fails the conversational turn.
type Saver interface {
	Save(s *Session) error
}

// Session holds one user's conversation state: the ordered turns, the model
// the user selected, the sampling temperature and the interface language.
// A session with a locator is mirrored to disk after every append; a session
// without one is in-memory only (used for one-shot generations).
type Session struct {
	model       string
	temperature float64
	language    string
	locator     string
	turns       []Turn
	saver       Saver
}

// New creates a session seeded with a single system turn.
func New(model, systemMessage string, temperature float64, language string) *Session {
	return &Session{
		model:       model,
		temperature: temperature,
		language:    language,
		turns:       []Turn{{Role: RoleSystem, Content: systemMessage}},
	}
}

// Hydrate rebuilds a session from a persisted record. The stored turns are
// copied; if the record carried none, the session falls back to a fresh
// system-only sequence.
func Hydrate(model string, temperature float64, language, systemMessage string, turns []Turn) *Session {
	s := &Session{model: model, temperature: temperature, language: language}
	if len(turns) == 0 {
		s.turns = []Turn{{Role: RoleSystem, Content: systemMessage}}
	} else {
		s.turns = append(make([]Turn, 0, len(turns)), turns...)
	}
	return s
}

// Bind attaches a durable locator and its saver. Every subsequent append
// writes through to storage.
func (s *Session) Bind(locator string, saver Saver) {
	s.locator = locator
	s.saver = saver
}

// Append adds a turn and, for a bound session, immediately persists the
// whole record. Persistence failures are logged by the saver and do not
// propagate: in-memory state stays correct, durability is lost for this
// turn only.
func (s *Session) Append(role Role, content string) {
	s.turns = append(s.turns, Turn{Role: role, Content: content})
	s.persist()
}

// Clear resets the turn sequence. With keepSystem the system turn survives,
// otherwise the sequence becomes empty. Clearing alone does not persist;
// callers persist when the surrounding operation is done.
func (s *Session) Clear(keepSystem bool) {
	if keepSystem && len(s.turns) > 0 {
		s.turns = s.turns[:1]
		return
	}
	s.turns = nil
}

// Snapshot returns a copy of the turn sequence. Mutating the returned slice
// does not affect the session.
func (s *Session) Snapshot() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Len() int { return len(s.turns) }

func (s *Session) Model() string        { return s.model }
func (s *Session) Temperature() float64 { return s.temperature }
func (s *Session) Language() string     { return s.language }
func (s *Session) Locator() string      { return s.locator }

func (s *Session) SetModel(model string)       { s.model = model }
func (s *Session) SetTemperature(t float64)    { s.temperature = t }
func (s *Session) SetLanguage(language string) { s.language = language }

// SetSystemMessage rewrites the content of the system turn. Used when the
// user switches interface language.
func (s *Session) SetSystemMessage(content string) {
	if len(s.turns) == 0 {
		s.turns = []Turn{{Role: RoleSystem, Content: content}}
		return
	}
	s.turns[0] = Turn{Role: RoleSystem, Content: content}
}

// Persist writes the current state through the bound saver, if any.
func (s *Session) Persist() {
	s.persist()
}

func (s *Session) persist() {
	if s.saver == nil || s.locator == "" {
		return
	}
	_ = s.saver.Save(s)
}
