package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ai-assistant/internal/chat"
	"ai-assistant/internal/logging"
)

// ErrNotFound reports that no history record exists for a locator. Callers
// treat it as "fresh session", not as a failure.
var ErrNotFound = errors.New("history record not found")

// Record is the on-disk representation of one user's session. Every write
// replaces the whole record; the working set is one chat history, so there
// is no need for anything fancier.
type Record struct {
	Model       string      `json:"model"`
	Temperature float64     `json:"temperature"`
	Language    string      `json:"language,omitempty"`
	LastUpdated time.Time   `json:"last_updated"`
	Messages    []chat.Turn `json:"messages"`
}

// FileStore keeps one JSON file per user under a data directory.
type FileStore struct {
	dir string
	log *logging.Logger
	mu  sync.Mutex
}

func NewFileStore(dir string, log *logging.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

// HistoryPath returns the deterministic locator for a user's JSON record.
func (f *FileStore) HistoryPath(userID int64) string {
	return filepath.Join(f.dir, fmt.Sprintf("chat_history_%d.json", userID))
}

// TranscriptPath returns the locator for a user's plain-text transcript.
func (f *FileStore) TranscriptPath(userID int64) string {
	return filepath.Join(f.dir, fmt.Sprintf("chat_history_%d.txt", userID))
}

// Write replaces the record at locator with the given state.
func (f *FileStore) Write(locator string, rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := os.OpenFile(locator, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer func() { _ = file.Close() }()
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return nil
}

// Read loads the record at locator. A missing file yields ErrNotFound; so
// does a malformed one, after logging it, so a corrupt record degrades to a
// fresh session instead of failing startup.
func (f *FileStore) Read(locator string) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(locator)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, ErrNotFound
		}
		f.log.Error(err, map[string]any{"action": "load_history", "file": locator})
		return Record{}, ErrNotFound
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		f.log.Error(err, map[string]any{"action": "load_history", "file": locator})
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Save implements chat.Saver: it snapshots the session into a Record and
// overwrites its locator. Failures are logged here and reported, never
// escalated past the persistence boundary by the session itself.
func (f *FileStore) Save(s *chat.Session) error {
	rec := Record{
		Model:       s.Model(),
		Temperature: s.Temperature(),
		Language:    s.Language(),
		LastUpdated: time.Now().UTC(),
		Messages:    s.Snapshot(),
	}
	if err := f.Write(s.Locator(), rec); err != nil {
		f.log.Error(err, map[string]any{"action": "save_history", "file": s.Locator()})
		return err
	}
	return nil
}
