package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-assistant/internal/chat"
	"ai-assistant/internal/logging"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir(), logging.Nop())
	require.NoError(t, err)
	return fs
}

func TestWriteReadRoundTrip(t *testing.T) {
	fs := newTestStore(t)
	locator := fs.HistoryPath(42)

	rec := Record{
		Model:       "claude-sonnet-4-5-20250929",
		Temperature: 0.8,
		Language:    "ru",
		LastUpdated: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
		Messages: []chat.Turn{
			{Role: chat.RoleSystem, Content: "Ты полезный ассистент."},
			{Role: chat.RoleUser, Content: "Привет"},
			{Role: chat.RoleAssistant, Content: "Привет! Как дела?"},
		},
	}
	require.NoError(t, fs.Write(locator, rec))

	got, err := fs.Read(locator)
	require.NoError(t, err)
	assert.Equal(t, rec.Model, got.Model)
	assert.InDelta(t, rec.Temperature, got.Temperature, 1e-9)
	assert.Equal(t, rec.Language, got.Language)
	assert.True(t, rec.LastUpdated.Equal(got.LastUpdated))
	assert.Equal(t, rec.Messages, got.Messages)
}

func TestReadMissingReturnsNotFound(t *testing.T) {
	fs := newTestStore(t)
	_, err := fs.Read(fs.HistoryPath(7))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadCorruptRecordDegradesToNotFound(t *testing.T) {
	fs := newTestStore(t)
	locator := fs.HistoryPath(7)
	require.NoError(t, os.WriteFile(locator, []byte("{not json"), 0o644))

	_, err := fs.Read(locator)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveSessionWritesWholeRecord(t *testing.T) {
	fs := newTestStore(t)
	s := chat.New("gpt-4o", "system", 1.0, "en")
	s.Bind(fs.HistoryPath(1), fs)

	s.Append(chat.RoleUser, "hi")

	got, err := fs.Read(fs.HistoryPath(1))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, "en", got.Language)
	assert.WithinDuration(t, time.Now().UTC(), got.LastUpdated, time.Minute)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chat.RoleSystem, got.Messages[0].Role)
	assert.Equal(t, "hi", got.Messages[1].Content)
}

func TestEveryAppendOverwritesRecord(t *testing.T) {
	fs := newTestStore(t)
	s := chat.New("gpt-4o", "system", 1.0, "ru")
	s.Bind(fs.HistoryPath(2), fs)

	s.Append(chat.RoleUser, "один")
	s.Append(chat.RoleAssistant, "два")

	got, err := fs.Read(fs.HistoryPath(2))
	require.NoError(t, err)
	assert.Len(t, got.Messages, 3)
}

func TestHistoryPathTemplate(t *testing.T) {
	fs := newTestStore(t)
	assert.Equal(t, "chat_history_12345.json", filepath.Base(fs.HistoryPath(12345)))
	assert.Equal(t, "chat_history_12345.txt", filepath.Base(fs.TranscriptPath(12345)))
}
