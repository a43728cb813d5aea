package store

import (
	"fmt"
	"os"
	"strings"

	"ai-assistant/internal/chat"
	"ai-assistant/internal/i18n"
)

var separator = strings.Repeat("-", 50)

// ExportTranscript renders the turn sequence as a human-readable transcript
// and writes it to path. One numbered block per turn with a localized role
// header, blocks separated by a 50-dash rule. Failures are logged and
// reported as a status; nothing is raised past this boundary.
func (f *FileStore) ExportTranscript(path string, turns []chat.Turn, lang string) error {
	var b strings.Builder
	b.WriteString(i18n.T(lang, "transcript_header"))
	b.WriteString("\n\n")
	for i, t := range turns {
		fmt.Fprintf(&b, "%d. [%s]\n%s\n\n%s\n\n", i+1, roleName(t.Role, lang), t.Content, separator)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		f.log.Error(err, map[string]any{"action": "export_history", "file": path})
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

func roleName(r chat.Role, lang string) string {
	switch r {
	case chat.RoleSystem:
		return i18n.T(lang, "role_system")
	case chat.RoleUser:
		return i18n.T(lang, "role_user")
	case chat.RoleAssistant:
		return i18n.T(lang, "role_assistant")
	default:
		return string(r)
	}
}
