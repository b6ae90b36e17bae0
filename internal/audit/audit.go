package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/thecoblack/edtoken/internal/configs"
)

// Operation names recorded in the log.
const (
	OpAdd         = "add"
	OpSet         = "set"
	OpRemove      = "remove"
	OpRemoveKey   = "remove-key"
	OpExec        = "exec"
	OpWalletOpen  = "wallet-open"
	OpWalletClose = "wallet-close"
)

// Entry represents a single audit log entry. Values and passphrases are
// never part of an entry.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Local username.
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`

	Profile string `json:"profile,omitempty"`
	Key     string `json:"key,omitempty"`  // For set/remove-key.
	File    string `json:"file,omitempty"` // For wallet operations.
}

// Log appends an entry to the audit log at path.
// Failures are swallowed: operations should not fail just because audit
// logging failed.
func Log(path string, entry Entry) {
	if path == "" {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry for op with the user field populated from
// the user settings.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}
	if configs.UserEdtokenSettings != nil {
		entry.User = configs.UserEdtokenSettings.Username
		entry.Host = configs.UserEdtokenSettings.Hostname
	}
	return entry
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Partial write from an interrupted run.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Tail returns the last n entries, or all of them when n <= 0.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
