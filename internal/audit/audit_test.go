package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/thecoblack/edtoken/internal/configs"
)

func TestLog_CreatesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "audit.jsonl")

	Log(logPath, Entry{User: "alice", Operation: OpAdd, Profile: "work"})

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Audit log file was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{User: "alice", Operation: OpAdd})
	Log(logPath, Entry{User: "bob", Operation: OpSet})
	Log(logPath, Entry{User: "charlie", Operation: OpWalletOpen})

	entries, err := ReadEntries(logPath)
	if err != nil {
		t.Fatalf("Failed to read entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expected := []struct {
		user string
		op   string
	}{
		{"alice", OpAdd},
		{"bob", OpSet},
		{"charlie", OpWalletOpen},
	}
	for i, exp := range expected {
		if entries[i].User != exp.user {
			t.Errorf("Entry %d: expected user %q, got %q", i, exp.user, entries[i].User)
		}
		if entries[i].Operation != exp.op {
			t.Errorf("Entry %d: expected op %q, got %q", i, exp.op, entries[i].Operation)
		}
	}
}

func TestLog_FillsIDAndTimestamp(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{Operation: OpExec, Profile: "work"})

	entries, err := ReadEntries(logPath)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected one entry, got %d (err %v)", len(entries), err)
	}
	if _, err := uuid.Parse(entries[0].ID); err != nil {
		t.Errorf("Expected a UUID id, got %q", entries[0].ID)
	}
	ts := entries[0].Timestamp
	if !strings.HasSuffix(ts, "Z") || !strings.Contains(ts, "T") {
		t.Errorf("Timestamp %q is not RFC3339 UTC", ts)
	}
	if dot := strings.LastIndex(ts, "."); dot == -1 || len(ts)-dot-2 != 6 {
		t.Errorf("Timestamp %q should carry microseconds", ts)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{User: "alice", Operation: OpAdd, Profile: "work"})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Log line is not valid JSON: %v", err)
	}
	for _, field := range []string{"key", "file"} {
		if _, ok := raw[field]; ok {
			t.Errorf("Expected %q to be omitted, got %v", field, raw[field])
		}
	}
	if raw["profile"] != "work" {
		t.Errorf("Expected profile 'work', got %v", raw["profile"])
	}
}

func TestLog_EmptyPathIsNoop(t *testing.T) {
	// Must not panic or create anything in the working directory.
	Log("", Entry{Operation: OpAdd})
}

func TestLogWithUser(t *testing.T) {
	original := configs.UserEdtokenSettings
	t.Cleanup(func() { configs.UserEdtokenSettings = original })

	configs.UserEdtokenSettings = &configs.UserSettings{Username: "testuser", Hostname: "box"}

	entry := LogWithUser(OpRemove)
	if entry.User != "testuser" || entry.Host != "box" || entry.Operation != OpRemove {
		t.Errorf("Unexpected entry: %+v", entry)
	}
}

func TestReadEntries_MissingFile(t *testing.T) {
	entries, err := ReadEntries(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"op":"add","profile":"a"}
not json
{"op":"set","profile":"a","key":"k"}

{"op":"exec"`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Key != "k" {
		t.Errorf("Expected key 'k', got %q", entries[1].Key)
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil || entries != nil {
		t.Errorf("Expected nil, nil; got %v, %v", entries, err)
	}
}

func TestTail(t *testing.T) {
	entries := []Entry{{Operation: "1"}, {Operation: "2"}, {Operation: "3"}}

	if got := Tail(entries, 2); len(got) != 2 || got[0].Operation != "2" {
		t.Errorf("Tail(2) = %+v", got)
	}
	if got := Tail(entries, 0); len(got) != 3 {
		t.Errorf("Tail(0) should return everything, got %d", len(got))
	}
	if got := Tail(entries, 10); len(got) != 3 {
		t.Errorf("Tail(10) should return everything, got %d", len(got))
	}
}
