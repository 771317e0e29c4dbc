package internal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleUser, true},
		{RoleAssistant, true},
		{Role("system"), false},
		{Role(""), false},
	}

	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestNewUserMessage(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	msg := NewUserMessage("hello", now)

	if msg.Role != RoleUser {
		t.Errorf("role = %q, want user", msg.Role)
	}
	if msg.Content != "hello" {
		t.Errorf("content = %q", msg.Content)
	}
	if msg.Timestamp != "2024-03-01T10:00:00Z" {
		t.Errorf("timestamp = %q, want RFC3339 of the given instant", msg.Timestamp)
	}
	if msg.ID == "" {
		t.Error("message should have an ID")
	}

	other := NewUserMessage("hello", now)
	if other.ID == msg.ID {
		t.Error("IDs should be unique per message")
	}
}

func TestNewAssistantMessage_KeepsServerTimestamp(t *testing.T) {
	msg := NewAssistantMessage("hi there", "2024-03-01T12:00:00.123456", "llama3")

	if msg.Role != RoleAssistant {
		t.Errorf("role = %q, want assistant", msg.Role)
	}
	if msg.Timestamp != "2024-03-01T12:00:00.123456" {
		t.Errorf("timestamp = %q, want the server's value verbatim", msg.Timestamp)
	}
	if msg.Model != "llama3" {
		t.Errorf("model = %q", msg.Model)
	}
}

func TestMessageWire_OmitsLocalFields(t *testing.T) {
	msg := NewAssistantMessage("hi", "2024-03-01T12:00:00Z", "llama3")
	turn := msg.Wire()

	if turn.Role != msg.Role || turn.Content != msg.Content || turn.Timestamp != msg.Timestamp {
		t.Errorf("Wire() = %+v, lost message fields", turn)
	}

	data, err := json.Marshal(turn)
	if err != nil {
		t.Fatalf("marshal turn: %v", err)
	}
	for _, forbidden := range []string{`"id"`, `"model"`} {
		if strings.Contains(string(data), forbidden) {
			t.Errorf("wire turn leaks %s: %s", forbidden, data)
		}
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"x", false},
		{"  x  ", false},
	}

	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConnectivityString(t *testing.T) {
	tests := []struct {
		c    Connectivity
		want string
	}{
		{ConnectivityUnknown, "unknown"},
		{ConnectivityReachable, "reachable"},
		{ConnectivityUnreachable, "unreachable"},
		{Connectivity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Connectivity(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestSnapshotLast(t *testing.T) {
	if _, ok := (Snapshot{}).Last(); ok {
		t.Error("empty snapshot should report no last message")
	}

	snap := Snapshot{Conversation: CreateTestConversation()}
	last, ok := snap.Last()
	if !ok {
		t.Fatal("Last() = none for a populated conversation")
	}
	if last.Content != "I'm doing well, thank you!" {
		t.Errorf("last content = %q", last.Content)
	}
}

func TestNewTranscript(t *testing.T) {
	snap := Snapshot{Conversation: CreateTestConversation()}
	now := time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC)

	tr := NewTranscript(snap, "http://localhost:8000", now)

	if tr.SavedAt != "2024-03-01T10:05:00Z" {
		t.Errorf("saved_at = %q", tr.SavedAt)
	}
	if tr.Server != "http://localhost:8000" {
		t.Errorf("server = %q", tr.Server)
	}
	if len(tr.Messages) != len(snap.Conversation) {
		t.Errorf("transcript has %d messages, want %d", len(tr.Messages), len(snap.Conversation))
	}
}
