package internal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies which side of the conversation a message belongs to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the two supported values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one immutable conversation turn. The ID is generated locally
// and is never sent to the remote service.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Model     string `json:"model,omitempty"` // which model produced an assistant reply, when reported
}

// Turn is the wire shape of a history element sent to the service.
// It deliberately carries no ID field: identifiers are a local
// presentation concern and must not cross the transport boundary.
type Turn struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Wire returns the message reduced to its transport shape.
func (m Message) Wire() Turn {
	return Turn{
		Role:      m.Role,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

// NewUserMessage builds a user message stamped with the local clock.
// Content must already be validated as non-blank by the caller.
func NewUserMessage(content string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: now.Format(time.RFC3339),
	}
}

// NewAssistantMessage builds an assistant message. The timestamp is taken
// verbatim from the service response, not the local clock.
func NewAssistantMessage(content, timestamp, model string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: timestamp,
		Model:     model,
	}
}

// IsBlank reports whether the input consists only of whitespace.
func IsBlank(content string) bool {
	return strings.TrimSpace(content) == ""
}

// Connectivity is the controller's view of whether the remote service
// is responding.
type Connectivity int

const (
	ConnectivityUnknown Connectivity = iota
	ConnectivityReachable
	ConnectivityUnreachable
)

// String returns the human-readable connectivity label.
func (c Connectivity) String() string {
	switch c {
	case ConnectivityReachable:
		return "reachable"
	case ConnectivityUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Snapshot is the controller's complete observable state at one instant.
// The message slice is a copy; holders can never alias controller state.
type Snapshot struct {
	Conversation []Message
	Pending      bool
	LastError    string
	Connectivity Connectivity
	Generation   uint64
}

// Last returns the most recent message. The conversation is seeded with a
// greeting and never empty, but a zero Snapshot is handled anyway.
func (s Snapshot) Last() (Message, bool) {
	if len(s.Conversation) == 0 {
		return Message{}, false
	}
	return s.Conversation[len(s.Conversation)-1], true
}

// Transcript is the exportable form of a conversation.
type Transcript struct {
	SavedAt  string    `json:"saved_at" yaml:"saved_at"`
	Server   string    `json:"server,omitempty" yaml:"server,omitempty"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// NewTranscript captures the conversation from a snapshot for export.
func NewTranscript(snap Snapshot, server string, now time.Time) *Transcript {
	return &Transcript{
		SavedAt:  now.Format(time.RFC3339),
		Server:   server,
		Messages: snap.Conversation,
	}
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
	History []Turn `json:"history"`
}

// Reply is the success body of POST /api/chat. Model is informational
// and may be absent.
type Reply struct {
	Reply     string `json:"reply"`
	Timestamp string `json:"timestamp"`
	Model     string `json:"model,omitempty"`
}

// HealthResponse is the body of GET /api/health. Only Status is inspected.
type HealthResponse struct {
	Status string `json:"status"`
}

// apiError is the structured error payload the service returns on non-2xx.
type apiError struct {
	Detail string `json:"detail"`
}
