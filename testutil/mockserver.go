package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// MockChatServer is an httptest stand-in for the ChatterBot API. It serves
// the three endpoints the client uses and counts how often each was hit.
type MockChatServer struct {
	Server *httptest.Server

	// Reply and Model are returned from /api/chat.
	Reply string
	Model string

	// FailStatus, when non-zero, makes /api/chat fail with that status and
	// a {detail: FailDetail} body.
	FailStatus int
	FailDetail string

	// Healthy controls /api/health.
	Healthy bool

	chatCalls   atomic.Int64
	healthCalls atomic.Int64
	clearCalls  atomic.Int64
}

// NewMockChatServer starts a mock chat service. It is shut down
// automatically when the test finishes.
func NewMockChatServer(t *testing.T) *MockChatServer {
	t.Helper()

	m := &MockChatServer{
		Reply:   "hello back",
		Model:   "test-model",
		Healthy: true,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", m.handleChat)
	mux.HandleFunc("GET /api/health", m.handleHealth)
	mux.HandleFunc("DELETE /api/chat/clear", m.handleClear)

	m.Server = httptest.NewServer(mux)
	t.Cleanup(m.Server.Close)

	return m
}

// URL returns the mock service's base URL.
func (m *MockChatServer) URL() string {
	return m.Server.URL
}

// ChatCalls returns how many chat requests were received.
func (m *MockChatServer) ChatCalls() int {
	return int(m.chatCalls.Load())
}

// HealthCalls returns how many health probes were received.
func (m *MockChatServer) HealthCalls() int {
	return int(m.healthCalls.Load())
}

// ClearCalls returns how many clear notifications were received.
func (m *MockChatServer) ClearCalls() int {
	return int(m.clearCalls.Load())
}

func (m *MockChatServer) handleChat(w http.ResponseWriter, r *http.Request) {
	m.chatCalls.Add(1)

	if m.FailStatus != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(m.FailStatus)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": m.FailDetail})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"reply":     m.Reply,
		"timestamp": time.Now().Format(time.RFC3339),
		"model":     m.Model,
	})
}

func (m *MockChatServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	m.healthCalls.Add(1)

	w.Header().Set("Content-Type", "application/json")
	if !m.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "degraded"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func (m *MockChatServer) handleClear(w http.ResponseWriter, r *http.Request) {
	m.clearCalls.Add(1)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})
}
