package internal

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultGreeting seeds a fresh conversation when no custom greeting is
// configured.
const DefaultGreeting = "Hi! I'm ChatterBot. Ask me anything."

// Session owns the conversation state machine. All mutation happens here:
// the presentation layer only reads Snapshots and invokes the three actions
// Send, Clear and CheckConnectivity.
//
// The lock is never held across a transport call. At most one send is in
// flight at a time (pending flag); a clear during an in-flight send bumps
// the generation counter so the eventual resolution is recognized as stale
// and discarded.
type Session struct {
	transport Transport

	mu           sync.Mutex
	conversation []Message
	pending      bool
	lastError    string
	connectivity Connectivity
	generation   uint64

	greeting string
	updates  chan Snapshot
	now      func() time.Time
}

// NewSession creates a session seeded with a single assistant greeting.
// An empty greeting falls back to DefaultGreeting.
func NewSession(transport Transport, greeting string) *Session {
	if IsBlank(greeting) {
		greeting = DefaultGreeting
	}
	s := &Session{
		transport: transport,
		greeting:  greeting,
		updates:   make(chan Snapshot, 1),
		now:       time.Now,
	}
	s.conversation = []Message{s.greetingMessage()}
	return s
}

func (s *Session) greetingMessage() Message {
	return NewAssistantMessage(s.greeting, s.now().Format(time.RFC3339), "")
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Watch returns a channel carrying a Snapshot after every state change.
// Delivery is coalescing: if the consumer lags, intermediate snapshots are
// replaced by newer ones rather than blocking the controller.
func (s *Session) Watch() <-chan Snapshot {
	return s.updates
}

// Send submits one user message. Blank input, or a call while another send
// is in flight, is a silent no-op. The user message is appended before the
// network round-trip resolves; on failure it stays visible and LastError
// carries the service's detail. The returned Snapshot is the state after
// resolution.
func (s *Session) Send(ctx context.Context, content string) Snapshot {
	content = strings.TrimSpace(content)
	if content == "" {
		return s.Snapshot()
	}

	s.mu.Lock()
	if s.pending {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}

	s.lastError = ""

	// History is the conversation as it stood before the optimistic append,
	// reduced to its wire shape (no IDs), so the service never sees the
	// message being submitted duplicated in its own history.
	history := make([]Turn, len(s.conversation))
	for i, m := range s.conversation {
		history[i] = m.Wire()
	}

	s.conversation = append(s.conversation, NewUserMessage(content, s.now()))
	s.pending = true
	gen := s.generation
	s.publishLocked()
	s.mu.Unlock()

	reply, err := s.transport.Submit(ctx, content, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if gen != s.generation {
		// The conversation was cleared while this send was in flight. The
		// resolution targets a conversation that no longer exists: drop it.
		LogDebug("discarding stale send resolution (generation %d, now %d)", gen, s.generation)
		s.publishLocked()
		return s.snapshotLocked()
	}
	if err != nil {
		s.lastError = ErrorDetail(err)
		LogDebug("send failed: %v", err)
	} else {
		s.conversation = append(s.conversation, NewAssistantMessage(reply.Reply, reply.Timestamp, reply.Model))
	}
	s.publishLocked()
	return s.snapshotLocked()
}

// Clear replaces the conversation with a fresh greeting and notifies the
// service in the background. It is allowed while a send is in flight: that
// send is abandoned, not cancelled: its eventual resolution is discarded,
// and it keeps occupying the single flight slot until it physically
// resolves.
func (s *Session) Clear(ctx context.Context) Snapshot {
	s.mu.Lock()
	s.generation++
	s.conversation = []Message{s.greetingMessage()}
	s.lastError = ""
	s.publishLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	// Detached fire-and-forget; the local clear already succeeded and must
	// not observe the notification's outcome or the caller's cancellation.
	go s.transport.NotifyCleared(context.WithoutCancel(ctx))

	return snap
}

// CheckConnectivity runs one health probe and records the result. It never
// touches the conversation and is independent of any in-flight send.
func (s *Session) CheckConnectivity(ctx context.Context) Snapshot {
	reachable := s.transport.Probe(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if reachable {
		s.connectivity = ConnectivityReachable
	} else {
		s.connectivity = ConnectivityUnreachable
	}
	s.publishLocked()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	conv := make([]Message, len(s.conversation))
	copy(conv, s.conversation)
	return Snapshot{
		Conversation: conv,
		Pending:      s.pending,
		LastError:    s.lastError,
		Connectivity: s.connectivity,
		Generation:   s.generation,
	}
}

// publishLocked pushes the current snapshot to the watch channel, replacing
// an unconsumed older snapshot rather than blocking.
func (s *Session) publishLocked() {
	snap := s.snapshotLocked()
	for {
		select {
		case s.updates <- snap:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}
