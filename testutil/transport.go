package testutil

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/iksnae/chatterbot/internal"
)

// StubTransport is a scripted in-memory internal.Transport for tests that
// drive the session controller without a network.
type StubTransport struct {
	// Reply is returned from Submit when Err is nil.
	Reply internal.Reply
	// Err, when set, makes Submit fail.
	Err error
	// Reachable controls Probe.
	Reachable bool
	// Gate, when set, holds Submit open until the channel is closed, so a
	// test can observe the in-flight window.
	Gate chan struct{}

	submits atomic.Int64
	probes  atomic.Int64
	clears  atomic.Int64
}

// NewStubTransport returns a reachable stub that replies "hello back".
func NewStubTransport() *StubTransport {
	return &StubTransport{
		Reply: internal.Reply{
			Reply:     "hello back",
			Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		},
		Reachable: true,
	}
}

// Submit returns the scripted reply or error, blocking on Gate if set.
func (s *StubTransport) Submit(ctx context.Context, message string, history []internal.Turn) (*internal.Reply, error) {
	s.submits.Add(1)
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return nil, &internal.RemoteError{Op: "submit", Detail: "could not reach the chat service", Err: ctx.Err()}
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	reply := s.Reply
	return &reply, nil
}

// Probe returns the scripted reachability.
func (s *StubTransport) Probe(ctx context.Context) bool {
	s.probes.Add(1)
	return s.Reachable
}

// NotifyCleared records the call and does nothing.
func (s *StubTransport) NotifyCleared(ctx context.Context) {
	s.clears.Add(1)
}

// Submits returns how many Submit calls were made.
func (s *StubTransport) Submits() int { return int(s.submits.Load()) }

// Probes returns how many Probe calls were made.
func (s *StubTransport) Probes() int { return int(s.probes.Load()) }

// Clears returns how many NotifyCleared calls were made.
func (s *StubTransport) Clears() int { return int(s.clears.Load()) }
