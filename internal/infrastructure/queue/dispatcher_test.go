package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/VenkateshW22/teamflow-api/internal/core/domain"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	done   chan struct{}
	want   int
}

func newRecordingAuditService(want int) *recordingAuditService {
	return &recordingAuditService{done: make(chan struct{}), want: want}
}

func (s *recordingAuditService) Process(_ context.Context, event domain.AuthEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingAuditService) wait(t *testing.T) []domain.AuthEvent {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuthEvent(nil), s.events...)
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := newRecordingAuditService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	now := time.Now().UTC()
	d.Record(domain.AuthEvent{Subject: "alice", Action: domain.AuditSignIn, Timestamp: now})
	d.Record(domain.AuthEvent{Subject: "bob", Action: domain.AuditSignUp, Timestamp: now})
	d.Record(domain.AuthEvent{Subject: "carol", Action: domain.AuditSignInFailed, Reason: "bad password", Timestamp: now})

	events := svc.wait(t)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestDispatcher_PerSubjectOrdering(t *testing.T) {
	const n = 20
	svc := newRecordingAuditService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// All events for one subject land on one worker, preserving order.
	for i := 0; i < n; i++ {
		action := domain.AuditSignInFailed
		if i == n-1 {
			action = domain.AuditSignIn
		}
		d.Record(domain.AuthEvent{Subject: "alice", Action: action, Timestamp: time.Now().UTC()})
	}

	events := svc.wait(t)
	for i, e := range events[:n-1] {
		if e.Action != domain.AuditSignInFailed {
			t.Fatalf("event %d out of order: %s", i, e.Action)
		}
	}
	if events[n-1].Action != domain.AuditSignIn {
		t.Fatalf("final event out of order: %s", events[n-1].Action)
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, newRecordingAuditService(1), zerolog.Nop())

	first := d.shardIndex("alice")
	for i := 0; i < 100; i++ {
		if d.shardIndex("alice") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
