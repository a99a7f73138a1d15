package ports

import (
	"context"

	"github.com/VenkateshW22/teamflow-api/internal/core/domain"
)

// AuditService processes a single authentication event (persists it).
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}

// AuditRecorder accepts events for asynchronous recording. Implementations
// must not block the caller beyond a bounded enqueue.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists authentication events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuthEvent) error
}
