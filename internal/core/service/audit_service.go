package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/VenkateshW22/teamflow-api/internal/core/domain"
	"github.com/VenkateshW22/teamflow-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService persisting events to the repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single authentication event. The trail is best-effort:
// the caller (dispatcher worker) logs failures and moves on.
func (s *auditService) Process(ctx context.Context, event domain.AuthEvent) error {
	if event.Subject == "" || event.Action == "" {
		return fmt.Errorf("audit event missing subject or action")
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("persist auth event: %w", err)
	}
	s.log.Debug().
		Str("subject", event.Subject).
		Str("action", event.Action).
		Msg("auth event recorded")
	return nil
}
