package event

import (
	"context"
	"fmt"

	"github.com/goto/salt/audit"

	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/pkg/log"
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	List(context.Context, *domain.ListEventsFilter) ([]*audit.Log, error)
}

type Service struct {
	repo repository
	log  log.Logger
}

func NewService(repo repository, log log.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns the audit trail of matching applications, oldest first.
// Filtering happens in the repository; rows that are not application events are skipped.
func (s *Service) List(ctx context.Context, filter *domain.ListEventsFilter) ([]*domain.Event, error) {
	if filter != nil {
		for _, t := range filter.Types {
			if !domain.IsValidAuditKey(t) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidEventType, t)
			}
		}
	}

	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	events := make([]*domain.Event, 0, len(logs))
	for _, l := range logs {
		e, err := domain.NewEvent(l)
		if err != nil {
			s.log.Warn(ctx, "skipping unparseable audit log", "action", l.Action, "error", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}
