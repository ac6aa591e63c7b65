package report

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/goto/oaflow/domain"
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	GetPendingApprovalsList(ctx context.Context, filter *PendingApprovalsFilter) ([]*PendingApproval, error)
}

type ServiceDeps struct {
	Repository repository
	Validator  *validator.Validate
}

type Service struct {
	repo      repository
	validator *validator.Validate
}

func NewService(deps ServiceDeps) *Service {
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}
	return &Service{
		repo:      deps.Repository,
		validator: v,
	}
}

// GetPendingApprovalsList returns one row per live approver of every pending application
func (s *Service) GetPendingApprovalsList(ctx context.Context, filter *PendingApprovalsFilter) ([]*PendingApproval, error) {
	f := PendingApprovalsFilter{}
	if filter != nil {
		f = *filter
	}
	if err := s.validator.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	if len(f.Statuses) == 0 {
		f.Statuses = domain.PendingApplicationStatuses
	}

	return s.repo.GetPendingApprovalsList(ctx, &f)
}
