package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/pkg/log"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	List(ctx context.Context, filter domain.ListApprovalRecordsFilter) ([]*domain.ApprovalRecord, error)
}

//go:generate mockery --name=applicationRepository --exported --with-expecter
type applicationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Application, error)
}

//go:generate mockery --name=roleChecker --exported --with-expecter
type roleChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type ServiceDeps struct {
	Repository            repository
	ApplicationRepository applicationRepository
	RoleChecker           roleChecker
	Logger                log.Logger
}

// Service reads the decision history of applications
type Service struct {
	repo        repository
	appRepo     applicationRepository
	roleChecker roleChecker
	logger      log.Logger
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		repo:        deps.Repository,
		appRepo:     deps.ApplicationRepository,
		roleChecker: deps.RoleChecker,
		logger:      deps.Logger,
	}
}

// List returns every ledger entry of the application ordered by creation time
func (s *Service) List(ctx context.Context, applicationID string) (domain.Ledger, error) {
	if applicationID == "" {
		return nil, ErrApplicationIDEmptyParam
	}

	records, err := s.repo.List(ctx, domain.ListApprovalRecordsFilter{ApplicationID: applicationID})
	if err != nil {
		return nil, fmt.Errorf("listing approval records: %w", err)
	}

	l := domain.Ledger(records)
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].CreatedAt.Before(l[j].CreatedAt)
	})
	return l, nil
}

// History returns the ledger to viewers involved in the application
func (s *Service) History(ctx context.Context, applicationID, viewerID string) (domain.Ledger, error) {
	if applicationID == "" {
		return nil, ErrApplicationIDEmptyParam
	}

	var app *domain.Application
	var records domain.Ledger
	var isAdmin bool

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		a, err := s.appRepo.GetByID(egctx, applicationID)
		if err != nil {
			return fmt.Errorf("getting application: %w", err)
		}
		app = a
		return nil
	})
	eg.Go(func() error {
		l, err := s.List(egctx, applicationID)
		if err != nil {
			return err
		}
		records = l
		return nil
	})
	eg.Go(func() error {
		admin, err := s.roleChecker.IsAdmin(egctx, viewerID)
		if err != nil {
			return fmt.Errorf("checking admin role: %w", err)
		}
		isAdmin = admin
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if !canView(app, records, viewerID, isAdmin) {
		s.logger.Warn(ctx, "ledger access denied", "application_id", applicationID, "viewer", viewerID)
		return nil, fmt.Errorf("%w: %q cannot view history of application %q", domain.ErrActionForbidden, viewerID, applicationID)
	}
	return records, nil
}

func canView(app *domain.Application, records domain.Ledger, viewerID string, isAdmin bool) bool {
	switch {
	case isAdmin:
		return true
	case app.IsSubmitter(viewerID):
		return true
	case app.CanActOn(viewerID):
		return true
	default:
		return records.ActedBy(viewerID)
	}
}
