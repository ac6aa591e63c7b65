package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/pkg/log"
	"github.com/goto/oaflow/pkg/slices"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultDirectorRole = "director"
	DefaultCeoRole      = "ceo"
	DefaultAdminRole    = "admin"
	DefaultReadonlyRole = "readonly"
)

//go:generate mockery --name=directory --exported --with-expecter
type directory interface {
	ResolveUsersByRole(ctx context.Context, role string, routingContext string) ([]string, error)
}

type Config struct {
	DirectorRole string        `mapstructure:"director_role" default:"director"`
	CeoRole      string        `mapstructure:"ceo_role" default:"ceo"`
	AdminRole    string        `mapstructure:"admin_role" default:"admin"`
	ReadonlyRole string        `mapstructure:"readonly_role" default:"readonly"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl" default:"5m"`
}

type ServiceDeps struct {
	Directory directory
	Logger    log.Logger
	Config    Config
}

// Service resolves the concrete users who must act at a stage
type Service struct {
	directory directory
	logger    log.Logger
	config    Config
	cache     *cache.Cache
}

func NewService(deps ServiceDeps) *Service {
	cfg := deps.Config
	if cfg.DirectorRole == "" {
		cfg.DirectorRole = DefaultDirectorRole
	}
	if cfg.CeoRole == "" {
		cfg.CeoRole = DefaultCeoRole
	}
	if cfg.AdminRole == "" {
		cfg.AdminRole = DefaultAdminRole
	}
	if cfg.ReadonlyRole == "" {
		cfg.ReadonlyRole = DefaultReadonlyRole
	}

	var c *cache.Cache
	if cfg.CacheTTL > 0 {
		c = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	return &Service{
		directory: deps.Directory,
		logger:    deps.Logger,
		config:    cfg,
		cache:     c,
	}
}

// Resolve returns the approvers of the given level for the application.
// It never returns an empty set without an error.
func (s *Service) Resolve(ctx context.Context, app *domain.Application, level string) ([]string, error) {
	if app == nil {
		return nil, ErrNilApplication
	}

	var approvers []string
	switch level {
	case domain.ApprovalLevelFactory:
		approvers = app.FactoryApproverIDs
	case domain.ApprovalLevelManager:
		approvers = app.ManagerApproverIDs
	case domain.ApprovalLevelDirector:
		users, err := s.ResolveRole(ctx, s.config.DirectorRole, app.Department)
		if err != nil {
			return nil, err
		}
		approvers = users
	case domain.ApprovalLevelCeo:
		users, err := s.ResolveRole(ctx, s.config.CeoRole, "")
		if err != nil {
			return nil, err
		}
		approvers = users
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}

	approvers = slices.UniqueFold(approvers)
	if len(approvers) == 0 {
		return nil, fmt.Errorf("%w: level %q of application %q", domain.ErrNoEligibleApprover, level, app.ID)
	}
	return approvers, nil
}

// ResolveRole returns the holders of a directory role within a routing context
func (s *Service) ResolveRole(ctx context.Context, role, routingContext string) ([]string, error) {
	key := cacheKey(role, routingContext)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			return cached.([]string), nil
		}
	}

	users, err := s.directory.ResolveUsersByRole(ctx, role, routingContext)
	if err != nil {
		return nil, fmt.Errorf("resolving users with role %q: %w", role, err)
	}
	users = slices.UniqueFold(users)

	if s.cache != nil && len(users) > 0 {
		s.cache.Set(key, users, cache.DefaultExpiration)
	}
	s.logger.Debug(ctx, "resolved role holders", "role", role, "context", routingContext, "count", len(users))
	return users, nil
}

func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.isRoleHolder(ctx, s.config.AdminRole, userID)
}

func (s *Service) ReadonlyUsers(ctx context.Context) ([]string, error) {
	return s.ResolveRole(ctx, s.config.ReadonlyRole, "")
}

func (s *Service) isRoleHolder(ctx context.Context, role, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	users, err := s.ResolveRole(ctx, role, "")
	if err != nil {
		return false, err
	}
	return slices.ContainsFold(users, userID), nil
}

func cacheKey(role, routingContext string) string {
	return strings.ToLower(role) + "|" + strings.ToLower(routingContext)
}
