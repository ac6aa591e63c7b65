package server

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goto/salt/audit"
	auditrepo "github.com/goto/salt/audit/repositories"

	"github.com/goto/oaflow/core/application"
	"github.com/goto/oaflow/core/event"
	"github.com/goto/oaflow/core/ledger"
	"github.com/goto/oaflow/core/report"
	"github.com/goto/oaflow/core/resolver"
	"github.com/goto/oaflow/core/transition"
	"github.com/goto/oaflow/internal/store/postgres"
	pkghttp "github.com/goto/oaflow/pkg/http"
	"github.com/goto/oaflow/pkg/log"
	"github.com/goto/oaflow/plugins/archives"
	dirhttp "github.com/goto/oaflow/plugins/directory/http"
	"github.com/goto/oaflow/plugins/directory/static"
	"github.com/goto/oaflow/plugins/notifiers"
)

type ServiceDeps struct {
	Config    *Config
	Logger    log.Logger
	Validator *validator.Validate
	Notifier  notifiers.Client
}

type Services struct {
	ApplicationService *application.Service
	LedgerService      *ledger.Service
	ResolverService    *resolver.Service
	EventService       *event.Service
	ReportService      *report.Service

	store *postgres.Store
}

func (s *Services) Close() error {
	return s.store.Close()
}

func InitServices(deps ServiceDeps) (*Services, error) {
	ctx := context.Background()

	store, err := postgres.NewStore(deps.Config.DB)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	sqlDB, err := store.DB().DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db: %w", err)
	}
	// audit_logs is created by the embedded migrations
	auditRepository := auditrepo.NewPostgresRepository(sqlDB)
	auditLogger := audit.New(
		audit.WithMetadataExtractor(func(context.Context) map[string]interface{} {
			return map[string]interface{}{
				"app_name":    "oaflow",
				"app_version": deps.Config.Version,
			}
		}),
		audit.WithRepository(auditRepository),
	)

	directory, err := newDirectory(deps.Config.Directory)
	if err != nil {
		return nil, err
	}

	archiver, err := archives.NewArchiver(ctx, deps.Config.Archive)
	if err != nil {
		return nil, fmt.Errorf("initializing archiver: %w", err)
	}

	applicationRepository := postgres.NewApplicationRepository(store.DB())
	approvalRecordRepository := postgres.NewApprovalRecordRepository(store.DB())
	auditLogRepository := postgres.NewAuditLogRepository(store.DB())

	resolverService := resolver.NewService(resolver.ServiceDeps{
		Directory: directory,
		Logger:    deps.Logger,
		Config:    deps.Config.Resolver,
	})
	ledgerService := ledger.NewService(ledger.ServiceDeps{
		Repository:            approvalRecordRepository,
		ApplicationRepository: applicationRepository,
		RoleChecker:           resolverService,
		Logger:                deps.Logger,
	})
	applicationService := application.NewService(application.ServiceDeps{
		Repository:       applicationRepository,
		Ledger:           ledgerService,
		Engine:           transition.NewEngine(resolverService),
		RoleResolver:     resolverService,
		Notifier:         deps.Notifier,
		AuditLogger:      auditLogger,
		Archiver:         archiver,
		ReadonlyCriteria: deps.Config.ReadonlyNotification.Criteria,
		Validator:        deps.Validator,
		Logger:           deps.Logger,
	})

	return &Services{
		ApplicationService: applicationService,
		LedgerService:      ledgerService,
		ResolverService:    resolverService,
		EventService:       event.NewService(auditLogRepository, deps.Logger),
		ReportService:      report.NewService(report.ServiceDeps{Repository: report.NewRepository(store.DB()), Validator: deps.Validator}),
		store:              store,
	}, nil
}

type directory interface {
	ResolveUsersByRole(ctx context.Context, role string, routingContext string) ([]string, error)
}

func newDirectory(cfg DirectoryConfig) (directory, error) {
	switch cfg.Provider {
	case DirectoryProviderHTTP:
		d, err := dirhttp.NewDirectory(cfg.HTTP, &pkghttp.GoogleClientCreator{})
		if err != nil {
			return nil, err
		}
		return d, nil
	case DirectoryProviderStatic, "":
		return static.NewDirectory(cfg.Static), nil
	}
	return nil, fmt.Errorf("invalid directory provider %q", cfg.Provider)
}
