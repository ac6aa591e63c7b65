package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/goto/oaflow/core/report"
	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/pkg/log"
)

type Type string

const (
	TypePendingApprovalsReminder     Type = "pending_approvals_reminder"
	TypeArchiveCompletedApplications Type = "archive_completed_applications"
)

type Config map[string]interface{}

// Decode fills v from the job configuration. Durations may be written as "72h".
func (c Config) Decode(v interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
		Result: v,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(c))
}

type JobConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Interval string `mapstructure:"interval"`
	Config   Config `mapstructure:"config"`
}

//go:generate mockery --name=reportService --exported --with-expecter
type reportService interface {
	GetPendingApprovalsList(ctx context.Context, filter *report.PendingApprovalsFilter) ([]*report.PendingApproval, error)
}

//go:generate mockery --name=applicationService --exported --with-expecter
type applicationService interface {
	Find(ctx context.Context, filter *domain.ListApplicationsFilter) ([]*domain.Application, error)
	Archive(ctx context.Context, id, actorID string) (*domain.Application, error)
}

//go:generate mockery --name=notifier --exported --with-expecter
type notifier interface {
	Notify(context.Context, []domain.Notification) []error
}

type handler struct {
	logger             log.Logger
	reportService      reportService
	applicationService applicationService
	notifier           notifier
}

func NewHandler(
	logger log.Logger,
	reportService reportService,
	applicationService applicationService,
	notifier notifier,
) *handler {
	return &handler{
		logger:             logger,
		reportService:      reportService,
		applicationService: applicationService,
		notifier:           notifier,
	}
}

// Jobs maps every job type to its runner
func (h *handler) Jobs() map[Type]func(context.Context, Config) error {
	return map[Type]func(context.Context, Config) error{
		TypePendingApprovalsReminder:     h.PendingApprovalsReminder,
		TypeArchiveCompletedApplications: h.ArchiveCompletedApplications,
	}
}

func (h *handler) Run(ctx context.Context, t Type, c Config) error {
	job, ok := h.Jobs()[t]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidJobType, t)
	}
	return job(log.WithFields(ctx, "job", string(t)), c)
}
