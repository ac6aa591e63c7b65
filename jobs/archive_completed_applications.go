package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goto/oaflow/domain"
)

type ArchiveCompletedApplicationsConfig struct {
	// Actor must hold the admin role
	Actor          string        `mapstructure:"actor"`
	CompletedFor   time.Duration `mapstructure:"completed_for"`
	BatchSize      int           `mapstructure:"batch_size"`
	DryRun         bool          `mapstructure:"dry_run"`
	StopOnFailures bool          `mapstructure:"stop_on_failures"`
}

// ArchiveCompletedApplications archives applications that closed more than CompletedFor ago
func (h *handler) ArchiveCompletedApplications(ctx context.Context, c Config) error {
	var cfg ArchiveCompletedApplicationsConfig
	if err := c.Decode(&cfg); err != nil {
		return fmt.Errorf("invalid config for %s job: %w", TypeArchiveCompletedApplications, err)
	}
	if cfg.Actor == "" {
		return fmt.Errorf("invalid config for %s job: actor is required", TypeArchiveCompletedApplications)
	}

	applications, err := h.applicationService.Find(ctx, &domain.ListApplicationsFilter{
		Statuses: []string{domain.ApplicationStatusApproved, domain.ApplicationStatusRejected},
		OrderBy:  []string{"completed_at:asc"},
		Size:     cfg.BatchSize,
	})
	if err != nil {
		return fmt.Errorf("listing completed applications: %w", err)
	}

	cutoff := time.Now().Add(-cfg.CompletedFor)
	var failures []error
	archived := 0
	for _, app := range applications {
		if app.CompletedAt == nil || app.CompletedAt.After(cutoff) {
			continue
		}
		if cfg.DryRun {
			h.logger.Info(ctx, "application would be archived", "application_id", app.ID)
			continue
		}
		if _, err := h.applicationService.Archive(ctx, app.ID, cfg.Actor); err != nil {
			h.logger.Error(ctx, "failed to archive application", "application_id", app.ID, "error", err)
			failures = append(failures, fmt.Errorf("archiving %q: %w", app.ID, err))
			if cfg.StopOnFailures {
				break
			}
			continue
		}
		archived++
	}

	h.logger.Info(ctx, "archive job finished", "archived", archived, "failed", len(failures))
	return errors.Join(failures...)
}
