package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/goto/oaflow/core/report"
	"github.com/goto/oaflow/domain"
)

type PendingApprovalsReminderConfig struct {
	// PendingFor skips applications submitted more recently than this
	PendingFor time.Duration `mapstructure:"pending_for"`
	DryRun     bool          `mapstructure:"dry_run"`
}

func (h *handler) PendingApprovalsReminder(ctx context.Context, c Config) error {
	var cfg PendingApprovalsReminderConfig
	if err := c.Decode(&cfg); err != nil {
		return fmt.Errorf("invalid config for %s job: %w", TypePendingApprovalsReminder, err)
	}

	h.logger.Info(ctx, "running pending approvals reminder job")

	filter := &report.PendingApprovalsFilter{}
	if cfg.PendingFor > 0 {
		before := time.Now().Add(-cfg.PendingFor)
		filter.SubmittedBefore = &before
	}

	h.logger.Info(ctx, "retrieving pending approvals...")
	pendingApprovals, err := h.reportService.GetPendingApprovalsList(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "failed to retrieve pending approvals", "error", err)
		return err
	}
	h.logger.Info(ctx, "retrieved pending approvals", "count", len(pendingApprovals))

	approverPendingApprovalsMap := make(map[string][]*report.PendingApproval)
	var approvers []string
	for _, approval := range pendingApprovals {
		if _, ok := approverPendingApprovalsMap[approval.Approver]; !ok {
			approvers = append(approvers, approval.Approver)
		}
		approverPendingApprovalsMap[approval.Approver] = append(approverPendingApprovalsMap[approval.Approver], approval)
	}

	var notifications []domain.Notification
	for _, approver := range approvers {
		pending := approverPendingApprovalsMap[approver]
		applicationIDs := make([]string, 0, len(pending))
		for _, p := range pending {
			applicationIDs = append(applicationIDs, p.ApplicationID)
		}

		h.logger.Info(ctx, "preparing notification", "pending approvals count", len(pending), "to", approver)
		notifications = append(notifications, domain.Notification{
			User: approver,
			Message: domain.NotificationMessage{
				Type: domain.NotificationTypePendingApprovalsReminder,
				Variables: map[string]interface{}{
					"pending_approvals_count": len(pending),
					"application_ids":         applicationIDs,
				},
			},
		})
	}

	if cfg.DryRun || len(notifications) == 0 {
		h.logger.Info(ctx, "no reminders sent", "dry_run", cfg.DryRun, "count", len(notifications))
		return nil
	}

	if errs := h.notifier.Notify(ctx, notifications); errs != nil {
		for _, e := range errs {
			h.logger.Error(ctx, "failed to send notifications", "error", e)
		}
	}

	h.logger.Info(ctx, "pending approvals notifications sent", "count", len(notifications))
	return nil
}
