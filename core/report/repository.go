package report

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) GetPendingApprovalsList(ctx context.Context, filter *PendingApprovalsFilter) ([]*PendingApproval, error) {
	records := []*PendingApproval{}

	db := r.db.WithContext(ctx)
	db = applyPendingApprovalsFilter(db, filter)
	if err := db.Scan(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func applyPendingApprovalsFilter(db *gorm.DB, filter *PendingApprovalsFilter) *gorm.DB {
	db = db.Table("applications AS app").
		Select(`app.id AS application_id, app.title, approver, app.submitter_id AS submitter, app.status, app.department, app.submitted_at`).
		Joins("CROSS JOIN LATERAL unnest(app.current_approver_ids) AS approver").
		Where("app.deleted_at IS NULL").
		Where("app.status IN ?", filter.Statuses).
		Order("approver").
		Order("app.submitted_at")

	if len(filter.Approvers) > 0 {
		approvers := make([]string, 0, len(filter.Approvers))
		for _, a := range filter.Approvers {
			approvers = append(approvers, strings.ToLower(a))
		}
		db = db.Where("LOWER(approver) IN ?", approvers)
	}

	if filter.SubmittedBefore != nil {
		db = db.Where("app.submitted_at < ?", *filter.SubmittedBefore)
	}

	return db
}
