package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/internal/store/postgres/model"
)

type ApprovalRecordRepository struct {
	db *gorm.DB
}

func NewApprovalRecordRepository(db *gorm.DB) *ApprovalRecordRepository {
	return &ApprovalRecordRepository{db}
}

func (r *ApprovalRecordRepository) List(ctx context.Context, filter domain.ListApprovalRecordsFilter) ([]*domain.ApprovalRecord, error) {
	db := r.db.WithContext(ctx)
	if filter.ApplicationID != "" {
		db = db.Where(`"application_id" = ?`, filter.ApplicationID)
	}
	if filter.ApproverID != "" {
		db = db.Where(`LOWER("approver_id") = LOWER(?)`, filter.ApproverID)
	}
	if len(filter.Levels) > 0 {
		db = db.Where(`"level" IN ?`, filter.Levels)
	}
	db = db.Order(`"created_at" ASC`).Order(`"id" ASC`)

	var models []*model.ApprovalRecord
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.ApprovalRecord, 0, len(models))
	for _, m := range models {
		record, err := m.ToDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
