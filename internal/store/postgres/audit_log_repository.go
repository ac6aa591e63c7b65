package postgres

import (
	"context"
	"fmt"

	"github.com/goto/salt/audit"
	auditrepo "github.com/goto/salt/audit/repositories"
	"gorm.io/gorm"

	"github.com/goto/oaflow/domain"
)

// auditLog reads the rows salt's audit service writes
type auditLog auditrepo.AuditModel

func (auditLog) TableName() string {
	return "audit_logs"
}

func (m auditLog) toAuditLog() (*audit.Log, error) {
	l := &audit.Log{
		Timestamp: m.Timestamp,
		Action:    m.Action,
		Actor:     m.Actor,
	}
	if !m.Data.Valid {
		return l, nil
	}
	var data map[string]interface{}
	if err := m.Data.Unmarshal(&data); err != nil {
		return nil, fmt.Errorf("decoding data of %q log: %w", m.Action, err)
	}
	l.Data = data
	return l, nil
}

// AuditLogRepository is the read side of the application audit trail
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// List returns matching logs ordered oldest first
func (r *AuditLogRepository) List(ctx context.Context, filter *domain.ListEventsFilter) ([]*audit.Log, error) {
	db := r.db.WithContext(ctx)
	if filter != nil {
		if len(filter.Types) > 0 {
			db = db.Where(`"action" IN ?`, filter.Types)
		}
		if filter.ApplicationID != "" {
			db = db.Where(`"data" ->> 'application_id' = ?`, filter.ApplicationID)
		}
		if filter.Actor != "" {
			db = db.Where(`LOWER("actor") = LOWER(?)`, filter.Actor)
		}
	}

	var rows []auditLog
	if err := db.Order(`"timestamp" ASC`).Find(&rows).Error; err != nil {
		return nil, err
	}

	logs := make([]*audit.Log, 0, len(rows))
	for _, row := range rows {
		l, err := row.toAuditLog()
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}
