package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/goto/oaflow/core/application"
	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/internal/store/postgres/model"
)

const (
	pgUniqueViolationErrorCode = "23505"

	uniqueDecisionConstraintName = "approval_records_unique_decision_idx"
)

var applicationsOrderableColumns = []string{"created_at", "updated_at", "submitted_at", "completed_at", "amount", "title"}

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	m := new(model.Application)
	if err := m.FromDomain(a); err != nil {
		return fmt.Errorf("parsing application: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}

		*a = *m.ToDomain()
		return nil
	})
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if id == "" {
		return nil, application.ErrApplicationIDEmptyParam
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", application.ErrApplicationNotFound, id)
	}

	var m model.Application
	if err := r.db.WithContext(ctx).Where(`"id" = ?`, id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", application.ErrApplicationNotFound, id)
		}
		return nil, err
	}

	return m.ToDomain(), nil
}

func (r *ApplicationRepository) Find(ctx context.Context, filter *domain.ListApplicationsFilter) ([]*domain.Application, error) {
	db := r.db.WithContext(ctx)
	if filter != nil {
		var err error
		db, err = applyApplicationsFilter(db, filter)
		if err != nil {
			return nil, err
		}
	}

	var models []*model.Application
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.Application, 0, len(models))
	for _, m := range models {
		records = append(records, m.ToDomain())
	}
	return records, nil
}

// Commit writes the application and the optional ledger entry in a single transaction.
// The update only applies while the stored revision still equals expectedRevision.
func (r *ApplicationRepository) Commit(ctx context.Context, a *domain.Application, expectedRevision uint, record *domain.ApprovalRecord) error {
	m := new(model.Application)
	if err := m.FromDomain(a); err != nil {
		return fmt.Errorf("parsing application: %w", err)
	}
	var rm *model.ApprovalRecord
	if record != nil {
		rm = new(model.ApprovalRecord)
		if err := rm.FromDomain(record); err != nil {
			return fmt.Errorf("parsing approval record: %w", err)
		}
	}

	updatedAt := a.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Application{}).
			Where(`"id" = ? AND "revision" = ?`, a.ID, expectedRevision).
			Updates(map[string]interface{}{
				"title":                m.Title,
				"status":               m.Status,
				"department":           m.Department,
				"amount":               m.Amount,
				"factory_approver_ids": m.FactoryApproverIDs,
				"manager_approver_ids": m.ManagerApproverIDs,
				"skip_manager":         m.SkipManager,
				"current_approver_ids": m.CurrentApproverIDs,
				"revision":             expectedRevision + 1,
				"archived_by":          m.ArchivedBy,
				"submitted_at":         m.SubmittedAt,
				"completed_at":         m.CompletedAt,
				"archived_at":          m.ArchivedAt,
				"updated_at":           updatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Application{}).Where(`"id" = ?`, a.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: %q", application.ErrApplicationNotFound, a.ID)
			}
			return fmt.Errorf("%w: application %q is no longer at revision %d", domain.ErrStaleApprovalState, a.ID, expectedRevision)
		}

		if rm != nil {
			if err := tx.Create(rm).Error; err != nil {
				var pgError *pgconn.PgError
				if errors.As(err, &pgError) && pgError.Code == pgUniqueViolationErrorCode && pgError.ConstraintName == uniqueDecisionConstraintName {
					return fmt.Errorf("%w: %q at level %q", domain.ErrDuplicateDecision, record.ApproverID, record.Level)
				}
				return fmt.Errorf("inserting approval record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.Revision = expectedRevision + 1
	a.UpdatedAt = updatedAt
	if rm != nil {
		record.ID = rm.ID.String()
		record.CreatedAt = rm.CreatedAt
	}
	return nil
}

// Delete soft deletes the application while it is still at expectedRevision. Its approval records are kept.
func (r *ApplicationRepository) Delete(ctx context.Context, id string, expectedRevision uint) error {
	if id == "" {
		return application.ErrApplicationIDEmptyParam
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(`"id" = ? AND "revision" = ?`, id, expectedRevision).Delete(&model.Application{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Application{}).Where(`"id" = ?`, id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: %q", application.ErrApplicationNotFound, id)
			}
			return fmt.Errorf("%w: application %q is no longer at revision %d", domain.ErrStaleApprovalState, id, expectedRevision)
		}
		return nil
	})
}

func applyApplicationsFilter(db *gorm.DB, filter *domain.ListApplicationsFilter) (*gorm.DB, error) {
	if len(filter.IDs) > 0 {
		db = db.Where(`"id" IN ?`, filter.IDs)
	}
	if len(filter.Statuses) > 0 {
		db = db.Where(`"status" IN ?`, filter.Statuses)
	}
	if filter.SubmitterID != "" {
		db = db.Where(`LOWER("submitter_id") = LOWER(?)`, filter.SubmitterID)
	}
	if filter.ApproverID != "" {
		db = db.Where(`EXISTS (SELECT 1 FROM unnest("current_approver_ids") AS approver WHERE LOWER(approver) = LOWER(?))`, filter.ApproverID)
	}
	if filter.Department != "" {
		db = db.Where(`"department" = ?`, filter.Department)
	}

	orderBy := filter.OrderBy
	if len(orderBy) == 0 {
		orderBy = []string{"created_at:desc"}
	}
	var err error
	db, err = addOrderByClause(db, orderBy, addOrderByClauseOptions{
		statusColumnName: `"status"`,
		statusesOrder:    domain.ApplicationStatuses,
	}, applicationsOrderableColumns)
	if err != nil {
		return nil, err
	}

	if filter.Size > 0 {
		db = db.Limit(filter.Size)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}
	return db, nil
}
