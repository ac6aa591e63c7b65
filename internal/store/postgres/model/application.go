package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/goto/oaflow/domain"
)

// Application database model
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Title       string
	Status      string `gorm:"index"`
	SubmitterID string `gorm:"index"`
	Department  string
	Amount      float64

	FactoryApproverIDs pq.StringArray `gorm:"type:text[]"`
	ManagerApproverIDs pq.StringArray `gorm:"type:text[]"`
	SkipManager        bool
	CurrentApproverIDs pq.StringArray `gorm:"type:text[]"`

	Revision   uint
	ArchivedBy string

	SubmittedAt *time.Time
	CompletedAt *time.Time
	ArchivedAt  *time.Time

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Application) TableName() string {
	return "applications"
}

// FromDomain transforms *domain.Application values into the model
func (m *Application) FromDomain(a *domain.Application) error {
	if a.ID != "" {
		id, err := uuid.Parse(a.ID)
		if err != nil {
			return fmt.Errorf("parsing uuid: %w", err)
		}
		m.ID = id
	}

	m.Title = a.Title
	m.Status = a.Status
	m.SubmitterID = a.SubmitterID
	m.Department = a.Department
	m.Amount = a.Amount
	m.FactoryApproverIDs = nonNil(a.FactoryApproverIDs)
	m.ManagerApproverIDs = nonNil(a.ManagerApproverIDs)
	m.SkipManager = a.SkipManager
	m.CurrentApproverIDs = nonNil(a.CurrentApproverIDs)
	m.Revision = a.Revision
	m.ArchivedBy = a.ArchivedBy
	m.SubmittedAt = a.SubmittedAt
	m.CompletedAt = a.CompletedAt
	m.ArchivedAt = a.ArchivedAt
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt

	return nil
}

// ToDomain transforms model into *domain.Application
func (m *Application) ToDomain() *domain.Application {
	return &domain.Application{
		ID:                 m.ID.String(),
		Title:              m.Title,
		Status:             m.Status,
		SubmitterID:        m.SubmitterID,
		Department:         m.Department,
		Amount:             m.Amount,
		FactoryApproverIDs: []string(m.FactoryApproverIDs),
		ManagerApproverIDs: []string(m.ManagerApproverIDs),
		SkipManager:        m.SkipManager,
		CurrentApproverIDs: nonNil(m.CurrentApproverIDs),
		Revision:           m.Revision,
		ArchivedBy:         m.ArchivedBy,
		SubmittedAt:        m.SubmittedAt,
		CompletedAt:        m.CompletedAt,
		ArchivedAt:         m.ArchivedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
