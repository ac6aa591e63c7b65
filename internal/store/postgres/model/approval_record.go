package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/goto/oaflow/domain"
)

// ApprovalRecord database model. Rows are append-only.
type ApprovalRecord struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ApplicationID      uuid.UUID `gorm:"type:uuid"`
	ApproverID         string
	Level              string
	Action             string
	Comment            string
	RoutingChoice      string
	SelectedManagerIDs pq.StringArray `gorm:"type:text[]"`
	Details            datatypes.JSON

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ApprovalRecord) TableName() string {
	return "approval_records"
}

// FromDomain transforms *domain.ApprovalRecord values into the model
func (m *ApprovalRecord) FromDomain(r *domain.ApprovalRecord) error {
	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return fmt.Errorf("parsing uuid: %w", err)
		}
		m.ID = id
	}
	applicationID, err := uuid.Parse(r.ApplicationID)
	if err != nil {
		return fmt.Errorf("parsing application id: %w", err)
	}

	if r.Details != nil {
		details, err := json.Marshal(r.Details)
		if err != nil {
			return err
		}
		m.Details = details
	}

	m.ApplicationID = applicationID
	m.ApproverID = r.ApproverID
	m.Level = r.Level
	m.Action = r.Action
	m.Comment = r.Comment
	m.RoutingChoice = r.RoutingChoice
	m.SelectedManagerIDs = r.SelectedManagerIDs
	m.CreatedAt = r.CreatedAt

	return nil
}

// ToDomain transforms model into *domain.ApprovalRecord
func (m *ApprovalRecord) ToDomain() (*domain.ApprovalRecord, error) {
	var details map[string]interface{}
	if m.Details != nil {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return nil, fmt.Errorf("parsing details: %w", err)
		}
	}

	var selected []string
	if len(m.SelectedManagerIDs) > 0 {
		selected = []string(m.SelectedManagerIDs)
	}

	return &domain.ApprovalRecord{
		ID:                 m.ID.String(),
		ApplicationID:      m.ApplicationID.String(),
		ApproverID:         m.ApproverID,
		Level:              m.Level,
		Action:             m.Action,
		Comment:            m.Comment,
		RoutingChoice:      m.RoutingChoice,
		SelectedManagerIDs: selected,
		Details:            details,
		CreatedAt:          m.CreatedAt,
	}, nil
}
