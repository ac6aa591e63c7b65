package domain

import (
	"strings"
	"time"
)

const (
	ApprovalLevelFactory  = "factory"
	ApprovalLevelDirector = "director"
	ApprovalLevelManager  = "manager"
	ApprovalLevelCeo      = "ceo"

	ApprovalActionApprove = "approve"
	ApprovalActionReject  = "reject"

	RoutingChoiceToManager = "to_manager"
	RoutingChoiceToCeo     = "to_ceo"
	RoutingChoiceComplete  = "complete"

	// SystemActor authors ledger entries that are not an approver's decision
	SystemActor = "system"
)

// ApprovalRecord is a single immutable ledger entry
type ApprovalRecord struct {
	ID            string `json:"id" yaml:"id"`
	ApplicationID string `json:"application_id" yaml:"application_id"`
	ApproverID    string `json:"approver_id" yaml:"approver_id"`
	Level         string `json:"level" yaml:"level"`
	Action        string `json:"action" yaml:"action"`
	Comment       string `json:"comment,omitempty" yaml:"comment,omitempty"`

	RoutingChoice      string   `json:"routing_choice,omitempty" yaml:"routing_choice,omitempty"`
	SelectedManagerIDs []string `json:"selected_manager_ids,omitempty" yaml:"selected_manager_ids,omitempty"`

	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

func (r *ApprovalRecord) IsSystem() bool {
	return r.ApproverID == SystemActor
}

func (r *ApprovalRecord) IsRejection() bool {
	return r.Action == ApprovalActionReject
}

// Ledger is the ordered decision history of one application
type Ledger []*ApprovalRecord

// HasDecision reports whether the approver already has an entry at the given level
func (l Ledger) HasDecision(approverID, level string) bool {
	for _, r := range l {
		if r.Level == level && equalFoldID(r.ApproverID, approverID) {
			return true
		}
	}
	return false
}

// ActedBy reports whether the user authored any entry, or was named as the canceller of a system entry
func (l Ledger) ActedBy(userID string) bool {
	for _, r := range l {
		if equalFoldID(r.ApproverID, userID) {
			return true
		}
		if by, ok := r.Details[RecordDetailCancelledBy].(string); ok && equalFoldID(by, userID) {
			return true
		}
	}
	return false
}

const (
	RecordDetailCancelledBy = "cancelled_by"
	RecordDetailReason      = "reason"
)

type ListApprovalRecordsFilter struct {
	ApplicationID string   `mapstructure:"application_id" validate:"omitempty"`
	ApproverID    string   `mapstructure:"approver_id" validate:"omitempty"`
	Levels        []string `mapstructure:"levels" validate:"omitempty,min=1"`
}

func equalFoldID(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
