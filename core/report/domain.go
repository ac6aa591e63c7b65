package report

import "time"

// PendingApproval is one live approver slot of an application waiting at some stage
type PendingApproval struct {
	ApplicationID string     `json:"application_id" yaml:"application_id"`
	Title         string     `json:"title" yaml:"title"`
	Approver      string     `json:"approver" yaml:"approver"`
	Submitter     string     `json:"submitter" yaml:"submitter"`
	Status        string     `json:"status" yaml:"status"`
	Department    string     `json:"department,omitempty" yaml:"department,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty" yaml:"submitted_at,omitempty"`
}

type PendingApprovalsFilter struct {
	Statuses        []string   `mapstructure:"statuses" validate:"omitempty,min=1,dive,oneof=pending_factory pending_director pending_manager pending_ceo"`
	Approvers       []string   `mapstructure:"approvers" validate:"omitempty,min=1"`
	SubmittedBefore *time.Time `mapstructure:"submitted_before" validate:"omitempty"`
}
