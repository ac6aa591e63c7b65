package domain

import "time"

// Transition is the computed outcome of a workflow operation.
// A nil Record means the operation writes nothing to the ledger.
type Transition struct {
	ApplicationID string `json:"application_id" yaml:"application_id"`
	From          string `json:"from" yaml:"from"`
	To            string `json:"to" yaml:"to"`
	Actor         string `json:"actor" yaml:"actor"`

	// Approvers is the live approver set after the transition
	Approvers []string `json:"approvers" yaml:"approvers"`
	// ManagerApproverIDs is set when the director chose a manager group
	ManagerApproverIDs []string `json:"manager_approver_ids,omitempty" yaml:"manager_approver_ids,omitempty"`

	Record     *ApprovalRecord `json:"record,omitempty" yaml:"record,omitempty"`
	OccurredAt time.Time       `json:"occurred_at" yaml:"occurred_at"`
}

func (t *Transition) IsStageChange() bool {
	return t.From != t.To
}

func (t *Transition) IsTerminal() bool {
	return IsTerminalStatus(t.To)
}

// ApplicationStageChanged is emitted after a stage change has been committed
type ApplicationStageChanged struct {
	ApplicationID string    `json:"application_id"`
	PreviousStage string    `json:"previous_stage"`
	NewStage      string    `json:"new_stage"`
	NewApprovers  []string  `json:"new_approvers"`
	OccurredAt    time.Time `json:"occurred_at"`
}
