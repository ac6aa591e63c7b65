package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/goto/oaflow/pkg/slices"
)

const (
	ApplicationStatusDraft           = "draft"
	ApplicationStatusPendingFactory  = "pending_factory"
	ApplicationStatusPendingDirector = "pending_director"
	ApplicationStatusPendingManager  = "pending_manager"
	ApplicationStatusPendingCeo      = "pending_ceo"
	ApplicationStatusApproved        = "approved"
	ApplicationStatusRejected        = "rejected"
	ApplicationStatusArchived        = "archived"
)

// ApplicationStatuses lists every status an application can be observed in
var ApplicationStatuses = []string{
	ApplicationStatusDraft,
	ApplicationStatusPendingFactory,
	ApplicationStatusPendingDirector,
	ApplicationStatusPendingManager,
	ApplicationStatusPendingCeo,
	ApplicationStatusApproved,
	ApplicationStatusRejected,
	ApplicationStatusArchived,
}

var PendingApplicationStatuses = []string{
	ApplicationStatusPendingFactory,
	ApplicationStatusPendingDirector,
	ApplicationStatusPendingManager,
	ApplicationStatusPendingCeo,
}

var stageLevels = map[string]string{
	ApplicationStatusPendingFactory:  ApprovalLevelFactory,
	ApplicationStatusPendingDirector: ApprovalLevelDirector,
	ApplicationStatusPendingManager:  ApprovalLevelManager,
	ApplicationStatusPendingCeo:      ApprovalLevelCeo,
}

// StageLevel returns the approval level acting while an application is in the given status
func StageLevel(status string) (string, bool) {
	level, ok := stageLevels[status]
	return level, ok
}

// StageStatus returns the pending status for the given approval level
func StageStatus(level string) (string, bool) {
	for status, l := range stageLevels {
		if l == level {
			return status, true
		}
	}
	return "", false
}

func IsValidApplicationStatus(status string) bool {
	for _, s := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsTerminalStatus(status string) bool {
	switch status {
	case ApplicationStatusApproved, ApplicationStatusRejected, ApplicationStatusArchived:
		return true
	}
	return false
}

func IsPendingStatus(status string) bool {
	_, ok := stageLevels[status]
	return ok
}

// Application is the request routed through the approval chain
type Application struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Status      string  `json:"status" yaml:"status"`
	SubmitterID string  `json:"submitter_id" yaml:"submitter_id"`
	Department  string  `json:"department,omitempty" yaml:"department,omitempty"`
	Amount      float64 `json:"amount" yaml:"amount"`

	FactoryApproverIDs []string `json:"factory_approver_ids" yaml:"factory_approver_ids"`
	ManagerApproverIDs []string `json:"manager_approver_ids,omitempty" yaml:"manager_approver_ids,omitempty"`
	SkipManager        bool     `json:"skip_manager" yaml:"skip_manager"`
	CurrentApproverIDs []string `json:"current_approver_ids" yaml:"current_approver_ids"`

	Revision uint `json:"revision" yaml:"revision"`

	ArchivedBy string `json:"archived_by,omitempty" yaml:"archived_by,omitempty"`

	CreatedAt   time.Time  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty" yaml:"submitted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty" yaml:"archived_at,omitempty"`
}

func (a *Application) IsTerminal() bool {
	return IsTerminalStatus(a.Status)
}

func (a *Application) IsPending() bool {
	return IsPendingStatus(a.Status)
}

// CanActOn reports whether the user is part of the live approver set of the current stage
func (a *Application) CanActOn(userID string) bool {
	if !a.IsPending() {
		return false
	}
	return userID != "" && slices.ContainsFold(a.CurrentApproverIDs, userID)
}

// CurrentLevel returns the approval level of the current stage
func (a *Application) CurrentLevel() (string, bool) {
	return StageLevel(a.Status)
}

func (a *Application) IsSubmitter(userID string) bool {
	return userID != "" && strings.EqualFold(a.SubmitterID, userID)
}

// HasFactoryActivity reports whether any factory approver already removed themselves from the live set
func (a *Application) HasFactoryActivity() bool {
	if a.Status != ApplicationStatusPendingFactory {
		return false
	}
	return len(a.CurrentApproverIDs) < len(slices.UniqueFold(a.FactoryApproverIDs))
}

// Apply moves the application to the state described by the transition.
// Status, live approver set and lifecycle timestamps are only ever mutated here.
func (a *Application) Apply(t *Transition) error {
	if t == nil {
		return fmt.Errorf("%w: transition is nil", ErrInvalidTransition)
	}
	if t.From != a.Status {
		return fmt.Errorf("%w: transition expects status %q, application is %q", ErrStaleApprovalState, t.From, a.Status)
	}
	if !IsValidApplicationStatus(t.To) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, t.To)
	}
	if IsPendingStatus(t.To) && len(t.Approvers) == 0 {
		return fmt.Errorf("%w: status %q", ErrEmptyApproverSet, t.To)
	}
	if IsTerminalStatus(t.To) && len(t.Approvers) > 0 {
		return fmt.Errorf("%w: terminal status %q cannot carry approvers", ErrInvalidTransition, t.To)
	}
	if t.To == ApplicationStatusArchived {
		if a.Status != ApplicationStatusApproved && a.Status != ApplicationStatusRejected {
			return fmt.Errorf("%w: %q", ErrInvalidArchiveState, a.Status)
		}
	} else if a.IsTerminal() {
		return fmt.Errorf("%w: %q", ErrAlreadyTerminal, a.Status)
	}

	a.Status = t.To
	a.CurrentApproverIDs = append([]string{}, t.Approvers...)
	if t.ManagerApproverIDs != nil {
		a.ManagerApproverIDs = append([]string{}, t.ManagerApproverIDs...)
	}

	occurredAt := t.OccurredAt
	a.UpdatedAt = occurredAt
	if t.From == ApplicationStatusDraft && t.To == ApplicationStatusPendingFactory {
		a.SubmittedAt = &occurredAt
	}
	if IsTerminalStatus(t.To) && a.CompletedAt == nil {
		a.CompletedAt = &occurredAt
	}
	if t.To == ApplicationStatusArchived {
		a.ArchivedAt = &occurredAt
		a.ArchivedBy = t.Actor
	}

	return nil
}

// ApplicationPatch carries the draft fields a caller wants to change. Nil fields are left untouched.
type ApplicationPatch struct {
	Title              *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Department         *string  `json:"department,omitempty" yaml:"department,omitempty"`
	Amount             *float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
	FactoryApproverIDs []string `json:"factory_approver_ids,omitempty" yaml:"factory_approver_ids,omitempty"`
	ManagerApproverIDs []string `json:"manager_approver_ids,omitempty" yaml:"manager_approver_ids,omitempty"`
	SkipManager        *bool    `json:"skip_manager,omitempty" yaml:"skip_manager,omitempty"`
}

func (p ApplicationPatch) IsEmpty() bool {
	return p.Title == nil && p.Department == nil && p.Amount == nil &&
		p.FactoryApproverIDs == nil && p.ManagerApproverIDs == nil && p.SkipManager == nil
}

// ApplyTo copies the set fields onto the application
func (p ApplicationPatch) ApplyTo(a *Application) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Department != nil {
		a.Department = *p.Department
	}
	if p.Amount != nil {
		a.Amount = *p.Amount
	}
	if p.FactoryApproverIDs != nil {
		a.FactoryApproverIDs = append([]string{}, p.FactoryApproverIDs...)
	}
	if p.ManagerApproverIDs != nil {
		a.ManagerApproverIDs = append([]string{}, p.ManagerApproverIDs...)
	}
	if p.SkipManager != nil {
		a.SkipManager = *p.SkipManager
	}
}

type ListApplicationsFilter struct {
	IDs         []string `mapstructure:"ids" validate:"omitempty,min=1"`
	Statuses    []string `mapstructure:"statuses" validate:"omitempty,min=1"`
	SubmitterID string   `mapstructure:"submitter_id" validate:"omitempty"`
	ApproverID  string   `mapstructure:"approver_id" validate:"omitempty"`
	Department  string   `mapstructure:"department" validate:"omitempty"`
	OrderBy     []string `mapstructure:"order_by" validate:"omitempty,min=1"`
	Size        int      `mapstructure:"size" validate:"omitempty"`
	Offset      int      `mapstructure:"offset" validate:"omitempty"`
}
