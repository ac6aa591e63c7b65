package domain

import "errors"

// Error kinds. Every workflow error matches exactly one of them through errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrAuthorization = errors.New("authorization error")
	ErrConflict      = errors.New("conflict error")
	ErrTerminalState = errors.New("terminal state error")
	ErrResolution    = errors.New("resolution error")
)

var (
	ErrInvalidRoutingChoice    = newWorkflowError(ErrValidation, "invalid routing choice")
	ErrMissingRejectionComment = newWorkflowError(ErrValidation, "comment is required to reject")
	ErrEmptyApproverSet        = newWorkflowError(ErrValidation, "approver set is empty")
	ErrInvalidSubmissionState  = newWorkflowError(ErrValidation, "application can only be submitted from draft")
	ErrInvalidCancelState      = newWorkflowError(ErrValidation, "application can no longer be cancelled")
	ErrInvalidArchiveState     = newWorkflowError(ErrValidation, "only approved or rejected applications can be archived")
	ErrInvalidEditState        = newWorkflowError(ErrValidation, "only draft applications can be edited")
	ErrInvalidDeleteState      = newWorkflowError(ErrValidation, "only draft or rejected applications can be deleted")
	ErrInvalidTransition       = newWorkflowError(ErrValidation, "invalid transition")

	ErrUnauthorizedApprover = newWorkflowError(ErrAuthorization, "actor is not a pending approver of the current stage")
	ErrActionForbidden      = newWorkflowError(ErrAuthorization, "actor is not allowed to perform this action")

	ErrStaleApprovalState = newWorkflowError(ErrConflict, "application state changed, refresh and retry")
	ErrDuplicateDecision  = newWorkflowError(ErrConflict, "decision already recorded for this approver and level")

	ErrAlreadyTerminal = newWorkflowError(ErrTerminalState, "application is already closed")

	ErrNoEligibleApprover = newWorkflowError(ErrResolution, "no eligible approver")
)

type WorkflowError struct {
	kind error
	msg  string
}

func newWorkflowError(kind error, msg string) *WorkflowError {
	return &WorkflowError{kind: kind, msg: msg}
}

func (e *WorkflowError) Error() string {
	return e.msg
}

func (e *WorkflowError) Is(target error) bool {
	return target == e.kind
}

// Kind returns the taxonomy sentinel the error belongs to
func (e *WorkflowError) Kind() error {
	return e.kind
}

// IsRetryable reports whether the caller should refresh the application and try again
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// ErrorKind returns the taxonomy sentinel of a workflow error, or nil for any other error
func ErrorKind(err error) error {
	var wErr *WorkflowError
	if errors.As(err, &wErr) {
		return wErr.kind
	}
	return nil
}
