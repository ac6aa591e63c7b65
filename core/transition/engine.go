package transition

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/pkg/slices"
)

var TimeNow = time.Now

const cancellationComment = "cancelled by submitter"

//go:generate mockery --name=approverResolver --exported --with-expecter
type approverResolver interface {
	Resolve(ctx context.Context, app *domain.Application, level string) ([]string, error)
}

// Engine computes the next state of an application. It never persists anything
// and never mutates the application it is given.
type Engine struct {
	resolver approverResolver
}

func NewEngine(resolver approverResolver) *Engine {
	return &Engine{resolver: resolver}
}

// Submit moves a draft into the factory stage
func (e *Engine) Submit(ctx context.Context, app *domain.Application, actorID string) (*domain.Transition, error) {
	if app.Status != domain.ApplicationStatusDraft {
		return nil, fmt.Errorf("%w: current status is %q", domain.ErrInvalidSubmissionState, app.Status)
	}
	if !app.IsSubmitter(actorID) {
		return nil, fmt.Errorf("%w: only the submitter can submit application %q", domain.ErrActionForbidden, app.ID)
	}
	if len(slices.UniqueFold(app.FactoryApproverIDs)) == 0 {
		return nil, fmt.Errorf("%w: no factory approvers configured for application %q", domain.ErrEmptyApproverSet, app.ID)
	}

	approvers, err := e.resolver.Resolve(ctx, app, domain.ApprovalLevelFactory)
	if err != nil {
		return nil, err
	}

	return &domain.Transition{
		ApplicationID: app.ID,
		From:          app.Status,
		To:            domain.ApplicationStatusPendingFactory,
		Actor:         actorID,
		Approvers:     approvers,
		OccurredAt:    TimeNow(),
	}, nil
}

// Decide applies an approver's decision at the current stage. history is the
// ledger of the application and is used to detect repeated decisions.
func (e *Engine) Decide(ctx context.Context, app *domain.Application, history domain.Ledger, d domain.Decision) (*domain.Transition, error) {
	if err := checkIfApplicationStillPending(app.Status); err != nil {
		return nil, err
	}
	level, _ := app.CurrentLevel()

	if history.HasDecision(d.ActorID, level) {
		return nil, fmt.Errorf("%w: %q already decided at level %q", domain.ErrDuplicateDecision, d.ActorID, level)
	}
	if !app.CanActOn(d.ActorID) {
		return nil, fmt.Errorf("%w: %q at level %q", domain.ErrUnauthorizedApprover, d.ActorID, level)
	}

	now := TimeNow()
	record := &domain.ApprovalRecord{
		ApplicationID: app.ID,
		ApproverID:    d.ActorID,
		Level:         level,
		Action:        d.Action,
		Comment:       strings.TrimSpace(d.Comment),
		CreatedAt:     now,
	}
	t := &domain.Transition{
		ApplicationID: app.ID,
		From:          app.Status,
		Actor:         d.ActorID,
		Record:        record,
		OccurredAt:    now,
	}

	switch d.Action {
	case domain.ApprovalActionReject:
		if d.RoutingChoice != "" || len(d.SelectedManagerIDs) > 0 {
			return nil, fmt.Errorf("%w: routing is only available when approving", domain.ErrInvalidRoutingChoice)
		}
		if record.Comment == "" {
			return nil, domain.ErrMissingRejectionComment
		}
		t.To = domain.ApplicationStatusRejected
		return t, nil
	case domain.ApprovalActionApprove:
		if level == domain.ApprovalLevelDirector {
			if err := e.route(ctx, app, d, t); err != nil {
				return nil, err
			}
			return t, nil
		}
		if d.RoutingChoice != "" || len(d.SelectedManagerIDs) > 0 {
			return nil, fmt.Errorf("%w: routing is only available to the director", domain.ErrInvalidRoutingChoice)
		}
		if err := e.advanceGroup(ctx, app, level, d.ActorID, t); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidTransition, d.Action)
	}
}

// advanceGroup removes the actor from the live set of a unanimity group and
// moves to the following stage once nobody is left
func (e *Engine) advanceGroup(ctx context.Context, app *domain.Application, level, actorID string, t *domain.Transition) error {
	remaining := slices.RemoveFold(app.CurrentApproverIDs, actorID)
	if len(remaining) > 0 {
		t.To = app.Status
		t.Approvers = remaining
		return nil
	}

	switch level {
	case domain.ApprovalLevelFactory:
		approvers, err := e.resolver.Resolve(ctx, app, domain.ApprovalLevelDirector)
		if err != nil {
			return err
		}
		t.To = domain.ApplicationStatusPendingDirector
		t.Approvers = approvers
	case domain.ApprovalLevelManager, domain.ApprovalLevelCeo:
		t.To = domain.ApplicationStatusApproved
	default:
		return fmt.Errorf("%w: level %q is not a unanimity group", domain.ErrInvalidTransition, level)
	}
	return nil
}

func (e *Engine) route(ctx context.Context, app *domain.Application, d domain.Decision, t *domain.Transition) error {
	if d.RoutingChoice != domain.RoutingChoiceToManager && len(d.SelectedManagerIDs) > 0 {
		return fmt.Errorf("%w: managers can only be selected when routing to manager", domain.ErrInvalidRoutingChoice)
	}
	t.Record.RoutingChoice = d.RoutingChoice

	switch d.RoutingChoice {
	case domain.RoutingChoiceToManager:
		if app.SkipManager {
			return fmt.Errorf("%w: manager stage is skipped for application %q", domain.ErrInvalidRoutingChoice, app.ID)
		}
		managers := app.ManagerApproverIDs
		if len(d.SelectedManagerIDs) > 0 {
			managers = d.SelectedManagerIDs
		}
		managers = slices.UniqueFold(managers)
		if len(managers) == 0 {
			return fmt.Errorf("%w: no manager approvers assigned", domain.ErrInvalidRoutingChoice)
		}

		candidate := *app
		candidate.ManagerApproverIDs = managers
		approvers, err := e.resolver.Resolve(ctx, &candidate, domain.ApprovalLevelManager)
		if err != nil {
			return err
		}
		t.To = domain.ApplicationStatusPendingManager
		t.Approvers = approvers
		if len(d.SelectedManagerIDs) > 0 {
			t.ManagerApproverIDs = managers
			t.Record.SelectedManagerIDs = managers
		}
	case domain.RoutingChoiceToCeo:
		approvers, err := e.resolver.Resolve(ctx, app, domain.ApprovalLevelCeo)
		if err != nil {
			return err
		}
		t.To = domain.ApplicationStatusPendingCeo
		t.Approvers = approvers
	case domain.RoutingChoiceComplete:
		t.To = domain.ApplicationStatusApproved
	case "":
		return fmt.Errorf("%w: routing choice is required for the director's approval", domain.ErrInvalidRoutingChoice)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidRoutingChoice, d.RoutingChoice)
	}
	return nil
}

// Cancel closes an application on behalf of its submitter with a system-authored rejection
func (e *Engine) Cancel(_ context.Context, app *domain.Application, actorID string) (*domain.Transition, error) {
	if app.IsTerminal() {
		return nil, fmt.Errorf("%w: %q", domain.ErrAlreadyTerminal, app.Status)
	}
	if !app.IsSubmitter(actorID) {
		return nil, fmt.Errorf("%w: only the submitter can cancel application %q", domain.ErrActionForbidden, app.ID)
	}
	switch app.Status {
	case domain.ApplicationStatusDraft:
	case domain.ApplicationStatusPendingFactory:
		if app.HasFactoryActivity() {
			return nil, fmt.Errorf("%w: factory approval already started", domain.ErrInvalidCancelState)
		}
	default:
		return nil, fmt.Errorf("%w: current status is %q", domain.ErrInvalidCancelState, app.Status)
	}

	now := TimeNow()
	return &domain.Transition{
		ApplicationID: app.ID,
		From:          app.Status,
		To:            domain.ApplicationStatusRejected,
		Actor:         actorID,
		Record: &domain.ApprovalRecord{
			ApplicationID: app.ID,
			ApproverID:    domain.SystemActor,
			Level:         domain.ApprovalLevelFactory,
			Action:        domain.ApprovalActionReject,
			Comment:       cancellationComment,
			Details: map[string]interface{}{
				domain.RecordDetailCancelledBy: actorID,
				domain.RecordDetailReason:      "cancelled",
			},
			CreatedAt: now,
		},
		OccurredAt: now,
	}, nil
}

// Archive is the administrative move out of a closed application
func (e *Engine) Archive(app *domain.Application, actorID string) (*domain.Transition, error) {
	switch app.Status {
	case domain.ApplicationStatusApproved, domain.ApplicationStatusRejected:
	case domain.ApplicationStatusArchived:
		return nil, fmt.Errorf("%w: %q", domain.ErrAlreadyTerminal, app.Status)
	default:
		return nil, fmt.Errorf("%w: current status is %q", domain.ErrInvalidArchiveState, app.Status)
	}

	return &domain.Transition{
		ApplicationID: app.ID,
		From:          app.Status,
		To:            domain.ApplicationStatusArchived,
		Actor:         actorID,
		OccurredAt:    TimeNow(),
	}, nil
}

func checkIfApplicationStillPending(status string) error {
	switch status {
	case
		domain.ApplicationStatusPendingFactory,
		domain.ApplicationStatusPendingDirector,
		domain.ApplicationStatusPendingManager,
		domain.ApplicationStatusPendingCeo:
		return nil
	case
		domain.ApplicationStatusApproved,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusArchived:
		return fmt.Errorf("%w: %q", domain.ErrAlreadyTerminal, status)
	case domain.ApplicationStatusDraft:
		return fmt.Errorf("%w: application has not been submitted", domain.ErrUnauthorizedApprover)
	default:
		return fmt.Errorf("%w: unrecognized status %q", domain.ErrInvalidTransition, status)
	}
}
