package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/goto/salt/audit"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/pkg/diff"
	"github.com/goto/oaflow/pkg/evaluator"
	"github.com/goto/oaflow/pkg/log"
	"github.com/goto/oaflow/pkg/slices"
)

const (
	instrumentationName = "github.com/goto/oaflow/core/application"

	DefaultReadonlyCriteria = "application.amount > 100000"
)

var TimeNow = time.Now

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	Find(ctx context.Context, filter *domain.ListApplicationsFilter) ([]*domain.Application, error)
	// Commit persists the application and the optional ledger entry in one unit,
	// conditioned on the stored revision still being expectedRevision
	Commit(ctx context.Context, app *domain.Application, expectedRevision uint, record *domain.ApprovalRecord) error
	// Delete soft deletes the application if it is still at expectedRevision
	Delete(ctx context.Context, id string, expectedRevision uint) error
}

//go:generate mockery --name=ledgerService --exported --with-expecter
type ledgerService interface {
	List(ctx context.Context, applicationID string) (domain.Ledger, error)
}

//go:generate mockery --name=transitionEngine --exported --with-expecter
type transitionEngine interface {
	Submit(ctx context.Context, app *domain.Application, actorID string) (*domain.Transition, error)
	Decide(ctx context.Context, app *domain.Application, history domain.Ledger, d domain.Decision) (*domain.Transition, error)
	Cancel(ctx context.Context, app *domain.Application, actorID string) (*domain.Transition, error)
	Archive(app *domain.Application, actorID string) (*domain.Transition, error)
}

//go:generate mockery --name=roleResolver --exported --with-expecter
type roleResolver interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	ReadonlyUsers(ctx context.Context) ([]string, error)
}

//go:generate mockery --name=notifier --exported --with-expecter
type notifier interface {
	Notify(context.Context, []domain.Notification) []error
}

//go:generate mockery --name=auditLogger --exported --with-expecter
type auditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

//go:generate mockery --name=archiver --exported --with-expecter
type archiver interface {
	Put(ctx context.Context, key string, data []byte) error
}

type ServiceDeps struct {
	Repository   repository
	Ledger       ledgerService
	Engine       transitionEngine
	RoleResolver roleResolver
	Notifier     notifier
	AuditLogger  auditLogger
	Archiver     archiver

	// ReadonlyCriteria decides whether readonly users hear about an approval
	ReadonlyCriteria string

	Validator *validator.Validate
	Logger    log.Logger
}

// Service is the only write path into the approval state machine
type Service struct {
	repo         repository
	ledger       ledgerService
	engine       transitionEngine
	roleResolver roleResolver
	notifier     notifier
	auditLogger  auditLogger
	archiver     archiver

	readonlyCriteria evaluator.Expression

	validator *validator.Validate
	logger    log.Logger

	tracer    trace.Tracer
	decisions metric.Int64Counter

	pending sync.WaitGroup
}

func NewService(deps ServiceDeps) *Service {
	criteria := deps.ReadonlyCriteria
	if criteria == "" {
		criteria = DefaultReadonlyCriteria
	}
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}

	decisions, err := otel.Meter(instrumentationName).Int64Counter(
		"oaflow.application.decisions",
		metric.WithDescription("number of decide calls by level, action and outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &Service{
		repo:         deps.Repository,
		ledger:       deps.Ledger,
		engine:       deps.Engine,
		roleResolver: deps.RoleResolver,
		notifier:     deps.Notifier,
		auditLogger:  deps.AuditLogger,
		archiver:     deps.Archiver,

		readonlyCriteria: evaluator.Expression(criteria),

		validator: v,
		logger:    deps.Logger,

		tracer:    otel.Tracer(instrumentationName),
		decisions: decisions,
	}
}

// Wait blocks until detached notifications and audit writes have finished
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if id == "" {
		return nil, ErrApplicationIDEmptyParam
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Find(ctx context.Context, filter *domain.ListApplicationsFilter) ([]*domain.Application, error) {
	if filter != nil {
		if err := s.validator.Struct(filter); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilterParameter, err)
		}
	}
	return s.repo.Find(ctx, filter)
}

// Create stores a new draft owned by its submitter
func (s *Service) Create(ctx context.Context, app *domain.Application) error {
	if app == nil {
		return ErrApplicationNil
	}
	if err := normalizeDraft(app); err != nil {
		return err
	}

	now := TimeNow()
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	app.Status = domain.ApplicationStatusDraft
	app.CurrentApproverIDs = []string{}
	app.Revision = 0
	app.CreatedAt = now
	app.UpdatedAt = now
	app.SubmittedAt = nil
	app.CompletedAt = nil

	if err := s.repo.Create(ctx, app); err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	s.audit(ctx, domain.AuditKeyApplicationCreate, map[string]interface{}{
		"application_id": app.ID,
		"submitter_id":   app.SubmitterID,
	})
	return nil
}

// Update edits a draft. Only its submitter or an admin may do so.
func (s *Service) Update(ctx context.Context, id, actorID string, patch domain.ApplicationPatch) (_ *domain.Application, err error) {
	ctx, span := s.tracer.Start(ctx, "application.Update", trace.WithAttributes(attribute.String("application.id", id)))
	defer span.End()
	ctx = log.WithFields(ctx, "application_id", id, "actor", actorID)
	defer s.auditFailure(ctx, domain.AuditKeyApplicationUpdate, id, actorID, &err)

	if patch.IsEmpty() {
		return nil, s.fail(span, fmt.Errorf("%w: nothing to update", ErrInvalidApplicationParameter))
	}

	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if app.Status != domain.ApplicationStatusDraft {
		return nil, s.fail(span, fmt.Errorf("%w: application is %q", domain.ErrInvalidEditState, app.Status))
	}
	if err := s.checkOwnerOrAdmin(ctx, app, actorID); err != nil {
		return nil, s.fail(span, err)
	}
	before := *app

	patch.ApplyTo(app)
	if err := normalizeDraft(app); err != nil {
		return nil, s.fail(span, err)
	}
	app.UpdatedAt = TimeNow()

	if err := s.repo.Commit(ctx, app, before.Revision, nil); err != nil {
		return nil, s.fail(span, err)
	}

	changes, err := diff.Changelog(&before, app, "updated_at", "revision")
	if err != nil {
		s.logger.Warn(ctx, "failed to compute application changelog", "error", err)
	}
	s.audit(ctx, domain.AuditKeyApplicationUpdate, map[string]interface{}{
		"application_id": app.ID,
		"actor":          actorID,
		"changes":        changes,
	})
	return app, nil
}

// Delete soft deletes a draft or rejected application. Its ledger is kept.
func (s *Service) Delete(ctx context.Context, id, actorID string) (err error) {
	ctx, span := s.tracer.Start(ctx, "application.Delete", trace.WithAttributes(attribute.String("application.id", id)))
	defer span.End()
	ctx = log.WithFields(ctx, "application_id", id, "actor", actorID)
	defer s.auditFailure(ctx, domain.AuditKeyApplicationDelete, id, actorID, &err)

	app, err := s.GetByID(ctx, id)
	if err != nil {
		return s.fail(span, err)
	}
	if err := s.checkOwnerOrAdmin(ctx, app, actorID); err != nil {
		return s.fail(span, err)
	}
	if app.Status != domain.ApplicationStatusDraft && app.Status != domain.ApplicationStatusRejected {
		return s.fail(span, fmt.Errorf("%w: application is %q", domain.ErrInvalidDeleteState, app.Status))
	}

	if err := s.repo.Delete(ctx, app.ID, app.Revision); err != nil {
		return s.fail(span, err)
	}

	s.audit(ctx, domain.AuditKeyApplicationDelete, map[string]interface{}{
		"application_id": app.ID,
		"actor":          actorID,
		"status":         app.Status,
	})
	return nil
}

// Submit moves a draft into the factory stage
func (s *Service) Submit(ctx context.Context, id, actorID string) (_ *domain.Application, err error) {
	ctx, span := s.tracer.Start(ctx, "application.Submit", trace.WithAttributes(attribute.String("application.id", id)))
	defer span.End()
	ctx = log.WithFields(ctx, "application_id", id, "actor", actorID)
	defer s.auditFailure(ctx, domain.AuditKeyApplicationSubmit, id, actorID, &err)

	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(span, err)
	}
	before := *app

	t, err := s.engine.Submit(ctx, app, actorID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if err := s.commit(ctx, app, t); err != nil {
		return nil, s.fail(span, err)
	}

	s.afterCommit(ctx, &before, app, t)
	s.audit(ctx, domain.AuditKeyApplicationSubmit, map[string]interface{}{
		"application_id": app.ID,
		"actor":          actorID,
		"approvers":      t.Approvers,
	})
	return app, nil
}

// Decide records an approver's decision and advances the application accordingly
func (s *Service) Decide(ctx context.Context, d domain.Decision) (_ *domain.Application, err error) {
	ctx, span := s.tracer.Start(ctx, "application.Decide", trace.WithAttributes(
		attribute.String("application.id", d.ApplicationID),
		attribute.String("decision.action", d.Action),
	))
	defer span.End()
	ctx = log.WithFields(ctx, "application_id", d.ApplicationID, "actor", d.ActorID)
	defer s.auditFailure(ctx, domain.AuditKeyApplicationDecide, d.ApplicationID, d.ActorID, &err)

	if err := s.validator.Struct(d); err != nil {
		return nil, s.fail(span, fmt.Errorf("%w: %v", ErrInvalidDecisionParameter, err))
	}

	app, err := s.GetByID(ctx, d.ApplicationID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	level, _ := app.CurrentLevel()
	before := *app

	history, err := s.ledger.List(ctx, app.ID)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("loading ledger: %w", err))
	}

	t, err := s.engine.Decide(ctx, app, history, d)
	if err != nil {
		s.countDecision(ctx, level, d.Action, err)
		return nil, s.fail(span, err)
	}
	if err := s.commit(ctx, app, t); err != nil {
		s.countDecision(ctx, level, d.Action, err)
		return nil, s.fail(span, err)
	}
	s.countDecision(ctx, level, d.Action, nil)

	s.afterCommit(ctx, &before, app, t)

	changes, err := diff.Changelog(&before, app, "updated_at")
	if err != nil {
		s.logger.Warn(ctx, "failed to compute application changelog", "error", err)
	}
	s.audit(ctx, domain.AuditKeyApplicationDecide, map[string]interface{}{
		"application_id": app.ID,
		"actor":          d.ActorID,
		"level":          level,
		"action":         d.Action,
		"routing_choice": d.RoutingChoice,
		"comment":        d.Comment,
		"changes":        changes,
	})
	return app, nil
}

// Cancel withdraws an application on behalf of its submitter
func (s *Service) Cancel(ctx context.Context, id, actorID string) (_ *domain.Application, err error) {
	ctx, span := s.tracer.Start(ctx, "application.Cancel", trace.WithAttributes(attribute.String("application.id", id)))
	defer span.End()
	ctx = log.WithFields(ctx, "application_id", id, "actor", actorID)
	defer s.auditFailure(ctx, domain.AuditKeyApplicationCancel, id, actorID, &err)

	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(span, err)
	}
	before := *app

	t, err := s.engine.Cancel(ctx, app, actorID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if err := s.commit(ctx, app, t); err != nil {
		return nil, s.fail(span, err)
	}

	s.afterCommit(ctx, &before, app, t)
	s.audit(ctx, domain.AuditKeyApplicationCancel, map[string]interface{}{
		"application_id": app.ID,
		"actor":          actorID,
		"previous":       before.Status,
	})
	return app, nil
}

// Archive stores a snapshot of a closed application and marks it archived
func (s *Service) Archive(ctx context.Context, id, actorID string) (_ *domain.Application, err error) {
	ctx, span := s.tracer.Start(ctx, "application.Archive", trace.WithAttributes(attribute.String("application.id", id)))
	defer span.End()
	ctx = log.WithFields(ctx, "application_id", id, "actor", actorID)
	defer s.auditFailure(ctx, domain.AuditKeyApplicationArchive, id, actorID, &err)

	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(span, err)
	}

	isAdmin, err := s.roleResolver.IsAdmin(ctx, actorID)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("checking admin role: %w", err))
	}
	if !isAdmin {
		return nil, s.fail(span, fmt.Errorf("%w: only admins can archive applications", domain.ErrActionForbidden))
	}

	t, err := s.engine.Archive(app, actorID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	history, err := s.ledger.List(ctx, app.ID)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("loading ledger: %w", err))
	}

	expectedRevision := app.Revision
	if err := app.Apply(t); err != nil {
		return nil, s.fail(span, err)
	}

	key := ""
	if s.archiver != nil {
		key = ArchiveKey(app)
		data, err := json.Marshal(Snapshot{Application: app, Ledger: history})
		if err != nil {
			return nil, s.fail(span, fmt.Errorf("encoding archive snapshot: %w", err))
		}
		if err := s.archiver.Put(ctx, key, data); err != nil {
			return nil, s.fail(span, fmt.Errorf("%w: %v", ErrArchiveStorage, err))
		}
	}

	if err := s.repo.Commit(ctx, app, expectedRevision, nil); err != nil {
		return nil, s.fail(span, err)
	}

	s.audit(ctx, domain.AuditKeyApplicationArchive, map[string]interface{}{
		"application_id": app.ID,
		"actor":          actorID,
		"snapshot":       key,
	})
	return app, nil
}

// Snapshot is the archived representation of a closed application
type Snapshot struct {
	Application *domain.Application `json:"application"`
	Ledger      domain.Ledger       `json:"approvals"`
}

func ArchiveKey(app *domain.Application) string {
	at := app.UpdatedAt
	if app.ArchivedAt != nil {
		at = *app.ArchivedAt
	}
	return fmt.Sprintf("%s/%s.json", at.Format("20060102"), app.ID)
}

// normalizeDraft validates the editable fields and trims identifiers the way they are matched later
func normalizeDraft(app *domain.Application) error {
	app.SubmitterID = strings.TrimSpace(app.SubmitterID)
	app.Title = strings.TrimSpace(app.Title)
	if app.SubmitterID == "" {
		return fmt.Errorf("%w: submitter is required", ErrInvalidApplicationParameter)
	}
	if app.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidApplicationParameter)
	}
	if app.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidApplicationParameter)
	}
	app.FactoryApproverIDs = slices.UniqueFold(app.FactoryApproverIDs)
	app.ManagerApproverIDs = slices.UniqueFold(app.ManagerApproverIDs)
	return nil
}

func (s *Service) checkOwnerOrAdmin(ctx context.Context, app *domain.Application, actorID string) error {
	if app.IsSubmitter(actorID) {
		return nil
	}
	isAdmin, err := s.roleResolver.IsAdmin(ctx, actorID)
	if err != nil {
		return fmt.Errorf("checking admin role: %w", err)
	}
	if !isAdmin {
		return fmt.Errorf("%w: only the submitter or an admin can change this application", domain.ErrActionForbidden)
	}
	return nil
}

func (s *Service) commit(ctx context.Context, app *domain.Application, t *domain.Transition) error {
	expectedRevision := app.Revision
	if err := app.Apply(t); err != nil {
		return err
	}
	if err := s.repo.Commit(ctx, app, expectedRevision, t.Record); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Info(ctx, "application commit conflicted", "revision", expectedRevision, "error", err)
		}
		return err
	}
	return nil
}

// afterCommit emits stage change notifications. Delivery runs detached and never affects the committed state.
func (s *Service) afterCommit(ctx context.Context, before, app *domain.Application, t *domain.Transition) {
	if !t.IsStageChange() {
		return
	}

	event := domain.ApplicationStageChanged{
		ApplicationID: app.ID,
		PreviousStage: t.From,
		NewStage:      t.To,
		NewApprovers:  t.Approvers,
		OccurredAt:    t.OccurredAt,
	}
	s.logger.Info(ctx, "application stage changed",
		"from", event.PreviousStage,
		"to", event.NewStage,
		"approvers", strings.Join(event.NewApprovers, ","),
	)

	snapshot := *app
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx := context.WithoutCancel(ctx)
		notifications := s.stageChangedNotifications(ctx, before, &snapshot, t, event)
		if len(notifications) == 0 {
			return
		}
		if errs := s.notifier.Notify(ctx, notifications); errs != nil {
			for _, err1 := range errs {
				s.logger.Error(ctx, "failed to send notifications", "error", err1.Error())
			}
		}
	}()
}

func (s *Service) stageChangedNotifications(ctx context.Context, before, app *domain.Application, t *domain.Transition, event domain.ApplicationStageChanged) []domain.Notification {
	variables := map[string]interface{}{
		"application_id": app.ID,
		"title":          app.Title,
		"submitter":      app.SubmitterID,
		"amount":         app.Amount,
		"department":     app.Department,
		"stage":          event.NewStage,
		"previous_stage": event.PreviousStage,
	}
	labels := map[string]string{
		"application_id": app.ID,
	}

	var notifications []domain.Notification
	switch {
	case domain.IsPendingStatus(event.NewStage):
		for _, approver := range event.NewApprovers {
			notifications = append(notifications, domain.Notification{
				User:   approver,
				Labels: labels,
				Message: domain.NotificationMessage{
					Type:      domain.NotificationTypeApproverNotification,
					Variables: withActor(variables, approver),
				},
			})
		}
	case event.NewStage == domain.ApplicationStatusApproved:
		notifications = append(notifications, domain.Notification{
			User:   app.SubmitterID,
			Labels: labels,
			Message: domain.NotificationMessage{
				Type:      domain.NotificationTypeApplicationApproved,
				Variables: variables,
			},
		})
		notifications = append(notifications, s.readonlyNotifications(ctx, app, labels, variables)...)
	case event.NewStage == domain.ApplicationStatusRejected:
		if t.Record != nil && t.Record.IsSystem() {
			for _, approver := range before.CurrentApproverIDs {
				notifications = append(notifications, domain.Notification{
					User:   approver,
					Labels: labels,
					Message: domain.NotificationMessage{
						Type:      domain.NotificationTypeApplicationCancelled,
						Variables: withActor(variables, approver),
					},
				})
			}
			return notifications
		}
		notifications = append(notifications, domain.Notification{
			User:   app.SubmitterID,
			Labels: labels,
			Message: domain.NotificationMessage{
				Type:      domain.NotificationTypeApplicationRejected,
				Variables: variables,
			},
		})
	}
	return notifications
}

func (s *Service) readonlyNotifications(ctx context.Context, app *domain.Application, labels map[string]string, variables map[string]interface{}) []domain.Notification {
	result, err := s.readonlyCriteria.EvaluateWithStruct("application", app)
	if err != nil {
		s.logger.Error(ctx, "failed to evaluate readonly criteria", "error", err)
		return nil
	}
	if matched, ok := result.(bool); !ok || !matched {
		return nil
	}

	users, err := s.roleResolver.ReadonlyUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to resolve readonly users", "error", err)
		return nil
	}

	notifications := make([]domain.Notification, 0, len(users))
	for _, u := range users {
		if app.IsSubmitter(u) {
			continue
		}
		notifications = append(notifications, domain.Notification{
			User:   u,
			Labels: labels,
			Message: domain.NotificationMessage{
				Type:      domain.NotificationTypeApplicationApprovedReadonly,
				Variables: withActor(variables, u),
			},
		})
	}
	return notifications
}

func (s *Service) audit(ctx context.Context, action string, data map[string]interface{}) {
	if s.auditLogger == nil {
		return
	}
	actor, _ := data["actor"].(string)
	if actor == "" {
		actor, _ = data["submitter_id"].(string)
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx := audit.WithActor(context.WithoutCancel(ctx), actor)
		if err := s.auditLogger.Log(ctx, action, data); err != nil {
			s.logger.Error(ctx, "failed to record audit log", "action", action, "error", err)
		}
	}()
}

// auditFailure records a rejected operation once it has returned. errp points at the operation's error result.
func (s *Service) auditFailure(ctx context.Context, action, applicationID, actorID string, errp *error) {
	err := *errp
	if err == nil {
		return
	}
	data := map[string]interface{}{
		"application_id": applicationID,
		"actor":          actorID,
		"outcome":        "failed",
		"error":          err.Error(),
	}
	if kind := domain.ErrorKind(err); kind != nil {
		data["error_kind"] = kind.Error()
	}
	s.audit(ctx, action, data)
}

func (s *Service) countDecision(ctx context.Context, level, action string, err error) {
	if s.decisions == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
		if kind := domain.ErrorKind(err); kind != nil {
			outcome = kind.Error()
		}
	}
	s.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("level", level),
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func withActor(variables map[string]interface{}, actor string) map[string]interface{} {
	result := make(map[string]interface{}, len(variables)+1)
	for k, v := range variables {
		result[k] = v
	}
	result["actor"] = actor
	return result
}
