package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goto/oaflow/core/application"
	"github.com/goto/oaflow/core/application/mocks"
	"github.com/goto/oaflow/core/transition"
	transitionmocks "github.com/goto/oaflow/core/transition/mocks"
	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/pkg/log"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var ctxMatcher = mock.MatchedBy(func(ctx context.Context) bool { return true })

// memoryStore backs the repository and ledger mocks with an in-memory table
// that enforces the same revision guard as the database
type memoryStore struct {
	mu      sync.Mutex
	apps    map[string]domain.Application
	records domain.Ledger
}

func (m *memoryStore) get(id string) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound
	}
	app.CurrentApproverIDs = append([]string{}, app.CurrentApproverIDs...)
	return &app, nil
}

func (m *memoryStore) commit(app *domain.Application, expectedRevision uint, record *domain.ApprovalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.apps[app.ID]
	if !ok {
		return application.ErrApplicationNotFound
	}
	if stored.Revision != expectedRevision {
		return domain.ErrStaleApprovalState
	}
	if record != nil && !record.IsSystem() && m.records.HasDecision(record.ApproverID, record.Level) {
		return domain.ErrDuplicateDecision
	}
	app.Revision = expectedRevision + 1
	m.apps[app.ID] = *app
	if record != nil {
		m.records = append(m.records, record)
	}
	return nil
}

func (m *memoryStore) delete(id string, expectedRevision uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.apps[id]
	if !ok {
		return application.ErrApplicationNotFound
	}
	if stored.Revision != expectedRevision {
		return domain.ErrStaleApprovalState
	}
	delete(m.apps, id)
	return nil
}

func (m *memoryStore) ledger(id string) domain.Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result domain.Ledger
	for _, r := range m.records {
		if r.ApplicationID == id {
			result = append(result, r)
		}
	}
	return result
}

type ServiceTestSuite struct {
	suite.Suite
	mockRepository   *mocks.Repository
	mockLedger       *mocks.LedgerService
	mockRoleResolver *mocks.RoleResolver
	mockNotifier     *mocks.Notifier
	mockAuditLogger  *mocks.AuditLogger
	mockArchiver     *mocks.Archiver
	mockResolver     *transitionmocks.ApproverResolver
	service          *application.Service

	store         *memoryStore
	notifications chan []domain.Notification
	now           time.Time
}

func (s *ServiceTestSuite) SetupTest() {
	s.mockRepository = &mocks.Repository{}
	s.mockLedger = &mocks.LedgerService{}
	s.mockRoleResolver = &mocks.RoleResolver{}
	s.mockNotifier = &mocks.Notifier{}
	s.mockAuditLogger = &mocks.AuditLogger{}
	s.mockArchiver = &mocks.Archiver{}
	s.mockResolver = &transitionmocks.ApproverResolver{}

	s.service = application.NewService(application.ServiceDeps{
		Repository:   s.mockRepository,
		Ledger:       s.mockLedger,
		Engine:       transition.NewEngine(s.mockResolver),
		RoleResolver: s.mockRoleResolver,
		Notifier:     s.mockNotifier,
		AuditLogger:  s.mockAuditLogger,
		Archiver:     s.mockArchiver,
		Logger:       log.NewNoop(),
	})

	s.now = time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	application.TimeNow = func() time.Time { return s.now }
	transition.TimeNow = func() time.Time { return s.now }

	s.store = &memoryStore{apps: map[string]domain.Application{}}
	s.notifications = make(chan []domain.Notification, 32)

	s.mockRepository.EXPECT().GetByID(ctxMatcher, mock.AnythingOfType("string")).
		RunAndReturn(func(_ context.Context, id string) (*domain.Application, error) {
			return s.store.get(id)
		}).Maybe()
	s.mockRepository.EXPECT().Commit(ctxMatcher, mock.Anything, mock.AnythingOfType("uint"), mock.Anything).
		RunAndReturn(func(_ context.Context, app *domain.Application, rev uint, record *domain.ApprovalRecord) error {
			return s.store.commit(app, rev, record)
		}).Maybe()
	s.mockRepository.EXPECT().Delete(ctxMatcher, mock.AnythingOfType("string"), mock.AnythingOfType("uint")).
		RunAndReturn(func(_ context.Context, id string, rev uint) error {
			return s.store.delete(id, rev)
		}).Maybe()
	s.mockLedger.EXPECT().List(ctxMatcher, mock.AnythingOfType("string")).
		RunAndReturn(func(_ context.Context, id string) (domain.Ledger, error) {
			return s.store.ledger(id), nil
		}).Maybe()
	s.mockNotifier.EXPECT().Notify(ctxMatcher, mock.Anything).
		RunAndReturn(func(_ context.Context, n []domain.Notification) []error {
			s.notifications <- n
			return nil
		}).Maybe()
	s.mockAuditLogger.EXPECT().Log(ctxMatcher, mock.Anything, mock.Anything).Return(nil).Maybe()
	s.mockRoleResolver.EXPECT().ReadonlyUsers(ctxMatcher).Return([]string{"auditor"}, nil).Maybe()

	s.mockResolver.EXPECT().
		Resolve(ctxMatcher, mock.AnythingOfType("*domain.Application"), mock.AnythingOfType("string")).
		RunAndReturn(func(_ context.Context, app *domain.Application, level string) ([]string, error) {
			switch level {
			case domain.ApprovalLevelFactory:
				return app.FactoryApproverIDs, nil
			case domain.ApprovalLevelManager:
				return app.ManagerApproverIDs, nil
			case domain.ApprovalLevelDirector:
				return []string{"D"}, nil
			case domain.ApprovalLevelCeo:
				return []string{"CEO"}, nil
			}
			return nil, domain.ErrNoEligibleApprover
		}).Maybe()
}

func (s *ServiceTestSuite) TearDownTest() {
	application.TimeNow = time.Now
	transition.TimeNow = time.Now
}

func TestService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) seed(app domain.Application) {
	s.store.apps[app.ID] = app
}

func (s *ServiceTestSuite) submittedApp(amount float64) string {
	s.seed(domain.Application{
		ID:                 "app-1",
		Title:              "new conveyor belt",
		Status:             domain.ApplicationStatusDraft,
		SubmitterID:        "S",
		Amount:             amount,
		FactoryApproverIDs: []string{"F1", "F2"},
		ManagerApproverIDs: []string{"M1"},
	})
	_, err := s.service.Submit(context.Background(), "app-1", "S")
	s.Require().NoError(err)
	s.nextNotifications()
	return "app-1"
}

func (s *ServiceTestSuite) nextNotifications() []domain.Notification {
	select {
	case n := <-s.notifications:
		return n
	case <-time.After(time.Second):
		s.FailNow("timed out waiting for notifications")
		return nil
	}
}

// collectNotifications drains the given number of deliveries, which may arrive in any order
func (s *ServiceTestSuite) collectNotifications(batches int) []string {
	var result []string
	for i := 0; i < batches; i++ {
		for _, n := range s.nextNotifications() {
			result = append(result, n.Message.Type+":"+n.User)
		}
	}
	return result
}

// failedAudits returns the data of failure entries written for action, once pending writes finished
func (s *ServiceTestSuite) failedAudits(action string) []map[string]interface{} {
	s.service.Wait()
	var result []map[string]interface{}
	for _, c := range s.mockAuditLogger.Calls {
		if c.Method != "Log" || c.Arguments.String(1) != action {
			continue
		}
		data, ok := c.Arguments.Get(2).(map[string]interface{})
		if ok && data["outcome"] == "failed" {
			result = append(result, data)
		}
	}
	return result
}

func types(notifications []domain.Notification) map[string][]string {
	result := map[string][]string{}
	for _, n := range notifications {
		result[n.Message.Type] = append(result[n.Message.Type], n.User)
	}
	return result
}

func (s *ServiceTestSuite) TestCreate() {
	s.Run("should store a draft with normalized approvers", func() {
		s.SetupTest()
		var created *domain.Application
		s.mockRepository.EXPECT().Create(ctxMatcher, mock.AnythingOfType("*domain.Application")).
			RunAndReturn(func(_ context.Context, app *domain.Application) error {
				created = app
				return nil
			}).Once()

		app := &domain.Application{
			Title:              "laptop",
			SubmitterID:        "S",
			Status:             domain.ApplicationStatusApproved,
			FactoryApproverIDs: []string{"F1", "f1", "", "F2"},
		}
		err := s.service.Create(context.Background(), app)

		s.NoError(err)
		s.Require().NotNil(created)
		s.NotEmpty(created.ID)
		s.Equal(domain.ApplicationStatusDraft, created.Status)
		s.Equal([]string{"F1", "F2"}, created.FactoryApproverIDs)
		s.Empty(created.CurrentApproverIDs)
		s.Equal(s.now, created.CreatedAt)
	})

	s.Run("should trim approver ids so they can act later", func() {
		s.SetupTest()
		s.mockRepository.EXPECT().Create(ctxMatcher, mock.AnythingOfType("*domain.Application")).
			RunAndReturn(func(_ context.Context, app *domain.Application) error {
				s.seed(*app)
				return nil
			}).Once()

		app := &domain.Application{
			Title:              " laptop ",
			SubmitterID:        " S",
			FactoryApproverIDs: []string{" F1", "f1 "},
		}
		s.Require().NoError(s.service.Create(context.Background(), app))
		s.Equal([]string{"F1"}, app.FactoryApproverIDs)
		s.Equal("laptop", app.Title)

		_, err := s.service.Submit(context.Background(), app.ID, "S")
		s.Require().NoError(err)
		s.nextNotifications()

		decided, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: app.ID, ActorID: "F1", Action: domain.ApprovalActionApprove})

		s.NoError(err)
		s.Equal(domain.ApplicationStatusPendingDirector, decided.Status)
	})

	s.Run("should return error on invalid parameters", func() {
		s.SetupTest()
		testCases := []struct {
			name string
			app  *domain.Application
		}{
			{"nil application", nil},
			{"missing submitter", &domain.Application{Title: "x"}},
			{"missing title", &domain.Application{SubmitterID: "S"}},
			{"negative amount", &domain.Application{Title: "x", SubmitterID: "S", Amount: -1}},
		}
		for _, tc := range testCases {
			err := s.service.Create(context.Background(), tc.app)
			s.Error(err, tc.name)
		}
		s.mockRepository.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	})
}

func (s *ServiceTestSuite) TestSubmit() {
	s.Run("should notify factory approvers", func() {
		s.SetupTest()
		s.seed(domain.Application{
			ID:                 "app-1",
			Status:             domain.ApplicationStatusDraft,
			SubmitterID:        "S",
			FactoryApproverIDs: []string{"F1", "F2"},
		})

		app, err := s.service.Submit(context.Background(), "app-1", "S")

		s.NoError(err)
		s.Equal(domain.ApplicationStatusPendingFactory, app.Status)
		s.Equal(uint(1), app.Revision)
		s.Equal(map[string][]string{
			domain.NotificationTypeApproverNotification: {"F1", "F2"},
		}, types(s.nextNotifications()))
	})

	s.Run("should return error when application does not exist", func() {
		s.SetupTest()
		_, err := s.service.Submit(context.Background(), "missing", "S")
		s.ErrorIs(err, application.ErrApplicationNotFound)
	})

	s.Run("should return error when id is empty", func() {
		s.SetupTest()
		_, err := s.service.Submit(context.Background(), "", "S")
		s.ErrorIs(err, application.ErrApplicationIDEmptyParam)
	})

	s.Run("should audit a second submit that is refused", func() {
		s.SetupTest()
		id := s.submittedApp(10)

		_, err := s.service.Submit(context.Background(), id, "S")

		s.ErrorIs(err, domain.ErrInvalidSubmissionState)
		failures := s.failedAudits(domain.AuditKeyApplicationSubmit)
		s.Require().Len(failures, 1)
		s.Equal(id, failures[0]["application_id"])
		s.Equal("S", failures[0]["actor"])
		s.Equal(domain.ErrValidation.Error(), failures[0]["error_kind"])
	})
}

func (s *ServiceTestSuite) TestUpdate() {
	title := "two laptops"
	amount := 2400.0

	s.Run("should edit a draft and audit the changes", func() {
		s.SetupTest()
		s.seed(domain.Application{
			ID:                 "app-1",
			Title:              "laptop",
			Status:             domain.ApplicationStatusDraft,
			SubmitterID:        "S",
			Amount:             1200,
			FactoryApproverIDs: []string{"F1"},
		})

		app, err := s.service.Update(context.Background(), "app-1", "S", domain.ApplicationPatch{
			Title:              &title,
			Amount:             &amount,
			FactoryApproverIDs: []string{"F1", " f1", "F2 "},
		})

		s.NoError(err)
		s.Equal(title, app.Title)
		s.Equal(amount, app.Amount)
		s.Equal([]string{"F1", "F2"}, app.FactoryApproverIDs)
		s.Equal(uint(1), app.Revision)
		s.Empty(s.store.ledger("app-1"))

		s.service.Wait()
		s.mockAuditLogger.AssertCalled(s.T(), "Log", ctxMatcher, domain.AuditKeyApplicationUpdate, mock.MatchedBy(func(data map[string]interface{}) bool {
			return data["actor"] == "S" && data["changes"] != nil
		}))
	})

	s.Run("should let an admin edit someone else's draft", func() {
		s.SetupTest()
		s.seed(domain.Application{ID: "app-1", Title: "laptop", Status: domain.ApplicationStatusDraft, SubmitterID: "S"})
		s.mockRoleResolver.EXPECT().IsAdmin(ctxMatcher, "admin").Return(true, nil).Once()

		app, err := s.service.Update(context.Background(), "app-1", "admin", domain.ApplicationPatch{Title: &title})

		s.NoError(err)
		s.Equal(title, app.Title)
	})

	s.Run("should refuse anyone but the submitter or an admin", func() {
		s.SetupTest()
		s.seed(domain.Application{ID: "app-1", Title: "laptop", Status: domain.ApplicationStatusDraft, SubmitterID: "S"})
		s.mockRoleResolver.EXPECT().IsAdmin(ctxMatcher, "F1").Return(false, nil).Once()

		_, err := s.service.Update(context.Background(), "app-1", "F1", domain.ApplicationPatch{Title: &title})

		s.ErrorIs(err, domain.ErrActionForbidden)
		stored, _ := s.store.get("app-1")
		s.Equal("laptop", stored.Title)
		s.Len(s.failedAudits(domain.AuditKeyApplicationUpdate), 1)
	})

	s.Run("should refuse submitted applications", func() {
		s.SetupTest()
		id := s.submittedApp(10)

		_, err := s.service.Update(context.Background(), id, "S", domain.ApplicationPatch{Amount: &amount})

		s.ErrorIs(err, domain.ErrInvalidEditState)
		stored, _ := s.store.get(id)
		s.Equal(float64(10), stored.Amount)
	})

	s.Run("should validate the edited draft like a new one", func() {
		s.SetupTest()
		s.seed(domain.Application{ID: "app-1", Title: "laptop", Status: domain.ApplicationStatusDraft, SubmitterID: "S"})
		blank := "  "
		negative := -5.0

		for _, patch := range []domain.ApplicationPatch{{Title: &blank}, {Amount: &negative}, {}} {
			_, err := s.service.Update(context.Background(), "app-1", "S", patch)
			s.ErrorIs(err, application.ErrInvalidApplicationParameter)
		}
		stored, _ := s.store.get("app-1")
		s.Equal(uint(0), stored.Revision)
	})
}

func (s *ServiceTestSuite) TestDelete() {
	s.Run("should delete a draft owned by the actor", func() {
		s.SetupTest()
		s.seed(domain.Application{ID: "app-1", Title: "laptop", Status: domain.ApplicationStatusDraft, SubmitterID: "S"})

		err := s.service.Delete(context.Background(), "app-1", "s")

		s.NoError(err)
		_, err = s.service.GetByID(context.Background(), "app-1")
		s.ErrorIs(err, application.ErrApplicationNotFound)
		s.service.Wait()
		s.mockAuditLogger.AssertCalled(s.T(), "Log", ctxMatcher, domain.AuditKeyApplicationDelete, mock.Anything)
	})

	s.Run("should let an admin delete a rejected application", func() {
		s.SetupTest()
		id := s.submittedApp(10)
		_, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: "F1", Action: domain.ApprovalActionReject, Comment: "no"})
		s.Require().NoError(err)
		s.mockRoleResolver.EXPECT().IsAdmin(ctxMatcher, "admin").Return(true, nil).Once()

		err = s.service.Delete(context.Background(), id, "admin")

		s.NoError(err)
		s.Len(s.store.ledger(id), 1)
	})

	s.Run("should refuse pending and approved applications", func() {
		s.SetupTest()
		id := s.submittedApp(10)

		err := s.service.Delete(context.Background(), id, "S")

		s.ErrorIs(err, domain.ErrInvalidDeleteState)
		_, err = s.store.get(id)
		s.NoError(err)
	})

	s.Run("should refuse anyone but the submitter or an admin", func() {
		s.SetupTest()
		s.seed(domain.Application{ID: "app-1", Title: "laptop", Status: domain.ApplicationStatusDraft, SubmitterID: "S"})
		s.mockRoleResolver.EXPECT().IsAdmin(ctxMatcher, "intruder").Return(false, nil).Once()

		err := s.service.Delete(context.Background(), "app-1", "intruder")

		s.ErrorIs(err, domain.ErrActionForbidden)
		s.mockRepository.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func (s *ServiceTestSuite) TestDecide() {
	s.Run("should reject invalid decision parameters before loading anything", func() {
		s.SetupTest()
		_, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: "app-1", ActorID: "F1", Action: "maybe"})
		s.ErrorIs(err, application.ErrInvalidDecisionParameter)
		s.mockRepository.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
	})

	s.Run("should refuse a decision on an application that was never submitted", func() {
		s.SetupTest()
		s.seed(domain.Application{
			ID:                 "app-1",
			Status:             domain.ApplicationStatusDraft,
			SubmitterID:        "S",
			FactoryApproverIDs: []string{"F1", "F2"},
		})

		_, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: "app-1", ActorID: "F1", Action: domain.ApprovalActionApprove})

		s.ErrorIs(err, domain.ErrUnauthorizedApprover)
		s.ErrorIs(err, domain.ErrAuthorization)
		stored, _ := s.store.get("app-1")
		s.Equal(domain.ApplicationStatusDraft, stored.Status)
		s.Empty(s.store.ledger("app-1"))
	})

	s.Run("should audit a decision by someone outside the approver set", func() {
		s.SetupTest()
		id := s.submittedApp(10)

		_, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: "intruder", Action: domain.ApprovalActionApprove})

		s.ErrorIs(err, domain.ErrUnauthorizedApprover)
		failures := s.failedAudits(domain.AuditKeyApplicationDecide)
		s.Require().Len(failures, 1)
		s.Equal(id, failures[0]["application_id"])
		s.Equal("intruder", failures[0]["actor"])
		s.Equal(domain.ErrAuthorization.Error(), failures[0]["error_kind"])
		s.Equal(err.Error(), failures[0]["error"])
	})

	s.Run("should keep the stage and stay silent on a partial group approval", func() {
		s.SetupTest()
		id := s.submittedApp(10)

		app, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: "F1", Action: domain.ApprovalActionApprove})

		s.NoError(err)
		s.Equal(domain.ApplicationStatusPendingFactory, app.Status)
		s.Equal([]string{"F2"}, app.CurrentApproverIDs)
		s.Len(s.store.ledger(id), 1)
		s.Empty(s.notifications)
	})

	s.Run("should walk the manager route and notify readonly users above the threshold", func() {
		s.SetupTest()
		id := s.submittedApp(250000)
		decisions := []domain.Decision{
			{ActorID: "F1", Action: domain.ApprovalActionApprove},
			{ActorID: "F2", Action: domain.ApprovalActionApprove},
			{ActorID: "D", Action: domain.ApprovalActionApprove, RoutingChoice: domain.RoutingChoiceToManager},
			{ActorID: "M1", Action: domain.ApprovalActionApprove},
		}
		var app *domain.Application
		for _, d := range decisions {
			d.ApplicationID = id
			var err error
			app, err = s.service.Decide(context.Background(), d)
			s.Require().NoError(err, d.ActorID)
		}

		s.Equal(domain.ApplicationStatusApproved, app.Status)
		s.Empty(app.CurrentApproverIDs)
		s.Equal(uint(5), app.Revision)

		ledger := s.store.ledger(id)
		s.Require().Len(ledger, 4)
		for i, actor := range []string{"F1", "F2", "D", "M1"} {
			s.Equal(actor, ledger[i].ApproverID)
		}
		s.Equal(domain.RoutingChoiceToManager, ledger[2].RoutingChoice)

		s.ElementsMatch([]string{
			domain.NotificationTypeApproverNotification + ":D",
			domain.NotificationTypeApproverNotification + ":M1",
			domain.NotificationTypeApplicationApproved + ":S",
			domain.NotificationTypeApplicationApprovedReadonly + ":auditor",
		}, s.collectNotifications(3))
	})

	s.Run("should only notify the submitter below the readonly threshold", func() {
		s.SetupTest()
		id := s.submittedApp(500)
		for _, d := range []domain.Decision{
			{ActorID: "F1", Action: domain.ApprovalActionApprove},
			{ActorID: "F2", Action: domain.ApprovalActionApprove},
			{ActorID: "D", Action: domain.ApprovalActionApprove, RoutingChoice: domain.RoutingChoiceComplete},
		} {
			d.ApplicationID = id
			_, err := s.service.Decide(context.Background(), d)
			s.Require().NoError(err)
		}

		s.ElementsMatch([]string{
			domain.NotificationTypeApproverNotification + ":D",
			domain.NotificationTypeApplicationApproved + ":S",
		}, s.collectNotifications(2))
	})

	s.Run("should close the application on the first rejection", func() {
		s.SetupTest()
		id := s.submittedApp(10)

		app, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: "F2", Action: domain.ApprovalActionReject, Comment: "over budget"})

		s.NoError(err)
		s.Equal(domain.ApplicationStatusRejected, app.Status)
		s.Equal(map[string][]string{domain.NotificationTypeApplicationRejected: {"S"}}, types(s.nextNotifications()))

		_, err = s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: "F1", Action: domain.ApprovalActionApprove})
		s.ErrorIs(err, domain.ErrAlreadyTerminal)
		s.Len(s.store.ledger(id), 1)
	})

	s.Run("should reject a repeated decision", func() {
		s.SetupTest()
		id := s.submittedApp(10)
		_, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: "F1", Action: domain.ApprovalActionApprove})
		s.Require().NoError(err)

		_, err = s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: "F1", Action: domain.ApprovalActionApprove})

		s.ErrorIs(err, domain.ErrDuplicateDecision)
		s.ErrorIs(err, domain.ErrConflict)
		s.Len(s.store.ledger(id), 1)
	})

	s.Run("should surface a stale commit as a retryable conflict", func() {
		s.SetupTest()
		id := s.submittedApp(10)
		s.mockRepository.ExpectedCalls = nil
		s.mockRepository.EXPECT().GetByID(ctxMatcher, id).
			RunAndReturn(func(_ context.Context, id string) (*domain.Application, error) {
				return s.store.get(id)
			}).Once()
		s.mockRepository.EXPECT().Commit(ctxMatcher, mock.Anything, uint(1), mock.Anything).
			Return(domain.ErrStaleApprovalState).Once()

		_, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: "F1", Action: domain.ApprovalActionApprove})

		s.ErrorIs(err, domain.ErrStaleApprovalState)
		s.True(domain.IsRetryable(err))
		s.Empty(s.store.ledger(id))
	})

	s.Run("should let exactly one of two concurrent last approvals win", func() {
		s.SetupTest()
		id := s.submittedApp(10)

		var reads sync.WaitGroup
		reads.Add(2)
		s.mockRepository.ExpectedCalls = nil
		s.mockRepository.EXPECT().GetByID(ctxMatcher, id).
			RunAndReturn(func(_ context.Context, id string) (*domain.Application, error) {
				app, err := s.store.get(id)
				reads.Done()
				reads.Wait()
				return app, err
			}).Twice()
		s.mockRepository.EXPECT().Commit(ctxMatcher, mock.Anything, mock.AnythingOfType("uint"), mock.Anything).
			RunAndReturn(func(_ context.Context, app *domain.Application, rev uint, record *domain.ApprovalRecord) error {
				return s.store.commit(app, rev, record)
			}).Twice()

		errs := make(chan error, 2)
		for _, actor := range []string{"F1", "F2"} {
			go func(actor string) {
				_, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: actor, Action: domain.ApprovalActionApprove})
				errs <- err
			}(actor)
		}

		var succeeded, stale int
		for i := 0; i < 2; i++ {
			err := <-errs
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrStaleApprovalState):
				stale++
			default:
				s.Fail("unexpected error", err)
			}
		}
		s.Equal(1, succeeded)
		s.Equal(1, stale)

		stored, err := s.store.get(id)
		s.Require().NoError(err)
		s.Equal(domain.ApplicationStatusPendingFactory, stored.Status)
		s.Len(stored.CurrentApproverIDs, 1)
		s.Len(s.store.ledger(id), 1)
	})
}

func (s *ServiceTestSuite) TestCancel() {
	s.Run("should close an untouched application and tell the factory approvers", func() {
		s.SetupTest()
		id := s.submittedApp(10)

		app, err := s.service.Cancel(context.Background(), id, "S")

		s.NoError(err)
		s.Equal(domain.ApplicationStatusRejected, app.Status)
		ledger := s.store.ledger(id)
		s.Require().Len(ledger, 1)
		s.True(ledger[0].IsSystem())
		s.Equal(map[string][]string{domain.NotificationTypeApplicationCancelled: {"F1", "F2"}}, types(s.nextNotifications()))
	})

	s.Run("should refuse once factory approval started", func() {
		s.SetupTest()
		id := s.submittedApp(10)
		_, err := s.service.Decide(context.Background(), domain.Decision{ApplicationID: id, ActorID: "F1", Action: domain.ApprovalActionApprove})
		s.Require().NoError(err)

		_, err = s.service.Cancel(context.Background(), id, "S")

		s.ErrorIs(err, domain.ErrInvalidCancelState)
	})

	s.Run("should refuse anyone but the submitter", func() {
		s.SetupTest()
		id := s.submittedApp(10)
		_, err := s.service.Cancel(context.Background(), id, "F1")
		s.ErrorIs(err, domain.ErrActionForbidden)
	})

	s.Run("should audit a refused cancel without touching the application", func() {
		s.SetupTest()
		id := s.submittedApp(10)

		_, err := s.service.Cancel(context.Background(), id, "intruder")

		s.ErrorIs(err, domain.ErrActionForbidden)
		failures := s.failedAudits(domain.AuditKeyApplicationCancel)
		s.Require().Len(failures, 1)
		s.Equal("intruder", failures[0]["actor"])
		s.Empty(s.failedAudits(domain.AuditKeyApplicationSubmit))
		stored, _ := s.store.get(id)
		s.Equal(domain.ApplicationStatusPendingFactory, stored.Status)
	})
}

func (s *ServiceTestSuite) TestArchive() {
	completed := s.now.Add(-time.Hour)
	closed := domain.Application{
		ID:          "app-1",
		Status:      domain.ApplicationStatusApproved,
		SubmitterID: "S",
		Revision:    4,
		CompletedAt: &completed,
	}

	s.Run("should store a snapshot and mark the application archived", func() {
		s.SetupTest()
		s.seed(closed)
		s.store.records = domain.Ledger{{ID: "r1", ApplicationID: "app-1", ApproverID: "D", Level: domain.ApprovalLevelDirector, Action: domain.ApprovalActionApprove}}
		s.mockRoleResolver.EXPECT().IsAdmin(ctxMatcher, "admin").Return(true, nil).Once()
		var snapshot application.Snapshot
		s.mockArchiver.EXPECT().Put(ctxMatcher, "20240502/app-1.json", mock.AnythingOfType("[]uint8")).
			RunAndReturn(func(_ context.Context, _ string, data []byte) error {
				return json.Unmarshal(data, &snapshot)
			}).Once()

		app, err := s.service.Archive(context.Background(), "app-1", "admin")

		s.NoError(err)
		s.Equal(domain.ApplicationStatusArchived, app.Status)
		s.Equal("admin", app.ArchivedBy)
		s.Equal(uint(5), app.Revision)
		s.Equal(domain.ApplicationStatusArchived, snapshot.Application.Status)
		s.Len(snapshot.Ledger, 1)
	})

	s.Run("should return forbidden for non admins", func() {
		s.SetupTest()
		s.seed(closed)
		s.mockRoleResolver.EXPECT().IsAdmin(ctxMatcher, "S").Return(false, nil).Once()

		_, err := s.service.Archive(context.Background(), "app-1", "S")

		s.ErrorIs(err, domain.ErrActionForbidden)
		s.mockArchiver.AssertNotCalled(s.T(), "Put", mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("should leave the application untouched when the snapshot cannot be stored", func() {
		s.SetupTest()
		s.seed(closed)
		s.mockRoleResolver.EXPECT().IsAdmin(ctxMatcher, "admin").Return(true, nil).Once()
		s.mockArchiver.EXPECT().Put(ctxMatcher, mock.Anything, mock.Anything).Return(errors.New("bucket unavailable")).Once()

		_, err := s.service.Archive(context.Background(), "app-1", "admin")

		s.ErrorIs(err, application.ErrArchiveStorage)
		stored, _ := s.store.get("app-1")
		s.Equal(domain.ApplicationStatusApproved, stored.Status)
	})

	s.Run("should refuse pending applications", func() {
		s.SetupTest()
		s.submittedApp(10)
		s.mockRoleResolver.EXPECT().IsAdmin(ctxMatcher, "admin").Return(true, nil).Once()

		_, err := s.service.Archive(context.Background(), "app-1", "admin")

		s.ErrorIs(err, domain.ErrInvalidArchiveState)
	})
}
