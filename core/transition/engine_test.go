package transition_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/goto/oaflow/core/transition"
	"github.com/goto/oaflow/core/transition/mocks"
	"github.com/goto/oaflow/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var ctxMatcher = mock.MatchedBy(func(ctx context.Context) bool { return true })

type EngineTestSuite struct {
	suite.Suite
	mockResolver *mocks.ApproverResolver
	engine       *transition.Engine
	now          time.Time
}

func (s *EngineTestSuite) SetupTest() {
	s.mockResolver = &mocks.ApproverResolver{}
	s.engine = transition.NewEngine(s.mockResolver)
	s.now = time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	transition.TimeNow = func() time.Time { return s.now }
}

func (s *EngineTestSuite) TearDownTest() {
	transition.TimeNow = time.Now
}

func TestEngine(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

// expectLevel makes the resolver behave like the real one for list based levels
// and return fixed role holders for director and ceo
func (s *EngineTestSuite) expectLevels(director, ceo []string) {
	s.mockResolver.EXPECT().
		Resolve(ctxMatcher, mock.AnythingOfType("*domain.Application"), mock.AnythingOfType("string")).
		RunAndReturn(func(_ context.Context, app *domain.Application, level string) ([]string, error) {
			var result []string
			switch level {
			case domain.ApprovalLevelFactory:
				result = app.FactoryApproverIDs
			case domain.ApprovalLevelManager:
				result = app.ManagerApproverIDs
			case domain.ApprovalLevelDirector:
				result = director
			case domain.ApprovalLevelCeo:
				result = ceo
			}
			if len(result) == 0 {
				return nil, domain.ErrNoEligibleApprover
			}
			return result, nil
		}).Maybe()
}

func newDraft() *domain.Application {
	return &domain.Application{
		ID:                 "app-1",
		Status:             domain.ApplicationStatusDraft,
		SubmitterID:        "submitter",
		FactoryApproverIDs: []string{"F1", "F2"},
		ManagerApproverIDs: []string{"M1"},
	}
}

type flow struct {
	s      *EngineTestSuite
	app    *domain.Application
	ledger domain.Ledger
}

func (s *EngineTestSuite) submitted(app *domain.Application) *flow {
	t, err := s.engine.Submit(context.Background(), app, app.SubmitterID)
	s.Require().NoError(err)
	s.Require().NoError(app.Apply(t))
	return &flow{s: s, app: app}
}

func (f *flow) decide(d domain.Decision) error {
	d.ApplicationID = f.app.ID
	t, err := f.s.engine.Decide(context.Background(), f.app, f.ledger, d)
	if err != nil {
		return err
	}
	if err := f.app.Apply(t); err != nil {
		return err
	}
	if t.Record != nil {
		f.ledger = append(f.ledger, t.Record)
	}
	return nil
}

func approve(actor string) domain.Decision {
	return domain.Decision{ActorID: actor, Action: domain.ApprovalActionApprove}
}

func route(actor, choice string) domain.Decision {
	return domain.Decision{ActorID: actor, Action: domain.ApprovalActionApprove, RoutingChoice: choice}
}

func reject(actor, comment string) domain.Decision {
	return domain.Decision{ActorID: actor, Action: domain.ApprovalActionReject, Comment: comment}
}

func (s *EngineTestSuite) TestSubmit() {
	s.Run("should move draft to factory stage with configured approvers", func() {
		s.SetupTest()
		s.expectLevels(nil, nil)
		app := newDraft()

		actual, err := s.engine.Submit(context.Background(), app, "submitter")

		s.NoError(err)
		expected := &domain.Transition{
			ApplicationID: "app-1",
			From:          domain.ApplicationStatusDraft,
			To:            domain.ApplicationStatusPendingFactory,
			Actor:         "submitter",
			Approvers:     []string{"F1", "F2"},
			OccurredAt:    s.now,
		}
		s.Empty(cmp.Diff(expected, actual))
		s.Equal(domain.ApplicationStatusDraft, app.Status)
	})

	s.Run("should return error on invalid submission", func() {
		testCases := []struct {
			name        string
			app         func() *domain.Application
			actor       string
			expectedErr error
		}{
			{
				name: "not a draft",
				app: func() *domain.Application {
					a := newDraft()
					a.Status = domain.ApplicationStatusPendingFactory
					return a
				},
				actor:       "submitter",
				expectedErr: domain.ErrInvalidSubmissionState,
			},
			{
				name:        "not the submitter",
				app:         newDraft,
				actor:       "someone",
				expectedErr: domain.ErrActionForbidden,
			},
			{
				name: "no factory approvers",
				app: func() *domain.Application {
					a := newDraft()
					a.FactoryApproverIDs = []string{"", " "}
					return a
				},
				actor:       "submitter",
				expectedErr: domain.ErrEmptyApproverSet,
			},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.SetupTest()

				actual, err := s.engine.Submit(context.Background(), tc.app(), tc.actor)

				s.ErrorIs(err, tc.expectedErr)
				s.Nil(actual)
				s.mockResolver.AssertNotCalled(s.T(), "Resolve", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})
}

func (s *EngineTestSuite) TestUnanimity() {
	approvers := []string{"F1", "F2", "F3"}
	orders := [][]string{
		{"F1", "F2", "F3"},
		{"F1", "F3", "F2"},
		{"F2", "F1", "F3"},
		{"F2", "F3", "F1"},
		{"F3", "F1", "F2"},
		{"F3", "F2", "F1"},
	}
	for _, order := range orders {
		s.Run("should require every factory approver in any order", func() {
			s.SetupTest()
			s.expectLevels([]string{"D"}, nil)
			app := newDraft()
			app.FactoryApproverIDs = approvers
			f := s.submitted(app)

			for i, actor := range order {
				s.Require().NoError(f.decide(approve(actor)))
				if i < len(order)-1 {
					s.Equal(domain.ApplicationStatusPendingFactory, app.Status)
					s.Len(app.CurrentApproverIDs, len(order)-i-1)
					s.NotContains(app.CurrentApproverIDs, actor)
				}
			}
			s.Equal(domain.ApplicationStatusPendingDirector, app.Status)
			s.Equal([]string{"D"}, app.CurrentApproverIDs)
			s.Len(f.ledger, 3)
		})
	}
}

func (s *EngineTestSuite) TestFailFastRejection() {
	stages := []struct {
		name  string
		setup func(f *flow)
	}{
		{
			name:  "factory after partial approval",
			setup: func(f *flow) { s.Require().NoError(f.decide(approve("F1"))) },
		},
		{
			name: "director",
			setup: func(f *flow) {
				s.Require().NoError(f.decide(approve("F1")))
				s.Require().NoError(f.decide(approve("F2")))
			},
		},
		{
			name: "manager after partial approval",
			setup: func(f *flow) {
				f.app.ManagerApproverIDs = []string{"M1", "M2"}
				s.Require().NoError(f.decide(approve("F1")))
				s.Require().NoError(f.decide(approve("F2")))
				s.Require().NoError(f.decide(route("D", domain.RoutingChoiceToManager)))
				s.Require().NoError(f.decide(approve("M1")))
			},
		},
		{
			name: "ceo",
			setup: func(f *flow) {
				s.Require().NoError(f.decide(approve("F1")))
				s.Require().NoError(f.decide(approve("F2")))
				s.Require().NoError(f.decide(route("D", domain.RoutingChoiceToCeo)))
			},
		},
	}
	for _, stage := range stages {
		s.Run("should reject immediately at "+stage.name, func() {
			s.SetupTest()
			s.expectLevels([]string{"D"}, []string{"C"})
			f := s.submitted(newDraft())
			stage.setup(f)
			actor := f.app.CurrentApproverIDs[len(f.app.CurrentApproverIDs)-1]

			err := f.decide(reject(actor, "not within budget"))

			s.NoError(err)
			s.Equal(domain.ApplicationStatusRejected, f.app.Status)
			s.Empty(f.app.CurrentApproverIDs)
			s.Equal(s.now, *f.app.CompletedAt)
			last := f.ledger[len(f.ledger)-1]
			s.Equal(domain.ApprovalActionReject, last.Action)
			s.Equal("not within budget", last.Comment)
		})
	}
}

func (s *EngineTestSuite) TestDecide() {
	s.Run("should require comment to reject", func() {
		s.SetupTest()
		s.expectLevels(nil, nil)
		f := s.submitted(newDraft())

		err := f.decide(reject("F1", "   "))

		s.ErrorIs(err, domain.ErrMissingRejectionComment)
		s.ErrorIs(err, domain.ErrValidation)
		s.Equal(domain.ApplicationStatusPendingFactory, f.app.Status)
	})

	s.Run("should reject routing choice outside of the director stage", func() {
		s.SetupTest()
		s.expectLevels(nil, nil)
		f := s.submitted(newDraft())

		err := f.decide(route("F1", domain.RoutingChoiceComplete))

		s.ErrorIs(err, domain.ErrInvalidRoutingChoice)
		s.Equal([]string{"F1", "F2"}, f.app.CurrentApproverIDs)
	})

	s.Run("should reject routing choice on rejection", func() {
		s.SetupTest()
		s.expectLevels(nil, nil)
		f := s.submitted(newDraft())
		d := reject("F1", "no")
		d.RoutingChoice = domain.RoutingChoiceToCeo

		s.ErrorIs(f.decide(d), domain.ErrInvalidRoutingChoice)
	})

	s.Run("should return unauthorized approver when actor is not pending", func() {
		s.SetupTest()
		s.expectLevels(nil, nil)
		f := s.submitted(newDraft())

		err := f.decide(approve("M1"))

		s.ErrorIs(err, domain.ErrUnauthorizedApprover)
		s.ErrorIs(err, domain.ErrAuthorization)
	})

	s.Run("should return unauthorized approver on draft", func() {
		s.SetupTest()

		_, err := s.engine.Decide(context.Background(), newDraft(), nil, approve("F1"))

		s.ErrorIs(err, domain.ErrUnauthorizedApprover)
	})

	s.Run("should return duplicate decision on repeated approval", func() {
		s.SetupTest()
		s.expectLevels(nil, nil)
		f := s.submitted(newDraft())
		s.Require().NoError(f.decide(approve("F1")))
		before := *f.app

		err := f.decide(approve("F1"))

		s.ErrorIs(err, domain.ErrDuplicateDecision)
		s.True(domain.IsRetryable(err))
		s.Equal(before, *f.app)
		s.Len(f.ledger, 1)
	})

	s.Run("should return error when director cannot be resolved", func() {
		s.SetupTest()
		s.expectLevels(nil, nil)
		f := s.submitted(newDraft())
		s.Require().NoError(f.decide(approve("F1")))

		err := f.decide(approve("F2"))

		s.ErrorIs(err, domain.ErrNoEligibleApprover)
		s.Equal(domain.ApplicationStatusPendingFactory, f.app.Status)
		s.Equal([]string{"F2"}, f.app.CurrentApproverIDs)
	})

	s.Run("should return error on unknown action", func() {
		s.SetupTest()
		s.expectLevels(nil, nil)
		f := s.submitted(newDraft())

		err := f.decide(domain.Decision{ActorID: "F1", Action: "abstain"})

		s.ErrorIs(err, domain.ErrInvalidTransition)
	})
}

func (s *EngineTestSuite) TestDirectorRouting() {
	atDirector := func(app *domain.Application) *flow {
		f := s.submitted(app)
		s.Require().NoError(f.decide(approve("F1")))
		s.Require().NoError(f.decide(approve("F2")))
		s.Require().Equal(domain.ApplicationStatusPendingDirector, f.app.Status)
		return f
	}

	s.Run("should complete the application", func() {
		s.SetupTest()
		s.expectLevels([]string{"D"}, nil)
		f := atDirector(newDraft())

		s.NoError(f.decide(route("D", domain.RoutingChoiceComplete)))

		s.Equal(domain.ApplicationStatusApproved, f.app.Status)
		s.Empty(f.app.CurrentApproverIDs)
		s.NotNil(f.app.CompletedAt)
		s.Equal(domain.RoutingChoiceComplete, f.ledger[2].RoutingChoice)
	})

	s.Run("should use selected managers instead of the configured group", func() {
		s.SetupTest()
		s.expectLevels([]string{"D"}, nil)
		f := atDirector(newDraft())
		d := route("D", domain.RoutingChoiceToManager)
		d.SelectedManagerIDs = []string{"M7", "M8", "m7"}

		s.NoError(f.decide(d))

		s.Equal(domain.ApplicationStatusPendingManager, f.app.Status)
		s.Equal([]string{"M7", "M8"}, f.app.CurrentApproverIDs)
		s.Equal([]string{"M7", "M8"}, f.app.ManagerApproverIDs)
		s.Equal([]string{"M7", "M8"}, f.ledger[2].SelectedManagerIDs)
	})

	invalidCases := []struct {
		name   string
		app    func() *domain.Application
		choice string
		chosen []string
	}{
		{
			name: "manager stage skipped",
			app: func() *domain.Application {
				a := newDraft()
				a.SkipManager = true
				return a
			},
			choice: domain.RoutingChoiceToManager,
		},
		{
			name: "no managers assigned",
			app: func() *domain.Application {
				a := newDraft()
				a.ManagerApproverIDs = nil
				return a
			},
			choice: domain.RoutingChoiceToManager,
		},
		{
			name:   "missing routing choice",
			app:    newDraft,
			choice: "",
		},
		{
			name:   "unknown routing choice",
			app:    newDraft,
			choice: "to_board",
		},
		{
			name:   "managers selected while routing to ceo",
			app:    newDraft,
			choice: domain.RoutingChoiceToCeo,
			chosen: []string{"M1"},
		},
	}
	for _, tc := range invalidCases {
		s.Run("should return invalid routing choice when "+tc.name, func() {
			s.SetupTest()
			s.expectLevels([]string{"D"}, []string{"C"})
			f := atDirector(tc.app())
			before := *f.app
			d := route("D", tc.choice)
			d.SelectedManagerIDs = tc.chosen

			err := f.decide(d)

			s.ErrorIs(err, domain.ErrInvalidRoutingChoice)
			s.Equal(before, *f.app)
			s.Len(f.ledger, 2)
		})
	}
}

func (s *EngineTestSuite) TestTerminalImmutability() {
	for _, status := range []string{domain.ApplicationStatusApproved, domain.ApplicationStatusRejected, domain.ApplicationStatusArchived} {
		s.Run("should return already terminal for "+status, func() {
			s.SetupTest()
			app := newDraft()
			app.Status = status

			actual, err := s.engine.Decide(context.Background(), app, nil, reject("F1", "late"))

			s.ErrorIs(err, domain.ErrAlreadyTerminal)
			s.ErrorIs(err, domain.ErrTerminalState)
			s.Nil(actual)
		})
	}
}

func (s *EngineTestSuite) TestScenarios() {
	s.Run("factory, director to ceo, ceo approves", func() {
		s.SetupTest()
		s.expectLevels([]string{"Director"}, []string{"Ceo"})
		f := s.submitted(newDraft())

		s.NoError(f.decide(approve("F1")))
		s.Equal(domain.ApplicationStatusPendingFactory, f.app.Status)
		s.Equal([]string{"F2"}, f.app.CurrentApproverIDs)

		s.NoError(f.decide(approve("F2")))
		s.Equal(domain.ApplicationStatusPendingDirector, f.app.Status)
		s.Equal([]string{"Director"}, f.app.CurrentApproverIDs)

		s.NoError(f.decide(route("Director", domain.RoutingChoiceToCeo)))
		s.Equal(domain.ApplicationStatusPendingCeo, f.app.Status)
		s.Equal([]string{"Ceo"}, f.app.CurrentApproverIDs)

		s.NoError(f.decide(approve("Ceo")))
		s.Equal(domain.ApplicationStatusApproved, f.app.Status)
		s.Empty(f.app.CurrentApproverIDs)
		s.Require().NotNil(f.app.CompletedAt)
		s.Equal(s.now, *f.app.CompletedAt)
	})

	s.Run("director to manager, manager rejects", func() {
		s.SetupTest()
		s.expectLevels([]string{"Director"}, []string{"Ceo"})
		f := s.submitted(newDraft())

		s.NoError(f.decide(approve("F1")))
		s.NoError(f.decide(approve("F2")))
		s.NoError(f.decide(route("Director", domain.RoutingChoiceToManager)))
		s.Equal(domain.ApplicationStatusPendingManager, f.app.Status)
		s.Equal([]string{"M1"}, f.app.CurrentApproverIDs)

		s.NoError(f.decide(reject("M1", "budget")))
		s.Equal(domain.ApplicationStatusRejected, f.app.Status)

		s.Require().Len(f.ledger, 4)
		expected := []struct{ approver, level, action string }{
			{"F1", domain.ApprovalLevelFactory, domain.ApprovalActionApprove},
			{"F2", domain.ApprovalLevelFactory, domain.ApprovalActionApprove},
			{"Director", domain.ApprovalLevelDirector, domain.ApprovalActionApprove},
			{"M1", domain.ApprovalLevelManager, domain.ApprovalActionReject},
		}
		for i, e := range expected {
			s.Equal(e.approver, f.ledger[i].ApproverID)
			s.Equal(e.level, f.ledger[i].Level)
			s.Equal(e.action, f.ledger[i].Action)
		}
		s.Equal("budget", f.ledger[3].Comment)
	})

	s.Run("skip manager blocks routing to manager", func() {
		s.SetupTest()
		s.expectLevels([]string{"Director"}, []string{"Ceo"})
		app := newDraft()
		app.SkipManager = true
		f := s.submitted(app)
		s.NoError(f.decide(approve("F1")))
		s.NoError(f.decide(approve("F2")))

		err := f.decide(route("Director", domain.RoutingChoiceToManager))

		s.True(errors.Is(err, domain.ErrInvalidRoutingChoice))
		s.Equal(domain.ApplicationStatusPendingDirector, f.app.Status)
		s.Equal([]string{"Director"}, f.app.CurrentApproverIDs)
	})
}

func (s *EngineTestSuite) TestCancel() {
	s.Run("should cancel draft with a system record", func() {
		s.SetupTest()
		app := newDraft()

		actual, err := s.engine.Cancel(context.Background(), app, "submitter")

		s.NoError(err)
		s.Equal(domain.ApplicationStatusRejected, actual.To)
		s.Empty(actual.Approvers)
		s.Require().NotNil(actual.Record)
		s.Equal(domain.SystemActor, actual.Record.ApproverID)
		s.Equal(domain.ApprovalLevelFactory, actual.Record.Level)
		s.Equal(domain.ApprovalActionReject, actual.Record.Action)
		s.Equal("submitter", actual.Record.Details[domain.RecordDetailCancelledBy])
	})

	s.Run("should cancel pending factory before anyone acted", func() {
		s.SetupTest()
		s.expectLevels(nil, nil)
		f := s.submitted(newDraft())

		actual, err := s.engine.Cancel(context.Background(), f.app, "submitter")

		s.NoError(err)
		s.NoError(f.app.Apply(actual))
		s.Equal(domain.ApplicationStatusRejected, f.app.Status)
	})

	s.Run("should return error on invalid cancellation", func() {
		s.SetupTest()
		s.expectLevels([]string{"D"}, nil)
		started := s.submitted(newDraft())
		s.Require().NoError(started.decide(approve("F1")))

		atDirector := s.submitted(newDraft())
		s.Require().NoError(atDirector.decide(approve("F1")))
		s.Require().NoError(atDirector.decide(approve("F2")))

		closed := newDraft()
		closed.Status = domain.ApplicationStatusApproved

		testCases := []struct {
			name        string
			app         *domain.Application
			actor       string
			expectedErr error
		}{
			{"factory approval started", started.app, "submitter", domain.ErrInvalidCancelState},
			{"director stage", atDirector.app, "submitter", domain.ErrInvalidCancelState},
			{"terminal", closed, "submitter", domain.ErrAlreadyTerminal},
			{"not submitter", newDraft(), "F1", domain.ErrActionForbidden},
		}
		for _, tc := range testCases {
			actual, err := s.engine.Cancel(context.Background(), tc.app, tc.actor)

			s.ErrorIs(err, tc.expectedErr, tc.name)
			s.Nil(actual, tc.name)
		}
	})
}

func (s *EngineTestSuite) TestArchive() {
	s.Run("should archive closed applications", func() {
		for _, status := range []string{domain.ApplicationStatusApproved, domain.ApplicationStatusRejected} {
			app := newDraft()
			app.Status = status

			actual, err := s.engine.Archive(app, "admin")

			s.NoError(err)
			s.Equal(status, actual.From)
			s.Equal(domain.ApplicationStatusArchived, actual.To)
			s.Equal("admin", actual.Actor)
			s.Nil(actual.Record)
		}
	})

	s.Run("should return error for other statuses", func() {
		app := newDraft()
		_, err := s.engine.Archive(app, "admin")
		s.ErrorIs(err, domain.ErrInvalidArchiveState)

		app.Status = domain.ApplicationStatusArchived
		_, err = s.engine.Archive(app, "admin")
		s.ErrorIs(err, domain.ErrAlreadyTerminal)
	})
}
