package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goto/oaflow/core/ledger"
	"github.com/goto/oaflow/core/ledger/mocks"
	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/pkg/log"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var ctxMatcher = mock.MatchedBy(func(ctx context.Context) bool { return true })

type ServiceTestSuite struct {
	suite.Suite
	mockRepo        *mocks.Repository
	mockAppRepo     *mocks.ApplicationRepository
	mockRoleChecker *mocks.RoleChecker
	service         *ledger.Service

	app     *domain.Application
	records []*domain.ApprovalRecord
}

func (s *ServiceTestSuite) SetupTest() {
	s.mockRepo = &mocks.Repository{}
	s.mockAppRepo = &mocks.ApplicationRepository{}
	s.mockRoleChecker = &mocks.RoleChecker{}
	s.service = ledger.NewService(ledger.ServiceDeps{
		Repository:            s.mockRepo,
		ApplicationRepository: s.mockAppRepo,
		RoleChecker:           s.mockRoleChecker,
		Logger:                log.NewNoop(),
	})

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.app = &domain.Application{
		ID:                 "app-1",
		Status:             domain.ApplicationStatusPendingDirector,
		SubmitterID:        "submitter@example.com",
		FactoryApproverIDs: []string{"f1@example.com", "f2@example.com"},
		CurrentApproverIDs: []string{"director@example.com"},
	}
	s.records = []*domain.ApprovalRecord{
		{ID: "r2", ApplicationID: "app-1", ApproverID: "f2@example.com", Level: domain.ApprovalLevelFactory, Action: domain.ApprovalActionApprove, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "r1", ApplicationID: "app-1", ApproverID: "f1@example.com", Level: domain.ApprovalLevelFactory, Action: domain.ApprovalActionApprove, CreatedAt: base.Add(time.Hour)},
	}
}

func TestService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) TestList() {
	s.Run("should return records ordered by creation time", func() {
		s.SetupTest()
		s.mockRepo.EXPECT().
			List(ctxMatcher, domain.ListApprovalRecordsFilter{ApplicationID: "app-1"}).
			Return(s.records, nil).Once()

		actual, err := s.service.List(context.Background(), "app-1")

		s.NoError(err)
		s.Require().Len(actual, 2)
		s.Equal("r1", actual[0].ID)
		s.Equal("r2", actual[1].ID)
	})

	s.Run("should return error when id is empty", func() {
		_, err := s.service.List(context.Background(), "")
		s.ErrorIs(err, ledger.ErrApplicationIDEmptyParam)
	})

	s.Run("should return error from repository", func() {
		s.SetupTest()
		expectedError := errors.New("db down")
		s.mockRepo.EXPECT().
			List(ctxMatcher, mock.Anything).
			Return(nil, expectedError).Once()

		_, err := s.service.List(context.Background(), "app-1")

		s.ErrorIs(err, expectedError)
	})
}

func (s *ServiceTestSuite) TestHistory() {
	allowed := []struct {
		name    string
		viewer  string
		isAdmin bool
	}{
		{"submitter", "submitter@example.com", false},
		{"admin", "auditor@example.com", true},
		{"pending approver", "director@example.com", false},
		{"approver who acted", "F1@example.com", false},
	}
	for _, tc := range allowed {
		s.Run("should return history to "+tc.name, func() {
			s.SetupTest()
			s.mockAppRepo.EXPECT().GetByID(ctxMatcher, "app-1").Return(s.app, nil).Once()
			s.mockRepo.EXPECT().List(ctxMatcher, mock.Anything).Return(s.records, nil).Once()
			s.mockRoleChecker.EXPECT().IsAdmin(ctxMatcher, tc.viewer).Return(tc.isAdmin, nil).Once()

			actual, err := s.service.History(context.Background(), "app-1", tc.viewer)

			s.NoError(err)
			s.Len(actual, 2)
			s.Equal("r1", actual[0].ID)
		})
	}

	s.Run("should return forbidden to unrelated viewers", func() {
		s.SetupTest()
		s.mockAppRepo.EXPECT().GetByID(ctxMatcher, "app-1").Return(s.app, nil).Once()
		s.mockRepo.EXPECT().List(ctxMatcher, mock.Anything).Return(s.records, nil).Once()
		s.mockRoleChecker.EXPECT().IsAdmin(ctxMatcher, "stranger@example.com").Return(false, nil).Once()

		actual, err := s.service.History(context.Background(), "app-1", "stranger@example.com")

		s.ErrorIs(err, domain.ErrActionForbidden)
		s.Nil(actual)
	})

	s.Run("should return error when application lookup fails", func() {
		s.SetupTest()
		expectedError := errors.New("not found")
		s.mockAppRepo.EXPECT().GetByID(ctxMatcher, "app-1").Return(nil, expectedError).Once()
		s.mockRepo.EXPECT().List(ctxMatcher, mock.Anything).Return(s.records, nil).Maybe()
		s.mockRoleChecker.EXPECT().IsAdmin(ctxMatcher, mock.Anything).Return(false, nil).Maybe()

		_, err := s.service.History(context.Background(), "app-1", "submitter@example.com")

		s.ErrorIs(err, expectedError)
	})
}
