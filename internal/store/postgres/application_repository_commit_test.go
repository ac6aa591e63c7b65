package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goto/oaflow/domain"
	store "github.com/goto/oaflow/internal/store/postgres"
)

type CommitTestSuite struct {
	suite.Suite
	sqlMock    sqlmock.Sqlmock
	repository *store.ApplicationRepository

	app    *domain.Application
	record *domain.ApprovalRecord
}

func TestCommit(t *testing.T) {
	suite.Run(t, new(CommitTestSuite))
}

func (s *CommitTestSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.sqlMock = mock

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.repository = store.NewApplicationRepository(gormDB)

	now := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	s.app = &domain.Application{
		ID:                 "2a0d6f6c-3f1c-4c53-9d7e-9f1b55b3e6a1",
		Status:             domain.ApplicationStatusPendingFactory,
		SubmitterID:        "submitter",
		FactoryApproverIDs: []string{"F1", "F2"},
		CurrentApproverIDs: []string{"F2"},
		Revision:           3,
		UpdatedAt:          now,
	}
	s.record = &domain.ApprovalRecord{
		ApplicationID: s.app.ID,
		ApproverID:    "F1",
		Level:         domain.ApprovalLevelFactory,
		Action:        domain.ApprovalActionApprove,
		CreatedAt:     now,
	}
}

var (
	updateApplicationQuery = regexp.QuoteMeta(`UPDATE "applications" SET`)
	countApplicationQuery  = regexp.QuoteMeta(`SELECT count(*) FROM "applications"`)
	insertRecordQuery      = regexp.QuoteMeta(`INSERT INTO "approval_records"`)
)

func (s *CommitTestSuite) TestCommit() {
	s.Run("should update guarded by revision then insert the record", func() {
		s.SetupTest()
		s.sqlMock.ExpectBegin()
		s.sqlMock.ExpectExec(updateApplicationQuery).WillReturnResult(sqlmock.NewResult(0, 1))
		s.sqlMock.ExpectQuery(insertRecordQuery).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("8c8b1c8e-0b53-4d0e-8a9b-0a4c5d7c2f11"))
		s.sqlMock.ExpectCommit()

		err := s.repository.Commit(context.Background(), s.app, 3, s.record)

		s.NoError(err)
		s.Equal(uint(4), s.app.Revision)
		s.Equal("8c8b1c8e-0b53-4d0e-8a9b-0a4c5d7c2f11", s.record.ID)
		s.NoError(s.sqlMock.ExpectationsWereMet())
	})

	s.Run("should return stale state when no row matches the revision", func() {
		s.SetupTest()
		s.sqlMock.ExpectBegin()
		s.sqlMock.ExpectExec(updateApplicationQuery).WillReturnResult(sqlmock.NewResult(0, 0))
		s.sqlMock.ExpectQuery(countApplicationQuery).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		s.sqlMock.ExpectRollback()

		err := s.repository.Commit(context.Background(), s.app, 3, s.record)

		s.ErrorIs(err, domain.ErrStaleApprovalState)
		s.True(domain.IsRetryable(err))
		s.Equal(uint(3), s.app.Revision)
		s.Empty(s.record.ID)
		s.NoError(s.sqlMock.ExpectationsWereMet())
	})

	s.Run("should translate the unique decision violation", func() {
		s.SetupTest()
		s.sqlMock.ExpectBegin()
		s.sqlMock.ExpectExec(updateApplicationQuery).WillReturnResult(sqlmock.NewResult(0, 1))
		s.sqlMock.ExpectQuery(insertRecordQuery).WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "approval_records_unique_decision_idx",
		})
		s.sqlMock.ExpectRollback()

		err := s.repository.Commit(context.Background(), s.app, 3, s.record)

		s.ErrorIs(err, domain.ErrDuplicateDecision)
		s.Equal(uint(3), s.app.Revision)
		s.NoError(s.sqlMock.ExpectationsWereMet())
	})

	s.Run("should skip the insert when there is no record", func() {
		s.SetupTest()
		s.sqlMock.ExpectBegin()
		s.sqlMock.ExpectExec(updateApplicationQuery).WillReturnResult(sqlmock.NewResult(0, 1))
		s.sqlMock.ExpectCommit()

		err := s.repository.Commit(context.Background(), s.app, 3, nil)

		s.NoError(err)
		s.Equal(uint(4), s.app.Revision)
		s.NoError(s.sqlMock.ExpectationsWereMet())
	})
}
