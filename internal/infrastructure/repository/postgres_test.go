package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/application/usecase"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

func courseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "price"}).
		AddRow(1, "Go", "100.00").
		AddRow(2, "SQL", "50.00")
}

func expectCheckoutUntilDelete(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(q(`SELECT * FROM "courses" WHERE id IN ($1,$2)`)).
		WithArgs(1, 2).
		WillReturnRows(courseRows())
	mock.ExpectExec(q(`SELECT pg_advisory_xact_lock($1, $2)`)).
		WithArgs(purchaseLockSpace, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q(`SELECT "course_id" FROM "purchases" WHERE user_id = $1 AND course_id IN ($2,$3)`)).
		WithArgs(42, 1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"course_id"}))
	mock.ExpectQuery(q(`INSERT INTO "purchases"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10).AddRow(11))
}

func newCheckout(db *gorm.DB) *usecase.PurchaseUseCase {
	return usecase.NewPurchaseUseCase(NewTxManager(db), NewPurchaseRepository(db), domain.NewPricer(domain.DefaultTaxRate))
}

func TestCheckoutCommits(t *testing.T) {
	db, mock := newMockDB(t)
	expectCheckoutUntilDelete(mock)
	mock.ExpectExec(q(`DELETE FROM "cart_lines" WHERE user_id = $1 AND course_id IN ($2,$3)`)).
		WithArgs(42, 1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := newCheckout(db).ProcessPurchase(context.Background(), 42, domain.PurchaseRequest{CourseIDs: []uint{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.CoursesCount)
	assert.True(t, res.TotalAmount.Equal(decimal.RequireFromString("172.5")), res.TotalAmount.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutRollsBackOnCartDeleteFailure(t *testing.T) {
	db, mock := newMockDB(t)
	expectCheckoutUntilDelete(mock)
	boom := errors.New("boom")
	mock.ExpectExec(q(`DELETE FROM "cart_lines"`)).WillReturnError(boom)
	mock.ExpectRollback()

	_, err := newCheckout(db).ProcessPurchase(context.Background(), 42, domain.PurchaseRequest{CourseIDs: []uint{1, 2}})
	require.ErrorIs(t, err, domain.ErrStorageFailure)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutRollsBackOnUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q(`SELECT * FROM "courses"`)).WillReturnRows(courseRows())
	mock.ExpectExec(q(`SELECT pg_advisory_xact_lock`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q(`SELECT "course_id" FROM "purchases"`)).
		WillReturnRows(sqlmock.NewRows([]string{"course_id"}))
	mock.ExpectQuery(q(`INSERT INTO "purchases"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ux_purchase_user_course"})
	mock.ExpectRollback()

	_, err := newCheckout(db).ProcessPurchase(context.Background(), 42, domain.PurchaseRequest{CourseIDs: []uint{1, 2}})
	require.ErrorIs(t, err, domain.ErrStorageFailure)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutRejectsOwnedCourseBeforeInsert(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q(`SELECT * FROM "courses"`)).WillReturnRows(courseRows())
	mock.ExpectExec(q(`SELECT pg_advisory_xact_lock`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q(`SELECT "course_id" FROM "purchases"`)).
		WillReturnRows(sqlmock.NewRows([]string{"course_id"}).AddRow(2))
	mock.ExpectRollback()

	_, err := newCheckout(db).ProcessPurchase(context.Background(), 42, domain.PurchaseRequest{CourseIDs: []uint{1, 2}})
	require.ErrorIs(t, err, domain.ErrAlreadyPurchased)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerLocksOnlyInsideCheckout(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(q(`SELECT "course_id" FROM "purchases" WHERE user_id = $1 AND course_id IN ($2)`)).
		WithArgs(42, 3).
		WillReturnRows(sqlmock.NewRows([]string{"course_id"}).AddRow(3))

	ids, err := NewPurchaseRepository(db).ExistingPurchaseCourseIDs(context.Background(), 42, []uint{3})
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCartLinesIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartRepository(db)

	// nothing to delete, nothing sent
	require.NoError(t, repo.DeleteCartLines(context.Background(), 42, nil))

	mock.ExpectBegin()
	mock.ExpectExec(q(`DELETE FROM "cart_lines" WHERE user_id = $1 AND course_id IN ($2,$3)`)).
		WithArgs(42, 8, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	require.NoError(t, repo.DeleteCartLines(context.Background(), 42, []uint{8, 9}))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLineTranslatesConstraintErrors(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"23505", domain.ErrAlreadyInCart},
		{"23503", domain.ErrCourseNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			mock.ExpectQuery(q(`INSERT INTO "cart_lines"`)).
				WillReturnError(&pgconn.PgError{Code: tc.code})
			mock.ExpectRollback()

			err := NewCartRepository(db).AddLine(context.Background(), &domain.CartLine{UserID: 42, CourseID: 1})
			require.ErrorIs(t, err, tc.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRemoveLineReportsMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(q(`DELETE FROM "cart_lines" WHERE user_id = $1 AND course_id = $2`)).
		WithArgs(42, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err := NewCartRepository(db).RemoveLine(context.Background(), 42, 5)
	require.NoError(t, err)
	assert.False(t, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoRowsAffectedIsNotFound(t *testing.T) {
	t.Run("delete course", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(q(`DELETE FROM "courses" WHERE id = $1`)).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		require.ErrorIs(t, NewCourseRepository(db).Delete(context.Background(), 5), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update course", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(q(`UPDATE "courses" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		c := &domain.Course{ID: 5, Title: "Go", Price: decimal.RequireFromString("10"), CategoryID: 1, InstructorID: 1}
		require.ErrorIs(t, NewCourseRepository(db).Update(context.Background(), c), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete instructor", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(q(`DELETE FROM "instructors" WHERE id = $1`)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		require.ErrorIs(t, NewInstructorRepository(db).Delete(context.Background(), 3), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get course", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(q(`SELECT * FROM "courses" WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewCourseRepository(db).GetByID(context.Background(), 9)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q(`INSERT INTO "categories"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := NewCategoryRepository(db).Create(context.Background(), &domain.Category{Name: "Dev"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardStats(t *testing.T) {
	db, mock := newMockDB(t)
	count := func(n int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count"}).AddRow(n)
	}
	mock.ExpectQuery(q(`SELECT count(*) FROM "courses"`)).WillReturnRows(count(4))
	mock.ExpectQuery(q(`SELECT count(*) FROM "instructors"`)).WillReturnRows(count(2))
	mock.ExpectQuery(q(`SELECT count(*) FROM "categories"`)).WillReturnRows(count(3))
	mock.ExpectQuery(q(`SELECT count(*) FROM "purchases"`)).WillReturnRows(count(5))
	mock.ExpectQuery(`(?i)count\(distinct\("user_id"\)\) FROM "purchases"`).WillReturnRows(count(2))
	mock.ExpectQuery(q(`SELECT COALESCE(SUM(amount - discount + tax), 0) FROM "purchases"`)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("310.50"))

	s, err := NewPurchaseRepository(db).DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.Courses)
	assert.Equal(t, int64(2), s.Instructors)
	assert.Equal(t, int64(3), s.Categories)
	assert.Equal(t, int64(5), s.Purchases)
	assert.Equal(t, int64(2), s.Buyers)
	assert.True(t, s.Revenue.Equal(decimal.RequireFromString("310.5")), s.Revenue.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
