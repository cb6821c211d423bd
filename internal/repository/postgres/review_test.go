package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

var reviewRowColumns = []string{
	"id", "shop", "product_id", "star", "author", "customer_name", "customer_email",
	"review_title", "review", "status", "legacy_media", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestReviewRepository_Create_WithMedia(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)
	now := time.Now()

	review := &domain.Review{
		Shop:         "demo.myshopify.com",
		ProductID:    "42",
		Star:         5,
		Author:       domain.AuthorCustomer,
		CustomerName: "Ann",
		ReviewTitle:  "Great",
		Body:         "Works well",
		Status:       domain.StatusPending,
		Media:        []string{"/uploads/a.png", "/uploads/b.mp4"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs("demo.myshopify.com", "42", 5, "customer", "Ann", nil, "Great", "Works well", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))
	mock.ExpectExec("INSERT INTO review_media").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), review)

	require.NoError(t, err)
	assert.Equal(t, int64(7), review.ID)
	assert.Equal(t, now, review.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_WithoutMediaSkipsAssociation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(8), now, now))
	mock.ExpectCommit()

	review := &domain.Review{Shop: "demo.myshopify.com", ProductID: "42", Star: 3, Author: domain.AuthorGuest}
	err := repo.Create(context.Background(), review)

	require.NoError(t, err)
	assert.Equal(t, []string{}, review.Media)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &domain.Review{Author: domain.AuthorCustomer})

	assert.ErrorIs(t, err, domain.ErrDuplicateSubmission)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(reviewRowColumns))

	review, err := repo.GetByID(context.Background(), 9)

	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetByID_LegacyMediaFallback(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).AddRow(
			int64(3), "demo.myshopify.com", "42", 4, "guest", "Bob", nil,
			"Nice", "Good", "approved", `["/uploads/old.png"]`, now, now,
		))
	mock.ExpectQuery("SELECT review_id, path FROM review_media").
		WillReturnRows(sqlmock.NewRows([]string{"review_id", "path"}))

	review, err := repo.GetByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, domain.ProductID("42"), review.ProductID)
	assert.Equal(t, domain.StatusApproved, review.Status)
	assert.Equal(t, []string{"/uploads/old.png"}, review.Media)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetByID_MalformedLegacyMediaIsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id").
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).AddRow(
			int64(4), "demo.myshopify.com", "42", 4, "guest", "Bob", nil,
			"Nice", "Good", "approved", `["broken`, now, now,
		))
	mock.ExpectQuery("SELECT review_id, path FROM review_media").
		WillReturnRows(sqlmock.NewRows([]string{"review_id", "path"}))

	review, err := repo.GetByID(context.Background(), 4)

	require.NoError(t, err)
	assert.Empty(t, review.Media)
}

func TestReviewRepository_FindMany_FiltersAndAttachesMedia(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE shop = (.+) AND product_id = (.+) AND status = (.+) ORDER BY created_at DESC, id DESC LIMIT").
		WithArgs("demo.myshopify.com", "42", "approved", 3).
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).
			AddRow(int64(2), "demo.myshopify.com", "42", 5, "customer", "Ann", "ann@example.com",
				"Top", "Love it", "approved", nil, now, now).
			AddRow(int64(1), "demo.myshopify.com", "42", 4, "guest", "Bob", nil,
				"Fine", "Okay", "approved", nil, now.Add(-time.Hour), now.Add(-time.Hour)))
	mock.ExpectQuery("SELECT review_id, path FROM review_media").
		WillReturnRows(sqlmock.NewRows([]string{"review_id", "path"}).
			AddRow(int64(2), "/uploads/a.png").
			AddRow(int64(2), "/uploads/b.png"))

	reviews, err := repo.FindMany(context.Background(), domain.ReviewFilter{
		Shop:      "demo.myshopify.com",
		ProductID: "42",
		Status:    domain.StatusApproved,
		Limit:     3,
	})

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, int64(2), reviews[0].ID)
	assert.Equal(t, []string{"/uploads/a.png", "/uploads/b.png"}, reviews[0].Media)
	require.NotNil(t, reviews[0].CustomerEmail)
	assert.Equal(t, "ann@example.com", *reviews[0].CustomerEmail)
	assert.Equal(t, []string{}, reviews[1].Media)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_FindMany_ShopOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE shop = (.+) ORDER BY created_at DESC, id DESC$").
		WithArgs("demo.myshopify.com").
		WillReturnRows(sqlmock.NewRows(reviewRowColumns))

	reviews, err := repo.FindMany(context.Background(), domain.ReviewFilter{Shop: "demo.myshopify.com"})

	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_HasCustomerReview(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("demo.myshopify.com", "42", "Ann", "customer").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasCustomerReview(context.Background(), "demo.myshopify.com", "42", "Ann")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)
	star := 2

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE reviews SET").
		WithArgs(2, int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	review, err := repo.Update(context.Background(), 99, domain.ReviewPatch{Star: &star})

	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Update_RenameCollidesWithCustomerReview(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)
	name := "Ann"

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE reviews SET").
		WithArgs("Ann", int64(7)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})
	mock.ExpectRollback()

	review, err := repo.Update(context.Background(), 7, domain.ReviewPatch{CustomerName: &name})

	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrDuplicateSubmission)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Update_ReplacesMedia(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)
	now := time.Now()
	status := domain.StatusApproved
	media := []string{"/uploads/keep.png", "/uploads/new.png"}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE reviews SET updated_at = NOW\\(\\), status = (.+), legacy_media = NULL WHERE id").
		WithArgs("approved", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectExec("DELETE FROM review_media").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO review_media").
		WithArgs(int64(5), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).AddRow(
			int64(5), "demo.myshopify.com", "42", 4, "guest", "Bob", nil,
			"Nice", "Good", "approved", nil, now, now,
		))
	mock.ExpectQuery("SELECT review_id, path FROM review_media").
		WillReturnRows(sqlmock.NewRows([]string{"review_id", "path"}).
			AddRow(int64(5), media[0]).
			AddRow(int64(5), media[1]))

	review, err := repo.Update(context.Background(), 5, domain.ReviewPatch{Status: &status, Media: &media})

	require.NoError(t, err)
	assert.Equal(t, media, review.Media)
	assert.Equal(t, domain.StatusApproved, review.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Update_EmptyMediaClearsAssociation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)
	now := time.Now()
	media := []string{}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE reviews SET").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectExec("DELETE FROM review_media").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id").
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).AddRow(
			int64(5), "demo.myshopify.com", "42", 4, "guest", "Bob", nil,
			"Nice", "Good", "approved", nil, now, now,
		))
	mock.ExpectQuery("SELECT review_id, path FROM review_media").
		WillReturnRows(sqlmock.NewRows([]string{"review_id", "path"}))

	review, err := repo.Update(context.Background(), 5, domain.ReviewPatch{Media: &media})

	require.NoError(t, err)
	assert.Empty(t, review.Media)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Delete(t *testing.T) {
	t.Run("deletes existing review", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewReviewRepository(db)

		mock.ExpectExec("DELETE FROM reviews WHERE id").
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing review", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewReviewRepository(db)

		mock.ExpectExec("DELETE FROM reviews WHERE id").
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 3), domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
