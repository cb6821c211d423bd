package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

const reviewColumns = `id, shop, product_id, star, author, customer_name, customer_email,
	review_title, review, status, legacy_media, created_at, updated_at`

// ReviewRepository implements domain.ReviewRepository for PostgreSQL
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new PostgreSQL review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts the review and its media rows in one transaction
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO reviews (shop, product_id, star, author, customer_name, customer_email, review_title, review, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowxContext(
		ctx,
		query,
		review.Shop,
		review.ProductID,
		review.Star,
		review.Author,
		review.CustomerName,
		review.CustomerEmail,
		review.ReviewTitle,
		review.Body,
		review.Status,
	).Scan(
		&review.ID,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSubmission
		}
		return err
	}

	if err := insertMedia(ctx, tx, review.ID, review.Media); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review: %w", err)
	}

	if review.Media == nil {
		review.Media = []string{}
	}
	return nil
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var review domain.Review
	err := r.db.GetContext(ctx, &review, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	reviews := []*domain.Review{&review}
	if err := r.loadMedia(ctx, reviews); err != nil {
		return nil, err
	}

	return &review, nil
}

// FindMany returns reviews matching the filter ordered newest first
func (r *ReviewRepository) FindMany(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, error) {
	conditions := []string{"shop = $1"}
	args := []interface{}{filter.Shop}

	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE ` +
		strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	reviews := []*domain.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, err
	}

	if err := r.loadMedia(ctx, reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}

// HasCustomerReview reports whether a logged-in customer already reviewed the product
func (r *ReviewRepository) HasCustomerReview(ctx context.Context, shop string, productID domain.ProductID, customerName string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reviews
			WHERE shop = $1 AND product_id = $2 AND customer_name = $3 AND author = $4
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, shop, productID, customerName, domain.AuthorCustomer)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Update applies the non-nil fields of the patch. A non-nil Media replaces
// the whole attachment list.
func (r *ReviewRepository) Update(ctx context.Context, id int64, patch domain.ReviewPatch) (*domain.Review, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.CustomerName != nil {
		add("customer_name", *patch.CustomerName)
	}
	if patch.CustomerEmail != nil {
		add("customer_email", *patch.CustomerEmail)
	}
	if patch.ReviewTitle != nil {
		add("review_title", *patch.ReviewTitle)
	}
	if patch.Body != nil {
		add("review", *patch.Body)
	}
	if patch.Star != nil {
		add("star", *patch.Star)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Media != nil {
		sets = append(sets, "legacy_media = NULL")
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE reviews SET %s WHERE id = $%d RETURNING id`, strings.Join(sets, ", "), len(args))

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var updatedID int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateSubmission
		}
		return nil, err
	}

	if patch.Media != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM review_media WHERE review_id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to clear media: %w", err)
		}
		if err := insertMedia(ctx, tx, id, *patch.Media); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review update: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete physically removes a review; media rows cascade
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// loadMedia attaches ordered media to each review. Reviews written before the
// review_media table fall back to the legacy column.
func (r *ReviewRepository) loadMedia(ctx context.Context, reviews []*domain.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(reviews))
	byID := make(map[int64]*domain.Review, len(reviews))
	for _, rv := range reviews {
		rv.Media = []string{}
		ids = append(ids, rv.ID)
		byID[rv.ID] = rv
	}

	query := `
		SELECT review_id, path FROM review_media
		WHERE review_id = ANY($1)
		ORDER BY review_id, position
	`

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load media: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reviewID int64
		var path string
		if err := rows.Scan(&reviewID, &path); err != nil {
			return fmt.Errorf("failed to scan media: %w", err)
		}
		if rv, ok := byID[reviewID]; ok {
			rv.Media = append(rv.Media, path)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, rv := range reviews {
		if len(rv.Media) == 0 && rv.LegacyMedia.Valid {
			if legacy := domain.DecodeLegacyMedia(rv.LegacyMedia.String); legacy != nil {
				rv.Media = legacy
			}
		}
	}

	return nil
}

func insertMedia(ctx context.Context, tx *sqlx.Tx, reviewID int64, media []string) error {
	if len(media) == 0 {
		return nil
	}

	query := `
		INSERT INTO review_media (review_id, position, path)
		SELECT $1, m.ord - 1, m.path
		FROM unnest($2::text[]) WITH ORDINALITY AS m(path, ord)
	`

	if _, err := tx.ExecContext(ctx, query, reviewID, pq.Array(media)); err != nil {
		return fmt.Errorf("failed to insert media: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
