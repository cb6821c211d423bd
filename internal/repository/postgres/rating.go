package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

// RatingSummaryRepository reads product_ratings rows written by the rating worker
type RatingSummaryRepository struct {
	db *sqlx.DB
}

// NewRatingSummaryRepository creates a new PostgreSQL rating summary repository
func NewRatingSummaryRepository(db *sqlx.DB) *RatingSummaryRepository {
	return &RatingSummaryRepository{db: db}
}

// Get retrieves the summary of one product
func (r *RatingSummaryRepository) Get(ctx context.Context, shop string, productID domain.ProductID) (*domain.RatingSummary, error) {
	query := `
		SELECT shop, product_id, average_rating, review_count, updated_at
		FROM product_ratings
		WHERE shop = $1 AND product_id = $2
	`

	var summary domain.RatingSummary
	err := r.db.GetContext(ctx, &summary, query, shop, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &summary, nil
}
