package worker

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
)

// CacheInvalidator drops cached storefront payloads of a shop
type CacheInvalidator interface {
	InvalidateShop(ctx context.Context, shop string) error
}

// Calculator recomputes product rating summaries from approved reviews
type Calculator struct {
	db     *sqlx.DB
	cache  CacheInvalidator
	logger *logger.Logger
}

// NewCalculator creates a new rating calculator. cache may be nil.
func NewCalculator(db *sqlx.DB, cache CacheInvalidator, logger *logger.Logger) *Calculator {
	return &Calculator{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// Recalculate rewrites the summary of one product from scratch. Only approved
// reviews count; a product with none gets a zero summary.
func (c *Calculator) Recalculate(ctx context.Context, shop string, productID domain.ProductID) error {
	query := `
		INSERT INTO product_ratings (shop, product_id, average_rating, review_count, updated_at)
		SELECT $1::varchar, $2::numeric,
			COALESCE(ROUND(AVG(star)::numeric, 1), 0),
			COUNT(*),
			NOW()
		FROM reviews
		WHERE shop = $1 AND product_id = $2 AND status = $3
		ON CONFLICT (shop, product_id) DO UPDATE SET
			average_rating = EXCLUDED.average_rating,
			review_count = EXCLUDED.review_count,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := c.db.ExecContext(ctx, query, shop, productID, domain.StatusApproved); err != nil {
		return fmt.Errorf("failed to update rating summary: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.InvalidateShop(ctx, shop); err != nil {
			c.logger.Warnf("Failed to invalidate visibility cache for %s: %v", shop, err)
		}
	}

	c.logger.WithFields(map[string]any{
		"shop":       shop,
		"product_id": productID.String(),
	}).Info("Updated product rating summary")

	return nil
}
