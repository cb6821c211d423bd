package domain

import (
	"context"
	"time"
)

// RatingSummary aggregates the approved reviews of one product
type RatingSummary struct {
	Shop          string    `json:"shop" db:"shop"`
	ProductID     ProductID `json:"productId" db:"product_id"`
	AverageRating float64   `json:"averageRating" db:"average_rating"`
	ReviewCount   int       `json:"reviewCount" db:"review_count"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// RatingSummaryRepository reads the summaries maintained by the rating worker
type RatingSummaryRepository interface {
	Get(ctx context.Context, shop string, productID ProductID) (*RatingSummary, error)
}
