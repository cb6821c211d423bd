package domain

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// ModerationStatus controls whether a review is shown on the storefront
type ModerationStatus string

const (
	StatusPending     ModerationStatus = "pending"
	StatusApproved    ModerationStatus = "approved"
	StatusNotApproved ModerationStatus = "not approved"
)

// ParseModerationStatus accepts the stored spelling and the underscore alias used by API clients
func ParseModerationStatus(s string) (ModerationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "not approved", "not_approved", "not-approved":
		return StatusNotApproved, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// Author classifies who wrote a review
type Author string

const (
	AuthorAdministrator Author = "administrator"
	AuthorCustomer      Author = "customer"
	AuthorGuest         Author = "guest"
)

// ProductID is a Shopify product identifier kept in canonical decimal form.
// Shopify ids exceed int64 in some stores, so the value is never narrowed.
type ProductID string

// maxProductIDDigits matches the NUMERIC(39,0) product_id columns
const maxProductIDDigits = 39

// ParseProductID validates that s is a non-negative integer that fits the
// product_id columns and returns its canonical form
func ParseProductID(s string) (ProductID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "", fmt.Errorf("%w: product id %q is not an integer", ErrInvalidInput, s)
	}
	if n.Sign() < 0 {
		return "", fmt.Errorf("%w: product id %q is negative", ErrInvalidInput, s)
	}
	canonical := n.String()
	if len(canonical) > maxProductIDDigits {
		return "", fmt.Errorf("%w: product id exceeds %d digits", ErrInvalidInput, maxProductIDDigits)
	}
	return ProductID(canonical), nil
}

func (p ProductID) String() string {
	return string(p)
}

// Value implements driver.Valuer
func (p ProductID) Value() (driver.Value, error) {
	return string(p), nil
}

// Scan implements sql.Scanner for NUMERIC columns
func (p *ProductID) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		*p = ProductID(v)
	case string:
		*p = ProductID(v)
	case int64:
		*p = ProductID(fmt.Sprintf("%d", v))
	case nil:
		*p = ""
	default:
		return fmt.Errorf("cannot scan %T into ProductID", src)
	}
	return nil
}

// Review represents one customer or administrator submission for a product
type Review struct {
	ID            int64            `json:"id" db:"id"`
	Shop          string           `json:"shop" db:"shop"`
	ProductID     ProductID        `json:"productId" db:"product_id"`
	Star          int              `json:"star" db:"star"`
	Author        Author           `json:"author" db:"author"`
	CustomerName  string           `json:"customerName" db:"customer_name"`
	CustomerEmail *string          `json:"customerEmail,omitempty" db:"customer_email"`
	ReviewTitle   string           `json:"reviewTitle" db:"review_title"`
	Body          string           `json:"review" db:"review"`
	Status        ModerationStatus `json:"status" db:"status"`
	Media         []string         `json:"media" db:"-"`
	LegacyMedia   sql.NullString   `json:"-" db:"legacy_media"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
}

// ReviewFilter narrows a review query. Zero values mean "any".
type ReviewFilter struct {
	Shop      string
	ProductID ProductID
	Status    ModerationStatus
	Limit     int
}

// ReviewPatch carries the fields of a partial update; nil fields are left untouched
type ReviewPatch struct {
	CustomerName  *string
	CustomerEmail *string
	ReviewTitle   *string
	Body          *string
	Star          *int
	Status        *ModerationStatus
	Media         *[]string
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Create inserts the review and its media, filling ID and timestamps
	Create(ctx context.Context, review *Review) error

	// GetByID retrieves a review with its media
	GetByID(ctx context.Context, id int64) (*Review, error)

	// FindMany returns reviews matching the filter, newest first
	FindMany(ctx context.Context, filter ReviewFilter) ([]*Review, error)

	// HasCustomerReview reports whether a logged-in customer already reviewed the product
	HasCustomerReview(ctx context.Context, shop string, productID ProductID, customerName string) (bool, error)

	// Update applies the patch and returns the stored review
	Update(ctx context.Context, id int64, patch ReviewPatch) (*Review, error)

	// Delete physically removes a review
	Delete(ctx context.Context, id int64) error
}
