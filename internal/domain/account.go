package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const shopDomainSuffix = ".myshopify.com"

// Account is a storefront tenant. SerialKey namespaces its settings.
type Account struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Shop      string    `json:"shop" db:"shop"`
	SerialKey string    `json:"serialkey" db:"serialkey"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Plan      string    `json:"plan" db:"plan"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NormalizeShop lowercases a shop domain, strips scheme and trailing slashes
// and appends the myshopify suffix when it is missing.
func NormalizeShop(shop string) string {
	s := strings.ToLower(strings.TrimSpace(shop))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimRight(s, "/")
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, shopDomainSuffix) {
		s += shopDomainSuffix
	}
	return s
}

// AccountRepository defines the interface for tenant account data access
type AccountRepository interface {
	// Create inserts the account and its full settings set in one transaction
	Create(ctx context.Context, account *Account, settings Settings) error

	// GetByShop retrieves the account of a shop domain
	GetByShop(ctx context.Context, shop string) (*Account, error)

	// GetBySerialKey retrieves an account by its credential
	GetBySerialKey(ctx context.Context, serialKey string) (*Account, error)

	// Update changes username and/or email
	Update(ctx context.Context, serialKey string, username, email *string) (*Account, error)

	// DeleteCascade removes reviews, settings and the account in one transaction
	DeleteCascade(ctx context.Context, serialKey string) error
}
