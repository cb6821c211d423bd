package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

const accountColumns = `id, shop, serialkey, username, email, plan, created_at, updated_at`

// AccountRepository implements domain.AccountRepository for PostgreSQL
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts the account together with its settings
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account, settings domain.Settings) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO accounts (id, shop, serialkey, username, email, plan)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowxContext(
		ctx,
		query,
		account.ID,
		account.Shop,
		account.SerialKey,
		account.Username,
		account.Email,
		account.Plan,
	).Scan(
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}

	if err := upsertSettings(ctx, tx, account.SerialKey, settings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account: %w", err)
	}

	return nil
}

// GetByShop retrieves the account of a shop
func (r *AccountRepository) GetByShop(ctx context.Context, shop string) (*domain.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE shop = $1`, shop)
}

// GetBySerialKey retrieves an account by its credential
func (r *AccountRepository) GetBySerialKey(ctx context.Context, serialKey string) (*domain.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE serialkey = $1`, serialKey)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Account, error) {
	var account domain.Account
	err := r.db.GetContext(ctx, &account, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &account, nil
}

// Update changes the username and/or email; nil leaves a field as is
func (r *AccountRepository) Update(ctx context.Context, serialKey string, username, email *string) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET username = COALESCE($2, username),
		    email = COALESCE($3, email),
		    updated_at = NOW()
		WHERE serialkey = $1
		RETURNING ` + accountColumns

	var account domain.Account
	err := r.db.QueryRowxContext(ctx, query, serialKey, username, email).StructScan(&account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &account, nil
}

// DeleteCascade removes the tenant's reviews, summaries, settings and
// account. Either all of it goes or none.
func (r *AccountRepository) DeleteCascade(ctx context.Context, serialKey string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var shop string
	err = tx.GetContext(ctx, &shop, `SELECT shop FROM accounts WHERE serialkey = $1 FOR UPDATE`, serialKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE shop = $1`, shop); err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_ratings WHERE shop = $1`, shop); err != nil {
		return fmt.Errorf("failed to delete rating summaries: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE key = ANY($1)`, pq.Array(domain.SettingKeys(serialKey))); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE serialkey = $1`, serialKey); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account deletion: %w", err)
	}

	return nil
}
