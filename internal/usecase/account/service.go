package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
	"github.com/Pesokrava/ratingfy/internal/pkg/validator"
)

const defaultPlan = "free"

// CacheInvalidator drops cached storefront payloads of a shop
type CacheInvalidator interface {
	InvalidateShop(ctx context.Context, shop string) error
}

// CreateInput registers a tenant
type CreateInput struct {
	Shop     string `validate:"required,max=255"`
	Username string `validate:"required,max=255"`
	Email    string `validate:"required,email,max=255"`
}

// EditInput changes contact details; nil fields are kept
type EditInput struct {
	Username *string `validate:"omitempty,min=1,max=255"`
	Email    *string `validate:"omitempty,email,max=255"`
}

// Service manages tenant accounts and their settings
type Service struct {
	repo     domain.AccountRepository
	settings domain.SettingsRepository
	cache    CacheInvalidator
	logger   *logger.Logger
}

// NewService creates a new account service
func NewService(repo domain.AccountRepository, settings domain.SettingsRepository, cache CacheInvalidator, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		cache:    cache,
		logger:   log,
	}
}

// Create registers the shop with default settings. An already registered
// shop gets its existing account back and created=false.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Account, bool, error) {
	in.Shop = domain.NormalizeShop(in.Shop)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validator.Get().Struct(in); err != nil {
		return nil, false, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Describe(err))
	}

	existing, err := s.repo.GetByShop(ctx, in.Shop)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("Failed to look up account", err)
		return nil, false, err
	}

	account := &domain.Account{
		ID:        uuid.New(),
		Shop:      in.Shop,
		SerialKey: newSerialKey(),
		Username:  in.Username,
		Email:     in.Email,
		Plan:      defaultPlan,
	}

	if err := s.repo.Create(ctx, account, domain.DefaultSettings()); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// lost a race with a concurrent install
			existing, getErr := s.repo.GetByShop(ctx, in.Shop)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		s.logger.Error("Failed to create account", err)
		return nil, false, err
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": account.ID,
		"shop":       account.Shop,
	}).Info("Account created")

	return account, true, nil
}

// Get returns the account of a shop
func (s *Service) Get(ctx context.Context, shop string) (*domain.Account, error) {
	account, err := s.repo.GetByShop(ctx, domain.NormalizeShop(shop))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to get account", err)
		}
		return nil, err
	}
	return account, nil
}

// Edit updates username and/or email of a shop's account
func (s *Service) Edit(ctx context.Context, shop string, in EditInput) (*domain.Account, error) {
	in.Username = trimmed(in.Username)
	in.Email = trimmed(in.Email)

	if in.Username == nil && in.Email == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	if err := validator.Get().Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Describe(err))
	}

	account, err := s.Get(ctx, shop)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, account.SerialKey, in.Username, in.Email)
	if err != nil {
		s.logger.Error("Failed to update account", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": updated.ID,
		"shop":       updated.Shop,
	}).Info("Account updated")

	return updated, nil
}

// Delete removes the account, its settings and all reviews of the shop.
// The caller must present the account's serial key.
func (s *Service) Delete(ctx context.Context, shop, serialKey string) error {
	account, err := s.authorize(ctx, shop, serialKey)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCascade(ctx, account.SerialKey); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to delete account", err)
		}
		return err
	}

	s.invalidate(ctx, account.Shop)

	s.logger.WithFields(map[string]interface{}{
		"account_id": account.ID,
		"shop":       account.Shop,
	}).Info("Account deleted with its settings and reviews")

	return nil
}

// Settings returns the shop's settings with defaults for absent keys
func (s *Service) Settings(ctx context.Context, shop string) (domain.Settings, error) {
	account, err := s.Get(ctx, shop)
	if err != nil {
		return domain.Settings{}, err
	}

	settings, err := s.settings.GetAll(ctx, account.SerialKey)
	if err != nil {
		s.logger.Error("Failed to load settings", err)
		return domain.Settings{}, err
	}
	return settings, nil
}

// UpdateSettings overlays the non-empty fields of update on the current
// settings and writes all five keys at once.
func (s *Service) UpdateSettings(ctx context.Context, shop, serialKey string, update domain.Settings) (domain.Settings, error) {
	account, err := s.authorize(ctx, shop, serialKey)
	if err != nil {
		return domain.Settings{}, err
	}

	current, err := s.settings.GetAll(ctx, account.SerialKey)
	if err != nil {
		s.logger.Error("Failed to load settings", err)
		return domain.Settings{}, err
	}

	for suffix, value := range update.Entries() {
		if v := strings.TrimSpace(value); v != "" {
			current.Set(suffix, v)
		}
	}
	current.ApplyDefaults()

	if err := validator.Get().Struct(current); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Describe(err))
	}

	if err := s.settings.UpsertAll(ctx, account.SerialKey, current); err != nil {
		s.logger.Error("Failed to save settings", err)
		return domain.Settings{}, err
	}

	s.invalidate(ctx, account.Shop)

	s.logger.WithFields(map[string]interface{}{
		"shop":   account.Shop,
		"status": current.Status,
	}).Info("Settings updated")

	return current, nil
}

// authorize loads the shop's account and checks the presented serial key
func (s *Service) authorize(ctx context.Context, shop, serialKey string) (*domain.Account, error) {
	account, err := s.Get(ctx, shop)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(serialKey) == "" || account.SerialKey != strings.TrimSpace(serialKey) {
		return nil, fmt.Errorf("%w: serial key does not match", domain.ErrUnauthorized)
	}
	return account, nil
}

func (s *Service) invalidate(ctx context.Context, shop string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateShop(ctx, shop); err != nil {
		s.logger.Warnf("Failed to invalidate visibility cache for %s: %v", shop, err)
	}
}

func newSerialKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
