package account

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account, settings domain.Settings) error {
	args := m.Called(ctx, account, settings)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByShop(ctx context.Context, shop string) (*domain.Account, error) {
	args := m.Called(ctx, shop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetBySerialKey(ctx context.Context, serialKey string) (*domain.Account, error) {
	args := m.Called(ctx, serialKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, serialKey string, username, email *string) (*domain.Account, error) {
	args := m.Called(ctx, serialKey, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeleteCascade(ctx context.Context, serialKey string) error {
	args := m.Called(ctx, serialKey)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of domain.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, credential, suffix string) (string, bool, error) {
	args := m.Called(ctx, credential, suffix)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSettingsRepository) GetAll(ctx context.Context, credential string) (domain.Settings, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) UpsertAll(ctx context.Context, credential string, settings domain.Settings) error {
	args := m.Called(ctx, credential, settings)
	return args.Error(0)
}

// MockCache is a mock implementation of CacheInvalidator
type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateShop(ctx context.Context, shop string) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}
