package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

// MockReviewRepository is a mock implementation of domain.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil && review.ID == 0 {
		review.ID = 1
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) FindMany(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) HasCustomerReview(ctx context.Context, shop string, productID domain.ProductID, customerName string) (bool, error) {
	args := m.Called(ctx, shop, productID, customerName)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, id int64, patch domain.ReviewPatch) (*domain.Review, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

// MockMediaStore is a mock implementation of domain.MediaStore
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Store(ctx context.Context, file domain.MediaFile) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Remove(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// MockRatingSummaryRepository is a mock implementation of domain.RatingSummaryRepository
type MockRatingSummaryRepository struct {
	mock.Mock
}

func (m *MockRatingSummaryRepository) Get(ctx context.Context, shop string, productID domain.ProductID) (*domain.RatingSummary, error) {
	args := m.Called(ctx, shop, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingSummary), args.Error(1)
}
