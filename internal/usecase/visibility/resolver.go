package visibility

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
	"github.com/Pesokrava/ratingfy/internal/pkg/metrics"
)

// Cache stores resolved visibility per shop and product
type Cache interface {
	Get(ctx context.Context, shop string, productID domain.ProductID) (*domain.Visibility, error)
	Set(ctx context.Context, shop string, productID domain.ProductID, visibility *domain.Visibility) error
}

// Resolver decides what the storefront may show for a shop
type Resolver struct {
	reviews   domain.ReviewRepository
	accounts  domain.AccountRepository
	settings  domain.SettingsRepository
	ratings   domain.RatingSummaryRepository
	cache     Cache
	publicURL string
	logger    *logger.Logger
}

// NewResolver creates a new visibility resolver
func NewResolver(
	reviews domain.ReviewRepository,
	accounts domain.AccountRepository,
	settings domain.SettingsRepository,
	ratings domain.RatingSummaryRepository,
	cache Cache,
	publicURL string,
	log *logger.Logger,
) *Resolver {
	return &Resolver{
		reviews:   reviews,
		accounts:  accounts,
		settings:  settings,
		ratings:   ratings,
		cache:     cache,
		publicURL: publicURL,
		logger:    log,
	}
}

// Resolve returns the approved reviews of a shop, optionally for one product.
// A tenant whose status setting is not "enabled" gets Visible=false and no
// reviews whatever their moderation state.
func (r *Resolver) Resolve(ctx context.Context, shop, rawProductID string) (*domain.Visibility, error) {
	shop = domain.NormalizeShop(shop)
	if shop == "" {
		return nil, fmt.Errorf("%w: shop is required", domain.ErrInvalidInput)
	}

	var productID domain.ProductID
	if strings.TrimSpace(rawProductID) != "" {
		var err error
		productID, err = domain.ParseProductID(rawProductID)
		if err != nil {
			return nil, err
		}
	}

	if cached := r.fromCache(ctx, shop, productID); cached != nil {
		return cached, nil
	}

	account, err := r.accounts.GetByShop(ctx, shop)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Error("Failed to load account", err)
		}
		return nil, err
	}

	settings, err := r.settings.GetAll(ctx, account.SerialKey)
	if err != nil {
		r.logger.Error("Failed to load settings", err)
		return nil, err
	}

	visibility := &domain.Visibility{
		Reviews:      []*domain.Review{},
		DisplayStyle: settings.DisplayStyle,
		ReviewLimit:  settings.Limit(),
		Heading:      settings.ReviewDisplayHeading,
		FormHeading:  settings.ReviewFormHeading,
	}

	if settings.Enabled() {
		visibility.Visible = true

		reviews, err := r.reviews.FindMany(ctx, domain.ReviewFilter{
			Shop:      shop,
			ProductID: productID,
			Status:    domain.StatusApproved,
			Limit:     visibility.ReviewLimit,
		})
		if err != nil {
			r.logger.Error("Failed to load approved reviews", err)
			return nil, err
		}

		if len(reviews) > visibility.ReviewLimit {
			reviews = reviews[:visibility.ReviewLimit]
		}

		for _, rv := range reviews {
			visibility.Reviews = append(visibility.Reviews, r.storefrontReview(rv))
		}

		if productID != "" {
			visibility.Summary = r.summary(ctx, shop, productID)
		}
	}

	// A write that invalidates between FindMany and Set leaves this payload
	// stale until the TTL expires.
	if r.cache != nil {
		if err := r.cache.Set(ctx, shop, productID, visibility); err != nil {
			r.logger.Warnf("Failed to cache visibility for %s: %v", shop, err)
		}
	}

	return visibility, nil
}

// FormStatus tells the storefront whether to render the submission form
func (r *Resolver) FormStatus(ctx context.Context, shop string) (*domain.FormStatus, error) {
	shop = domain.NormalizeShop(shop)
	if shop == "" {
		return nil, fmt.Errorf("%w: shop is required", domain.ErrInvalidInput)
	}

	account, err := r.accounts.GetByShop(ctx, shop)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Error("Failed to load account", err)
		}
		return nil, err
	}

	settings, err := r.settings.GetAll(ctx, account.SerialKey)
	if err != nil {
		r.logger.Error("Failed to load settings", err)
		return nil, err
	}

	return &domain.FormStatus{
		RatingStatus:      settings.Enabled(),
		ReviewFormHeading: settings.ReviewFormHeading,
	}, nil
}

func (r *Resolver) fromCache(ctx context.Context, shop string, productID domain.ProductID) *domain.Visibility {
	if r.cache == nil {
		return nil
	}

	visibility, err := r.cache.Get(ctx, shop, productID)
	if err == nil {
		metrics.VisibilityCacheTotal.WithLabelValues("hit").Inc()
		r.logger.Debugf("Cache hit for %s visibility (product=%q)", shop, productID)
		for _, rv := range visibility.Reviews {
			rv.CustomerEmail = nil
		}
		return visibility
	}

	if !errors.Is(err, domain.ErrNotFound) {
		r.logger.Warnf("Visibility cache read failed for %s: %v", shop, err)
	}
	metrics.VisibilityCacheTotal.WithLabelValues("miss").Inc()
	return nil
}

// storefrontReview is the public copy of a review: absolute media URLs and
// no contact email
func (r *Resolver) storefrontReview(rv *domain.Review) *domain.Review {
	out := *rv
	out.CustomerEmail = nil
	out.Media = domain.ResolveMediaURLs(r.publicURL, rv.Media)
	return &out
}

// summary is optional decoration; a missing or unreadable row yields nil
func (r *Resolver) summary(ctx context.Context, shop string, productID domain.ProductID) *domain.RatingSummary {
	if r.ratings == nil {
		return nil
	}

	summary, err := r.ratings.Get(ctx, shop, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warnf("Failed to load rating summary for %s/%s: %v", shop, productID, err)
		}
		return nil
	}
	return summary
}
