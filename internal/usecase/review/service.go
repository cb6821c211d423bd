package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
	"github.com/Pesokrava/ratingfy/internal/pkg/metrics"
	"github.com/Pesokrava/ratingfy/internal/pkg/validator"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// CacheInvalidator drops cached storefront payloads of a shop
type CacheInvalidator interface {
	InvalidateShop(ctx context.Context, shop string) error
}

// SubmitInput is a storefront submission
type SubmitInput struct {
	Shop         string `validate:"required,max=255"`
	ProductID    string `validate:"required"`
	Star         int    `validate:"min=1,max=5"`
	CustomerName string `validate:"required,max=255"`
	ReviewTitle  string `validate:"required,max=255"`
	Body         string `validate:"required"`
	IsLoggedIn   bool
}

// InsertInput is an administrator-authored review
type InsertInput struct {
	Shop          string `validate:"required,max=255"`
	ProductID     string `validate:"required"`
	Star          int    `validate:"min=1,max=5"`
	CustomerName  string `validate:"required,max=255"`
	CustomerEmail string `validate:"omitempty,email,max=255"`
	ReviewTitle   string `validate:"max=255"`
	Body          string `validate:"required"`
	Status        string
}

// UpdateInput carries a partial edit. ExistingMedia is the subset of the
// current attachments to keep; new uploads are appended after it.
type UpdateInput struct {
	CustomerName  *string
	CustomerEmail *string
	ReviewTitle   *string
	Body          *string
	Star          *int
	Status        *string
	ExistingMedia []string
}

// ListFilter narrows the admin review list
type ListFilter struct {
	ProductID string
	Status    string
}

// Service handles the review lifecycle: submission, moderation and media
type Service struct {
	repo      domain.ReviewRepository
	accounts  domain.AccountRepository
	settings  domain.SettingsRepository
	media     domain.MediaStore
	cache     CacheInvalidator
	publisher EventPublisher
	publicURL string
	logger    *logger.Logger
}

// NewService creates a new review service
func NewService(
	repo domain.ReviewRepository,
	accounts domain.AccountRepository,
	settings domain.SettingsRepository,
	media domain.MediaStore,
	cache CacheInvalidator,
	publisher EventPublisher,
	publicURL string,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		accounts:  accounts,
		settings:  settings,
		media:     media,
		cache:     cache,
		publisher: publisher,
		publicURL: publicURL,
		logger:    log,
	}
}

// Submit records a storefront review in pending status
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Review, error) {
	in.Shop = domain.NormalizeShop(in.Shop)
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.ReviewTitle = strings.TrimSpace(in.ReviewTitle)
	in.Body = strings.TrimSpace(in.Body)

	if err := validator.Get().Struct(in); err != nil {
		s.logger.Debugf("Review submission rejected: %s", validator.Describe(err))
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Describe(err))
	}

	productID, err := domain.ParseProductID(in.ProductID)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByShop(ctx, in.Shop)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to load account", err)
		}
		return nil, err
	}

	enabled, err := s.reviewsEnabled(ctx, account.SerialKey)
	if err != nil {
		s.logger.Error("Failed to load status setting", err)
		return nil, err
	}
	if !enabled {
		return nil, fmt.Errorf("%w: reviews are disabled", domain.ErrInvalidInput)
	}

	author := domain.AuthorGuest
	if in.IsLoggedIn {
		author = domain.AuthorCustomer

		exists, err := s.repo.HasCustomerReview(ctx, in.Shop, productID, in.CustomerName)
		if err != nil {
			s.logger.Error("Failed to check for duplicate review", err)
			return nil, err
		}
		if exists {
			metrics.DuplicateSubmissionsTotal.Inc()
			return nil, domain.ErrDuplicateSubmission
		}
	}

	review := &domain.Review{
		Shop:         in.Shop,
		ProductID:    productID,
		Star:         in.Star,
		Author:       author,
		CustomerName: in.CustomerName,
		ReviewTitle:  in.ReviewTitle,
		Body:         in.Body,
		Status:       domain.StatusPending,
		Media:        []string{},
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, domain.ErrDuplicateSubmission) {
			metrics.DuplicateSubmissionsTotal.Inc()
			return nil, err
		}
		s.logger.Error("Failed to create review", err)
		return nil, err
	}

	metrics.ReviewsCreatedTotal.WithLabelValues(string(author)).Inc()
	s.afterMutation(ctx, domain.EventReviewCreated, review)

	s.logger.WithFields(map[string]interface{}{
		"review_id":  review.ID,
		"shop":       review.Shop,
		"product_id": review.ProductID,
		"author":     review.Author,
	}).Info("Review submitted")

	return s.present(review), nil
}

// Insert creates an administrator review. Attachments are stored before the
// record; if any of them fails nothing is written.
func (s *Service) Insert(ctx context.Context, in InsertInput, files []domain.MediaFile) (*domain.Review, error) {
	in.Shop = domain.NormalizeShop(in.Shop)
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.ReviewTitle = strings.TrimSpace(in.ReviewTitle)
	in.Body = strings.TrimSpace(in.Body)

	if err := validator.Get().Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Describe(err))
	}

	productID, err := domain.ParseProductID(in.ProductID)
	if err != nil {
		return nil, err
	}

	status := domain.StatusApproved
	if strings.TrimSpace(in.Status) != "" {
		status, err = domain.ParseModerationStatus(in.Status)
		if err != nil {
			return nil, err
		}
	}

	paths, err := s.storeMedia(ctx, files)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		Shop:         in.Shop,
		ProductID:    productID,
		Star:         in.Star,
		Author:       domain.AuthorAdministrator,
		CustomerName: in.CustomerName,
		ReviewTitle:  in.ReviewTitle,
		Body:         in.Body,
		Status:       status,
		Media:        paths,
	}
	if in.CustomerEmail != "" {
		review.CustomerEmail = &in.CustomerEmail
	}

	if err := s.repo.Create(ctx, review); err != nil {
		s.logger.Error("Failed to create review", err)
		s.removeMedia(ctx, paths)
		return nil, err
	}

	metrics.ReviewsCreatedTotal.WithLabelValues(string(domain.AuthorAdministrator)).Inc()
	s.afterMutation(ctx, domain.EventReviewCreated, review)

	s.logger.WithFields(map[string]interface{}{
		"review_id":  review.ID,
		"shop":       review.Shop,
		"product_id": review.ProductID,
		"media":      len(paths),
	}).Info("Review inserted by administrator")

	return s.present(review), nil
}

// Update edits a review of the given shop. Media is replaced by the retained
// existing paths followed by the newly stored uploads.
func (s *Service) Update(ctx context.Context, shop string, id int64, in UpdateInput, files []domain.MediaFile) (*domain.Review, error) {
	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.ownedReview(ctx, shop, id)
	if err != nil {
		return nil, err
	}

	retained := s.retainedMedia(existing.Media, in.ExistingMedia)

	added, err := s.storeMedia(ctx, files)
	if err != nil {
		return nil, err
	}

	merged := domain.MergeMedia(retained, added)
	patch.Media = &merged

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to update review", err)
		}
		s.removeMedia(ctx, added)
		return nil, err
	}

	s.removeMedia(ctx, dropped(existing.Media, merged))

	metrics.ReviewMutationsTotal.WithLabelValues("update").Inc()
	s.afterMutation(ctx, domain.EventReviewUpdated, updated)

	s.logger.WithFields(map[string]interface{}{
		"review_id": id,
		"shop":      updated.Shop,
		"status":    updated.Status,
	}).Info("Review updated")

	return s.present(updated), nil
}

// Delete permanently removes a review of the given shop and returns its id
func (s *Service) Delete(ctx context.Context, shop string, id int64) (int64, error) {
	existing, err := s.ownedReview(ctx, shop, id)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to delete review", err)
		}
		return 0, err
	}

	s.removeMedia(ctx, existing.Media)

	metrics.ReviewMutationsTotal.WithLabelValues("delete").Inc()
	s.afterMutation(ctx, domain.EventReviewDeleted, existing)

	s.logger.WithFields(map[string]interface{}{
		"review_id": id,
		"shop":      existing.Shop,
	}).Info("Review deleted")

	return id, nil
}

// List returns every review of a shop, newest first
func (s *Service) List(ctx context.Context, shop string, filter ListFilter) ([]*domain.Review, error) {
	query := domain.ReviewFilter{Shop: domain.NormalizeShop(shop)}

	if strings.TrimSpace(filter.ProductID) != "" {
		productID, err := domain.ParseProductID(filter.ProductID)
		if err != nil {
			return nil, err
		}
		query.ProductID = productID
	}

	if strings.TrimSpace(filter.Status) != "" {
		status, err := domain.ParseModerationStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		query.Status = status
	}

	reviews, err := s.repo.FindMany(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list reviews", err)
		return nil, err
	}

	out := make([]*domain.Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, s.present(r))
	}
	return out, nil
}

func buildPatch(in UpdateInput) (domain.ReviewPatch, error) {
	var patch domain.ReviewPatch

	if in.Star != nil {
		if *in.Star < 1 || *in.Star > 5 {
			return patch, fmt.Errorf("%w: star must be between 1 and 5", domain.ErrInvalidInput)
		}
		patch.Star = in.Star
	}

	if in.Status != nil {
		status, err := domain.ParseModerationStatus(*in.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}

	var err error
	if patch.CustomerName, err = trimmedRequired("customerName", in.CustomerName); err != nil {
		return patch, err
	}
	if patch.Body, err = trimmedRequired("review", in.Body); err != nil {
		return patch, err
	}

	if in.ReviewTitle != nil {
		title := strings.TrimSpace(*in.ReviewTitle)
		patch.ReviewTitle = &title
	}

	if in.CustomerEmail != nil {
		email := strings.TrimSpace(*in.CustomerEmail)
		if email != "" {
			if err := validator.Get().Var(email, "email"); err != nil {
				return patch, fmt.Errorf("%w: customerEmail must be a valid email", domain.ErrInvalidInput)
			}
		}
		patch.CustomerEmail = &email
	}

	return patch, nil
}

func trimmedRequired(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	}
	return &trimmed, nil
}

// ownedReview hides reviews of other shops behind ErrNotFound
func (s *Service) ownedReview(ctx context.Context, shop string, id int64) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Review not found: %d", id)
		} else {
			s.logger.Error("Failed to get review", err)
		}
		return nil, err
	}

	if review.Shop != domain.NormalizeShop(shop) {
		s.logger.Debugf("Review %d does not belong to %s", id, shop)
		return nil, domain.ErrNotFound
	}

	return review, nil
}

// retainedMedia maps client-supplied paths, which may carry the public base
// URL, back to stored paths and keeps only those the review already has.
func (s *Service) retainedMedia(current, requested []string) []string {
	owned := make(map[string]struct{}, len(current))
	for _, p := range current {
		owned[p] = struct{}{}
	}

	kept := make([]string, 0, len(requested))
	for _, p := range requested {
		p = domain.RelativeMediaPath(s.publicURL, strings.TrimSpace(p))
		if _, ok := owned[p]; ok {
			kept = append(kept, p)
			continue
		}
		// legacy rows may hold paths without the leading slash
		if bare := strings.TrimPrefix(p, "/"); bare != p {
			if _, ok := owned[bare]; ok {
				kept = append(kept, bare)
			}
		}
	}
	return domain.MergeMedia(kept, nil)
}

// storeMedia persists accepted files in order. On failure the files already
// stored are removed and the error is returned.
func (s *Service) storeMedia(ctx context.Context, files []domain.MediaFile) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if !domain.AcceptMedia(f) {
			metrics.MediaRejectedTotal.Inc()
			s.logger.Debugf("Dropping attachment %q (%s, %d bytes)", f.Name, f.ContentType, len(f.Data))
			continue
		}

		p, err := s.media.Store(ctx, f)
		if err != nil {
			s.logger.Error("Failed to store attachment", err)
			s.removeMedia(ctx, paths)
			if !errors.Is(err, domain.ErrUpstreamUnavailable) {
				err = fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
			}
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *Service) removeMedia(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.media.Remove(ctx, p); err != nil {
			s.logger.Warnf("Failed to remove attachment %s: %v", p, err)
		}
	}
}

func dropped(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, p := range after {
		keep[p] = struct{}{}
	}
	var out []string
	for _, p := range before {
		if _, ok := keep[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// present returns a copy with media rewritten to absolute URLs
func (s *Service) present(r *domain.Review) *domain.Review {
	out := *r
	out.Media = domain.ResolveMediaURLs(s.publicURL, r.Media)
	return &out
}

// reviewsEnabled reads the kill switch; an absent key means enabled
func (s *Service) reviewsEnabled(ctx context.Context, credential string) (bool, error) {
	value, ok, err := s.settings.Get(ctx, credential, domain.SettingStatus)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return domain.Settings{Status: value}.Enabled(), nil
}

// afterMutation invalidates the storefront cache and publishes the event.
// Neither can fail the request.
func (s *Service) afterMutation(ctx context.Context, eventType string, review *domain.Review) {
	if s.cache != nil {
		if err := s.cache.InvalidateShop(ctx, review.Shop); err != nil {
			s.logger.Warnf("Failed to invalidate visibility cache for %s: %v", review.Shop, err)
		}
	}

	s.publishEvent(eventType, review)
}

// publishEvent publishes a review event (non-blocking)
func (s *Service) publishEvent(eventType string, review *domain.Review) {
	if s.publisher == nil {
		return
	}

	event := domain.ReviewEvent{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Shop:      review.Shop,
		ProductID: review.ProductID,
		ReviewID:  review.ID,
		Status:    review.Status,
		Author:    review.Author,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for review %d", review.ID)
		return
	}

	go func() {
		if err := s.publisher.Publish(context.Background(), domain.SubjectReviewEvents, data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for review %d", review.ID)
		}
	}()
}
