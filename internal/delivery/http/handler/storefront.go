package handler

import (
	"net/http"

	"github.com/Pesokrava/ratingfy/internal/delivery/http/request"
	"github.com/Pesokrava/ratingfy/internal/delivery/http/response"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
	"github.com/Pesokrava/ratingfy/internal/usecase/review"
	"github.com/Pesokrava/ratingfy/internal/usecase/visibility"
)

// StorefrontHandler serves the public endpoints called from shop themes
type StorefrontHandler struct {
	reviews  *review.Service
	resolver *visibility.Resolver
	logger   *logger.Logger
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(reviews *review.Service, resolver *visibility.Resolver, log *logger.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		reviews:  reviews,
		resolver: resolver,
		logger:   log,
	}
}

// SubmitReviewRequest represents a storefront review submission
type SubmitReviewRequest struct {
	ProductID    request.FlexString `json:"product_id" swaggertype:"string"`
	Star         request.FlexInt    `json:"star" swaggertype:"integer"`
	CustomerName string             `json:"customer_name"`
	ReviewTitle  string             `json:"reviewTitle"`
	Review       string             `json:"review"`
	Shop         string             `json:"shop"`
	IsLoggedIn   bool               `json:"isLoggedIn"`
}

// Submit handles POST /api/v1/storefront/reviews
// @Summary Submit a review
// @Description Records a storefront review in pending status. Logged-in customers may review a product once.
// @Tags Storefront
// @Accept json
// @Produce json
// @Param review body SubmitReviewRequest true "Review details"
// @Success 201 {object} map[string]interface{} "Review submitted"
// @Failure 400 {object} map[string]string "Validation failed or duplicate submission"
// @Failure 404 {object} map[string]string "Unknown shop"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /storefront/reviews [post]
func (h *StorefrontHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitReviewRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}

	created, err := h.reviews.Submit(r.Context(), review.SubmitInput{
		Shop:         req.Shop,
		ProductID:    string(req.ProductID),
		Star:         int(req.Star),
		CustomerName: req.CustomerName,
		ReviewTitle:  req.ReviewTitle,
		Body:         req.Review,
		IsLoggedIn:   req.IsLoggedIn,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Review submitted successfully",
		"review":  created,
	})
}

// Reviews handles GET /api/v1/storefront/reviews
// @Summary Get visible reviews
// @Description Approved reviews of a shop, newest first, limited by the shop's reviewLimit setting. A disabled shop gets visible=false.
// @Tags Storefront
// @Produce json
// @Param shop query string true "Shop domain"
// @Param product_id query string false "Shopify product ID"
// @Success 200 {object} domain.Visibility
// @Failure 400 {object} map[string]string "Missing shop or invalid product ID"
// @Failure 404 {object} map[string]string "Unknown shop"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /storefront/reviews [get]
func (h *StorefrontHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	visibility, err := h.resolver.Resolve(r.Context(), query.Get("shop"), query.Get("product_id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, visibility)
}

// Status handles GET /api/v1/storefront/status
// @Summary Get form status
// @Description Whether the shop accepts reviews and the heading of the submission form
// @Tags Storefront
// @Produce json
// @Param shop query string true "Shop domain"
// @Success 200 {object} domain.FormStatus
// @Failure 400 {object} map[string]string "Missing shop"
// @Failure 404 {object} map[string]string "Unknown shop"
// @Router /storefront/status [get]
func (h *StorefrontHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.resolver.FormStatus(r.Context(), r.URL.Query().Get("shop"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, status)
}
