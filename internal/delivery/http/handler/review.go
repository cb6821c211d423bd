package handler

import (
	"net/http"

	"github.com/Pesokrava/ratingfy/internal/delivery/http/middleware"
	"github.com/Pesokrava/ratingfy/internal/delivery/http/request"
	"github.com/Pesokrava/ratingfy/internal/delivery/http/response"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
	"github.com/Pesokrava/ratingfy/internal/usecase/review"
)

// ReviewHandler handles the admin review endpoints
type ReviewHandler struct {
	service        *review.Service
	maxUploadBytes int64
	logger         *logger.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service *review.Service, maxUploadBytes int64, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         log,
	}
}

// InsertReviewForm represents the multipart fields of an admin review
type InsertReviewForm struct {
	ProductID     string `schema:"productId"`
	CustomerName  string `schema:"customerName"`
	CustomerEmail string `schema:"customerEmail"`
	ReviewTitle   string `schema:"reviewTitle"`
	Review        string `schema:"review"`
	Star          int    `schema:"star"`
	Status        string `schema:"status"`
}

// UpdateReviewForm represents the multipart fields of a review edit. Absent
// fields are left unchanged.
type UpdateReviewForm struct {
	CustomerName  *string `schema:"customerName"`
	CustomerEmail *string `schema:"customerEmail"`
	ReviewTitle   *string `schema:"reviewTitle"`
	Review        *string `schema:"review"`
	Star          *int    `schema:"star"`
	Status        *string `schema:"status"`
}

// List handles GET /api/v1/admin/reviews
// @Summary List reviews
// @Description Every review of the authenticated shop, newest first
// @Tags Admin
// @Produce json
// @Security SessionToken
// @Param product_id query string false "Shopify product ID"
// @Param status query string false "pending, approved or not approved"
// @Success 200 {object} map[string]interface{} "Reviews"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Router /admin/reviews [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())
	query := r.URL.Query()

	reviews, err := h.service.List(r.Context(), shop, review.ListFilter{
		ProductID: query.Get("product_id"),
		Status:    query.Get("status"),
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, reviews)
}

// Insert handles POST /api/v1/admin/reviews
// @Summary Insert a review
// @Description Creates an administrator review with optional image/video attachments. Status defaults to approved.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security SessionToken
// @Param productId formData string true "Shopify product ID"
// @Param customerName formData string true "Displayed author name"
// @Param customerEmail formData string false "Author email"
// @Param reviewTitle formData string false "Title"
// @Param review formData string true "Body"
// @Param star formData int true "Rating between 1 and 5"
// @Param status formData string false "Moderation status"
// @Param media formData file false "Attachments"
// @Success 201 {object} map[string]interface{} "Review created"
// @Failure 400 {object} map[string]string "Validation failed"
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 500 {object} map[string]string "Media store or database failure"
// @Router /admin/reviews [post]
func (h *ReviewHandler) Insert(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())

	values, err := request.ParseForm(w, r, h.maxUploadBytes)
	if err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	request.DropBlank(values, "star")

	var form InsertReviewForm
	if err := request.DecodeForm(values, &form); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}

	files, err := request.MediaFiles(r)
	if err != nil {
		badRequest(w, "Invalid attachment", err)
		return
	}

	created, err := h.service.Insert(r.Context(), review.InsertInput{
		Shop:          shop,
		ProductID:     form.ProductID,
		Star:          form.Star,
		CustomerName:  form.CustomerName,
		CustomerEmail: form.CustomerEmail,
		ReviewTitle:   form.ReviewTitle,
		Body:          form.Review,
		Status:        form.Status,
	}, files)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"rating":  created,
	})
}

// Update handles POST|PUT /api/v1/admin/reviews/{id}
// @Summary Update a review
// @Description Partial edit. Media becomes existingMedia followed by the new uploads.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security SessionToken
// @Param id path int true "Review ID"
// @Param customerName formData string false "Displayed author name"
// @Param customerEmail formData string false "Author email"
// @Param reviewTitle formData string false "Title"
// @Param review formData string false "Body"
// @Param star formData int false "Rating between 1 and 5"
// @Param status formData string false "Moderation status"
// @Param existingMedia formData string false "JSON array of attachment paths to keep"
// @Param media formData file false "New attachments"
// @Success 200 {object} map[string]interface{} "Review updated"
// @Failure 400 {object} map[string]string "Validation failed"
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 404 {object} map[string]string "Review not found"
// @Router /admin/reviews/{id} [put]
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())

	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		badRequest(w, "Invalid review ID", err)
		return
	}

	values, err := request.ParseForm(w, r, h.maxUploadBytes)
	if err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	request.DropBlank(values, "star", "status")

	var form UpdateReviewForm
	if err := request.DecodeForm(values, &form); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}

	existing, err := request.ExistingMedia(values)
	if err != nil {
		badRequest(w, "Invalid existingMedia", err)
		return
	}

	files, err := request.MediaFiles(r)
	if err != nil {
		badRequest(w, "Invalid attachment", err)
		return
	}

	updated, err := h.service.Update(r.Context(), shop, id, review.UpdateInput{
		CustomerName:  form.CustomerName,
		CustomerEmail: form.CustomerEmail,
		ReviewTitle:   form.ReviewTitle,
		Body:          form.Review,
		Star:          form.Star,
		Status:        form.Status,
		ExistingMedia: existing,
	}, files)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"rating":  updated,
	})
}

// Delete handles DELETE /api/v1/admin/reviews/{id}
// @Summary Delete a review
// @Description Permanently removes a review and its attachments
// @Tags Admin
// @Produce json
// @Security SessionToken
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{} "Review deleted"
// @Failure 400 {object} map[string]string "Invalid review ID"
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 404 {object} map[string]string "Review not found"
// @Router /admin/reviews/{id} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())

	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		badRequest(w, "Invalid review ID", err)
		return
	}

	deletedID, err := h.service.Delete(r.Context(), shop, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Review deleted successfully",
		"deletedId": deletedID,
	})
}
