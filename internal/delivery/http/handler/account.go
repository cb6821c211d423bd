package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Pesokrava/ratingfy/internal/delivery/http/middleware"
	"github.com/Pesokrava/ratingfy/internal/delivery/http/request"
	"github.com/Pesokrava/ratingfy/internal/delivery/http/response"
	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
	"github.com/Pesokrava/ratingfy/internal/usecase/account"
)

// AccountHandler handles tenant account and settings endpoints
type AccountHandler struct {
	service *account.Service
	logger  *logger.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service *account.Service, log *logger.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  log,
	}
}

// CreateAccountRequest represents the request body for registering the shop
type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// EditAccountRequest represents the request body for editing contact details
type EditAccountRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// DeleteAccountRequest carries the credential confirming a destructive call
type DeleteAccountRequest struct {
	SerialKey string `json:"serialkey"`
}

// UpdateSettingsRequest represents the request body for changing settings.
// Empty fields keep their current value.
type UpdateSettingsRequest struct {
	SerialKey            string `json:"serialkey"`
	Status               string `json:"status"`
	DisplayStyle         string `json:"displayStyle"`
	ReviewLimit          string `json:"reviewLimit"`
	ReviewDisplayHeading string `json:"reviewDisplayHeading"`
	ReviewFormHeading    string `json:"reviewFormHeading"`
}

// Get handles GET /api/v1/admin/account
// @Summary Get account
// @Tags Account
// @Produce json
// @Security SessionToken
// @Success 200 {object} map[string]interface{} "Account"
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 404 {object} map[string]string "Shop is not registered"
// @Router /admin/account [get]
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())

	acc, err := h.service.Get(r.Context(), shop)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, acc)
}

// Create handles POST /api/v1/admin/account
// @Summary Register the shop
// @Description Creates the account with default settings. A registered shop gets its account back with 200.
// @Tags Account
// @Accept json
// @Produce json
// @Security SessionToken
// @Param account body CreateAccountRequest true "Contact details"
// @Success 201 {object} map[string]interface{} "Account created"
// @Success 200 {object} map[string]interface{} "Account already existed"
// @Failure 400 {object} map[string]string "Validation failed"
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Router /admin/account [post]
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())

	var req CreateAccountRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}

	acc, created, err := h.service.Create(r.Context(), account.CreateInput{
		Shop:     shop,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if created {
		response.Created(w, acc)
		return
	}
	response.Success(w, acc)
}

// Edit handles PUT /api/v1/admin/account
// @Summary Edit account
// @Tags Account
// @Accept json
// @Produce json
// @Security SessionToken
// @Param account body EditAccountRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Account updated"
// @Failure 400 {object} map[string]string "Validation failed"
// @Failure 404 {object} map[string]string "Shop is not registered"
// @Router /admin/account [put]
func (h *AccountHandler) Edit(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())

	var req EditAccountRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}

	acc, err := h.service.Edit(r.Context(), shop, account.EditInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, acc)
}

// Delete handles DELETE /api/v1/admin/account
// @Summary Delete account
// @Description Removes the account with all its settings and reviews in one transaction
// @Tags Account
// @Accept json
// @Produce json
// @Security SessionToken
// @Param serialkey query string false "Account serial key (or JSON body)"
// @Success 200 {object} map[string]interface{} "Account deleted"
// @Failure 401 {object} map[string]string "Serial key does not match"
// @Failure 404 {object} map[string]string "Shop is not registered"
// @Router /admin/account [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())

	serialKey := r.URL.Query().Get("serialkey")
	if serialKey == "" {
		var req DeleteAccountRequest
		if err := request.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(w, "Invalid request body", err)
			return
		}
		serialKey = req.SerialKey
	}

	if err := h.service.Delete(r.Context(), shop, serialKey); err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Account and all related data deleted",
	})
}

// Settings handles GET /api/v1/admin/settings
// @Summary Get settings
// @Tags Account
// @Produce json
// @Security SessionToken
// @Success 200 {object} map[string]interface{} "Settings"
// @Failure 404 {object} map[string]string "Shop is not registered"
// @Router /admin/settings [get]
func (h *AccountHandler) Settings(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())

	settings, err := h.service.Settings(r.Context(), shop)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, settings)
}

// UpdateSettings handles PUT /api/v1/admin/settings
// @Summary Update settings
// @Description Overlays the non-empty fields on the current settings
// @Tags Account
// @Accept json
// @Produce json
// @Security SessionToken
// @Param settings body UpdateSettingsRequest true "Settings"
// @Success 200 {object} map[string]interface{} "Settings saved"
// @Failure 400 {object} map[string]string "Validation failed"
// @Failure 401 {object} map[string]string "Serial key does not match"
// @Router /admin/settings [put]
func (h *AccountHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	shop, _ := middleware.ShopFromContext(r.Context())

	var req UpdateSettingsRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}

	saved, err := h.service.UpdateSettings(r.Context(), shop, req.SerialKey, domain.Settings{
		Status:               req.Status,
		DisplayStyle:         req.DisplayStyle,
		ReviewLimit:          req.ReviewLimit,
		ReviewDisplayHeading: req.ReviewDisplayHeading,
		ReviewFormHeading:    req.ReviewFormHeading,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, saved)
}
