package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Pesokrava/ratingfy/internal/delivery/http/response"
	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
)

// handleError maps domain errors to HTTP responses
func handleError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateSubmission):
		response.Error(w, http.StatusBadRequest, "You have already submitted a review for this product.")
	case errors.Is(err, domain.ErrInvalidInput):
		response.ErrorDetails(w, http.StatusBadRequest, "Validation failed", detail(err, domain.ErrInvalidInput))
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrAlreadyExists):
		response.Error(w, http.StatusConflict, "Already exists")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		log.Error("Upstream failure", err)
		response.ErrorDetails(w, http.StatusInternalServerError, "Internal server error", detail(err, domain.ErrUpstreamUnavailable))
	default:
		log.Error("Unhandled error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

// detail strips the sentinel prefix from a wrapped error message
func detail(err, sentinel error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != msg {
		return trimmed
	}
	return msg
}

// badRequest reports malformed transport input
func badRequest(w http.ResponseWriter, message string, err error) {
	response.ErrorDetails(w, http.StatusBadRequest, message, err.Error())
}
