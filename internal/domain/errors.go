package domain

import "errors"

var (
	// ErrNotFound is returned when a review, account or tenant does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput is returned when a required field is missing or malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateSubmission is returned when a logged-in customer reviews the same product twice
	ErrDuplicateSubmission = errors.New("review already submitted")

	// ErrUnauthorized is returned when an admin request carries no valid session
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstreamUnavailable is returned when storage or media I/O fails
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
