package maileroo

import "github.com/maileroo/maileroo-go-sdk/internal/apierrors"

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrInvalidArgument is matched by every error caused by caller input.
	// These are raised before any network call and are never retried.
	ErrInvalidArgument = apierrors.ErrInvalidArgument

	// ErrInvalidState is matched when a response is not valid JSON or lacks
	// the expected envelope or data shape.
	ErrInvalidState = apierrors.ErrInvalidState

	// ErrUnauthorized is matched by an APIError with status 401 or 403.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrNotFound is matched by an APIError with status 404.
	ErrNotFound = apierrors.ErrNotFound

	// ErrRateLimited is matched by an APIError with status 429.
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrTimeout is matched when a call exceeds the client timeout.
	ErrTimeout = apierrors.ErrTimeout
)

type (
	// ValidationError is caller input that violates a structural or size
	// constraint. Field names the offending field, e.g. "messages[3].to".
	ValidationError = apierrors.ValidationError

	// StateError is a response the client could not interpret.
	StateError = apierrors.StateError

	// APIError is a failure reported by the API with "success": false.
	// Message carries the server's message verbatim.
	APIError = apierrors.APIError

	// NetworkError is a transport failure; no response was received.
	NetworkError = apierrors.NetworkError

	// TimeoutError is returned when a call exceeds the client timeout.
	TimeoutError = apierrors.TimeoutError
)
