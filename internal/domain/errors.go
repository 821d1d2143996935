package domain

import "errors"

var (
	// ErrNotAuthenticated means the request carries no valid identity.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrProfileIncomplete means discovery was attempted before onboarding
	// finished.
	ErrProfileIncomplete = errors.New("profile incomplete")
	// ErrPermissionDenied means the subscription plan does not allow the
	// requested action (travel mode, mode duration).
	ErrPermissionDenied = errors.New("permission denied")
	// ErrQuotaExceeded means a daily quota is exhausted. Non-fatal: the UI
	// surfaces a paywall prompt.
	ErrQuotaExceeded = errors.New("daily quota exceeded")
	// ErrLocationUnavailable means no coordinates could be resolved.
	// Non-fatal: discovery proceeds without distance data.
	ErrLocationUnavailable = errors.New("location unavailable")
	// ErrStoreUnavailable wraps transient backend failures.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrUnderage           = errors.New("must be at least 18 years old")
	ErrReactionNotFound   = errors.New("reaction not found")
	ErrConnectionNotFound = errors.New("connection not found")
	ErrModeNotFound       = errors.New("no active availability mode")
	ErrTravelModeNotFound = errors.New("no active travel mode")

	ErrCannotReactSelf   = errors.New("cannot react to yourself")
	ErrDirectNotAllowed  = errors.New("direct message not allowed for this pair")
	ErrBlocked           = errors.New("users are blocked")
	ErrInvalidGender     = errors.New("invalid gender")
	ErrInvalidIntention  = errors.New("invalid intention")
	ErrInvalidReaction   = errors.New("invalid reaction type")
	ErrInvalidMode       = errors.New("invalid availability mode")
	ErrInvalidDuration   = errors.New("invalid mode duration")
	ErrTooManyInterests  = errors.New("too many interests")
	ErrInvalidPhotoCount = errors.New("profile requires between 1 and 6 photos")
)
