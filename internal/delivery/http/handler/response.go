package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/delivery/http/middleware"
	"github.com/shyapp/shy-backend/internal/domain"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authedUser pulls the authenticated user id or writes a 401 and reports
// false.
func authedUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

// writeError maps domain errors onto HTTP statuses. Unknown errors become
// opaque 500s; the handler logs details, the client gets none.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, domain.ErrDirectNotAllowed),
		errors.Is(err, domain.ErrBlocked):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrQuotaExceeded):
		// 402 drives the paywall prompt on the client.
		c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrReactionNotFound),
		errors.Is(err, domain.ErrConnectionNotFound),
		errors.Is(err, domain.ErrModeNotFound),
		errors.Is(err, domain.ErrTravelModeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProfileExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProfileIncomplete),
		errors.Is(err, domain.ErrUnderage),
		errors.Is(err, domain.ErrCannotReactSelf),
		errors.Is(err, domain.ErrInvalidGender),
		errors.Is(err, domain.ErrInvalidIntention),
		errors.Is(err, domain.ErrInvalidReaction),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrTooManyInterests),
		errors.Is(err, domain.ErrInvalidPhotoCount),
		errors.Is(err, domain.ErrLocationUnavailable):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// pathUserID parses a uuid path parameter or writes a 400.
func pathUserID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}
