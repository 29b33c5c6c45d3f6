package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openagora/agora/internal/forum"
)

// statusForError maps service-layer sentinel errors to HTTP status codes.
// Anything unmapped is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, forum.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, forum.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, forum.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, forum.ErrInvalidVoteValue), errors.Is(err, forum.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, forum.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a service error as a JSON response. Internal errors
// are masked so database details never reach clients.
func writeError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}
