package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/outlinedev/outline/internal/middleware"
	appErr "github.com/outlinedev/outline/internal/pkg/errors"
	"github.com/outlinedev/outline/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", "forbidden")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
	case errors.Is(err, appErr.ErrInvalidFile):
		response.Error(c, http.StatusBadRequest, "invalid_file", "unsupported or oversized file")
	case errors.Is(err, appErr.ErrParseFailed):
		response.Error(c, http.StatusUnprocessableEntity, "parse_failed", "document could not be parsed")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusConflict, "conflict", "conflict")
	case errors.Is(err, appErr.ErrTooMany):
		response.Error(c, http.StatusTooManyRequests, "too_many", "request already in flight")
	case errors.Is(err, appErr.ErrUnavailable):
		response.Error(c, http.StatusBadGateway, "unavailable", "vendor unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}
