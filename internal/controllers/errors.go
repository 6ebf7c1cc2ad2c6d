package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"contactly-be/internal/logger"
	"contactly-be/internal/service"
	"contactly-be/internal/validation"
)

// respondError maps service errors to a status code and an {"error": msg} body.
// Unexpected errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrIncorrectPassword),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMissingID),
		errors.Is(err, service.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrContactNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

func invalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}
