package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/journalist-portfolio-api/internal/repository"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/journalist-portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// respondError maps service and repository errors onto HTTP responses.
// Anything unrecognised is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	var (
		batchErr *service.BatchError
		vErr     validation.ValidationError
		maxErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &batchErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": batchErr.Errors})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": []validation.ValidationError{vErr}})
	case validation.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validation.ToValidationErrors(0, err)})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBatchTooLarge), errors.As(err, &maxErr):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidKey),
		errors.Is(err, repository.ErrUnknownReference),
		errors.Is(err, service.ErrUnknownResource),
		errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, service.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger(c).Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// badRequest answers a body that could not be bound
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

const loggerKey = "logger"

// logger returns the request-scoped logger installed by the logging middleware
func logger(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(zerolog.Logger); ok {
			return &l
		}
	}
	nop := zerolog.Nop()
	return &nop
}
