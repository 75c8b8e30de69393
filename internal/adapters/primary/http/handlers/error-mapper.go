package handlers

import (
	"errors"
	"net/http"

	"akiya-analysis-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrAreaNotFound),
		errors.Is(err, domain.ErrBusinessNotFound),
		errors.Is(err, domain.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrNegativeFactor),
		errors.Is(err, domain.ErrNegativeEpsilon):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// History is an optional capability
	case errors.Is(err, domain.ErrHistoryDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
