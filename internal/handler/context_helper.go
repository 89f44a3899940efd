package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/middleware"
	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

// currentClaims returns the JWT claims attached by the auth middleware.
func currentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}

// actorName returns the username for audit fields, empty when anonymous.
func actorName(c *gin.Context) string {
	if claims, ok := currentClaims(c); ok {
		return claims.Username
	}
	return ""
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id")
	}
	return id, nil
}
