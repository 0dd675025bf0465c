package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"smart_health/internal/authz"
	"smart_health/internal/identity"
	"smart_health/internal/ml"
	"smart_health/internal/models"
	"smart_health/internal/prediction"
	"smart_health/internal/token"
)

// respondError maps service errors onto the HTTP taxonomy: client input
// 400, credential failures 401, authorization failures 403, missing
// records 404, identity conflicts 409, unavailable model 503. Anything
// unrecognised is a 500 and gets logged.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrWeakCredential),
		errors.Is(err, ml.ErrInvalidFeature),
		errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrInvalidCredential),
		errors.Is(err, identity.ErrAccountInactive),
		errors.Is(err, token.ErrExpired),
		errors.Is(err, token.ErrInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, authz.ErrWrongRole),
		errors.Is(err, authz.ErrNotApproved),
		errors.Is(err, authz.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, prediction.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ml.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("unhandled request error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
