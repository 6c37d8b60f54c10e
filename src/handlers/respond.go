package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"production-ledger/src/models"
)

// respondError maps the engine's typed errors onto HTTP statuses. Nothing here
// is fatal; every failure is a result the caller can act on.
func respondError(c *gin.Context, err error) {
	var authErr *models.AuthorizationRequiredError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":      authErr.Error(),
			"account_id": authErr.AccountID,
			"shortfall":  authErr.Shortfall,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrFormulaNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrAccountNotFound),
		errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, models.ErrDuplicateTransaction),
		errors.Is(err, models.ErrOrderFinalized),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrOrderHasStockEffects):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, models.ErrInvalidWeighing),
		errors.Is(err, models.ErrUnsupportedUnit),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
