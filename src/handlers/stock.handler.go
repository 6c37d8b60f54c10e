package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"production-ledger/src/requests"
	"production-ledger/src/services"
)

type StockHandler struct {
	Service *services.StockService
}

// CreateItem - Register an inventory item
func (h *StockHandler) CreateItem(c *gin.Context) {
	var req requests.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Service.CreateItem(services.CreateItemRequest{
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		Quantity:  req.Quantity,
		Price:     req.Price,
		CostPrice: req.CostPrice,
		MinStock:  req.MinStock,
		Weight:    req.Weight,
		UserID:    req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created successfully",
		"data":    item,
	})
}

// GetItem - Fetch one item with its cached quantity
func (h *StockHandler) GetItem(c *gin.Context) {
	item, err := h.Service.GetItem(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// ListItems - All items
func (h *StockHandler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Service.ListItems()})
}

// LowStock - Items at or below minimum stock
func (h *StockHandler) LowStock(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Service.LowStock()})
}

// Adjust - The single stock mutation endpoint
func (h *StockHandler) Adjust(c *gin.Context) {
	var req requests.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Service.Adjust(c.Param("id"), req.Delta, req.Reason, req.DocumentID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock adjusted successfully",
		"data":    item,
	})
}

// AllMovements - The global append-only movement log
func (h *StockHandler) AllMovements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Service.AllMovements()})
}

// Movements - Append-only movement log for one item
func (h *StockHandler) Movements(c *gin.Context) {
	movements, err := h.Service.MovementsFor(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movements})
}

// BalanceAsOf - Historical balance derived from the movement log
func (h *StockHandler) BalanceAsOf(c *gin.Context) {
	dateStr := c.Query("date")
	at := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", dateStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD or RFC3339"})
				return
			}
		}
		at = parsed
	}

	balance, err := h.Service.BalanceAsOf(c.Param("id"), at)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id":    c.Param("id"),
		"balance_at": balance,
		"as_of_date": at.Format(time.RFC3339),
	})
}

// VerifyConsistency - Audit check: cached quantity vs movement log sum
func (h *StockHandler) VerifyConsistency(c *gin.Context) {
	ok, err := h.Service.VerifyConsistency(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"item_id":    c.Param("id"),
		"consistent": ok,
	})
}
