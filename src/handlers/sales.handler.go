package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"production-ledger/src/mirror"
	"production-ledger/src/models"
	"production-ledger/src/requests"
	"production-ledger/src/services"
)

type SalesHandler struct {
	Sales    *services.SalesService
	Snapshot *services.SnapshotService

	// SnapshotPath receives explicit saves; Gateway serves mirror read-backs.
	SnapshotPath string
	Gateway      mirror.Gateway
}

// PreviewWeighing - Dry-run conversion of a scale reading, no side effects
func (h *SalesHandler) PreviewWeighing(c *gin.Context) {
	var req requests.WeighingPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Sales.Stock.GetItem(req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := services.ConvertWeighing(req.GrossWeight, req.TareWeight, item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// RecordWeighedSale - Convert, deduct stock, post pending revenue
func (h *SalesHandler) RecordWeighedSale(c *gin.Context) {
	var req requests.WeighedSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.Sales.RecordWeighedSale(services.WeighedSaleRequest{
		ItemID:      req.ItemID,
		GrossWeight: req.GrossWeight,
		TareWeight:  req.TareWeight,
		AccountID:   req.AccountID,
		UserID:      req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Weighed sale recorded",
		"data":    sale,
	})
}

// GetSnapshot - Full serializable state for the persistence layer
func (h *SalesHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.Snapshot.Snapshot())
}

// RestoreSnapshot - Accepts a snapshot document on load
func (h *SalesHandler) RestoreSnapshot(c *gin.Context) {
	var snap models.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Snapshot.Restore(snap)
	c.JSON(http.StatusOK, gin.H{"message": "Snapshot restored"})
}

// SaveSnapshot - Writes the snapshot document to the configured path
func (h *SalesHandler) SaveSnapshot(c *gin.Context) {
	if err := h.Snapshot.SaveFile(h.SnapshotPath); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Snapshot saved", "path": h.SnapshotPath})
}

// MirrorTable - Reads back the mirrored payloads for one table; empty when the
// remote is unavailable
func (h *SalesHandler) MirrorTable(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"table": c.Param("table"),
		"data":  h.Gateway.Fetch(c.Request.Context(), c.Param("table")),
	})
}
