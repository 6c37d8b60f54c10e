package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"production-ledger/src/models"
	"production-ledger/src/requests"
	"production-ledger/src/services"
)

type ProductionHandler struct {
	Service *services.ProductionService
}

// ============ FORMULAS ============

func (h *ProductionHandler) CreateFormula(c *gin.Context) {
	var req requests.CreateFormulaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	formula := h.Service.CreateFormula(services.CreateFormulaRequest{
		Name:            req.Name,
		Category:        req.Category,
		Type:            req.Type,
		Ingredients:     req.Ingredients,
		Outputs:         req.Outputs,
		OutputProductID: req.OutputProductID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Formula created successfully",
		"data":    formula,
	})
}

func (h *ProductionHandler) ListFormulas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Service.ListFormulas()})
}

// ============ UNITS ============

func (h *ProductionHandler) SaveUnit(c *gin.Context) {
	var unit models.ProductionUnit
	if err := c.ShouldBindJSON(&unit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Production unit saved",
		"data":    h.Service.SaveUnit(unit),
	})
}

func (h *ProductionHandler) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Service.ListUnits()})
}

// ============ ORDERS ============

func (h *ProductionHandler) CreateOrder(c *gin.Context) {
	var req requests.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Service.CreateOrder(services.CreateOrderRequest{
		OrderNumber: req.OrderNumber,
		FormulaID:   req.FormulaID,
		UnitID:      req.UnitID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Production order created successfully",
		"data":    order,
	})
}

func (h *ProductionHandler) GetOrder(c *gin.Context) {
	order, err := h.Service.GetOrder(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (h *ProductionHandler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Service.ListOrders()})
}

// Start - Planejado → Em Produção; deducts raw materials exactly once
func (h *ProductionHandler) Start(c *gin.Context) {
	order, err := h.Service.Start(c.Param("id"))
	if err != nil && order.ID == "" {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"message": "Production started",
		"data":    order,
	}
	// A missing formula skips the deduction but the order still transitions;
	// surface it as a warning the caller can act on.
	if err != nil {
		resp["warning"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// SendToQuality - Em Produção → Qualidade
func (h *ProductionHandler) SendToQuality(c *gin.Context) {
	order, err := h.Service.SendToQuality(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order sent to quality",
		"data":    order,
	})
}

// Complete - Finalizes the order and credits the yield
func (h *ProductionHandler) Complete(c *gin.Context) {
	order, err := h.Service.Complete(c.Param("id"))
	if err != nil && order.ID == "" {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"message": "Production completed",
		"data":    order,
	}
	if err != nil {
		resp["warning"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductionHandler) Pause(c *gin.Context) {
	order, err := h.Service.Pause(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order paused", "data": order})
}

func (h *ProductionHandler) Cancel(c *gin.Context) {
	order, err := h.Service.Cancel(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "data": order})
}

// AddQualityTest - Appends a test; never gates completion
func (h *ProductionHandler) AddQualityTest(c *gin.Context) {
	var req requests.QualityTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Service.AddQualityTest(c.Param("id"), models.QualityTest{
		Name:   req.Name,
		Result: req.Result,
		Notes:  req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Quality test recorded",
		"data":    order,
	})
}

// Delete - Only orders that never touched stock may be removed
func (h *ProductionHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
