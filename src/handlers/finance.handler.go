package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"production-ledger/src/models"
	"production-ledger/src/requests"
	"production-ledger/src/services"
)

type FinanceHandler struct {
	Service *services.FinanceService
}

// ============ ACCOUNTS ============

func (h *FinanceHandler) CreateAccount(c *gin.Context) {
	var req requests.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account := h.Service.CreateAccount(req.Name, req.InitialBalance)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    account,
	})
}

func (h *FinanceHandler) ListAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Service.ListAccounts()})
}

// AccountBalance - Realized balance, recomputed from the transaction log
func (h *FinanceHandler) AccountBalance(c *gin.Context) {
	balance, err := h.Service.AccountBalance(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"account_id": c.Param("id"),
		"balance":    balance,
	})
}

// ============ TRANSACTIONS ============

func (h *FinanceHandler) Post(c *gin.Context) {
	var req requests.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := models.Transaction{
		ID:          req.ID,
		Description: req.Description,
		Category:    req.Category,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Type:        req.Type,
		Status:      req.Status,
		LedgerCode:  req.LedgerCode,
		DocumentID:  req.DocumentID,
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date format. Use YYYY-MM-DD"})
			return
		}
		t.DueDate = &due
	}

	var err error
	if req.Authorized {
		err = h.Service.PostAuthorized(t)
	} else {
		err = h.Service.Post(t)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Transaction posted successfully"})
}

// Update - Full edit of an existing transaction, id preserved
func (h *FinanceHandler) Update(c *gin.Context) {
	var req requests.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := models.Transaction{
		ID:          c.Param("id"),
		Description: req.Description,
		Category:    req.Category,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Type:        req.Type,
		Status:      req.Status,
		LedgerCode:  req.LedgerCode,
		DocumentID:  req.DocumentID,
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date format. Use YYYY-MM-DD"})
			return
		}
		t.DueDate = &due
	}

	if err := h.Service.Update(t); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated successfully"})
}

func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Service.ListTransactions()})
}

// Reconcile - Marks cash as actually moved and stamps the effective date
func (h *FinanceHandler) Reconcile(c *gin.Context) {
	var req requests.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD or RFC3339"})
			return
		}
	}

	t, err := h.Service.Reconcile(c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction reconciled", "data": t})
}

func (h *FinanceHandler) Unreconcile(c *gin.Context) {
	t, err := h.Service.Unreconcile(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction reverted to pending", "data": t})
}

// ============ FORECASTING ============

func (h *FinanceHandler) Forecast(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"projected_balance": h.Service.ProjectedBalance(),
		"receivables":       h.Service.Receivables(),
		"payables":          h.Service.Payables(),
	})
}
