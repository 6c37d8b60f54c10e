package requests

import (
	"github.com/shopspring/decimal"

	"production-ledger/src/models"
)

// ============ INVENTORY ============
type CreateItemRequest struct {
	Name      string           `json:"name" binding:"required"`
	Category  string           `json:"category"`
	Unit      string           `json:"unit" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	CostPrice decimal.Decimal  `json:"cost_price"`
	MinStock  decimal.Decimal  `json:"min_stock"`
	Weight    *decimal.Decimal `json:"weight,omitempty"`
	UserID    string           `json:"user_id,omitempty"`
}

type AdjustStockRequest struct {
	Delta      decimal.Decimal `json:"delta" binding:"required"`
	Reason     string          `json:"reason" binding:"required"`
	DocumentID string          `json:"document_id,omitempty"`
	UserID     string          `json:"user_id,omitempty"`
}

// ============ PRODUCTION ============
type CreateFormulaRequest struct {
	Name            string                     `json:"name" binding:"required"`
	Category        string                     `json:"category"`
	Type            models.FormulaType         `json:"type" binding:"required,oneof=Composicao Britagem"`
	Ingredients     []models.FormulaIngredient `json:"ingredients" binding:"required,min=1"`
	Outputs         []models.FormulaOutput     `json:"outputs,omitempty"`
	OutputProductID string                     `json:"output_product_id,omitempty"`
}

type CreateOrderRequest struct {
	OrderNumber string          `json:"order_number" binding:"required"`
	FormulaID   string          `json:"formula_id" binding:"required"`
	UnitID      string          `json:"unit_id"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

type QualityTestRequest struct {
	Name   string            `json:"name" binding:"required"`
	Result models.TestResult `json:"result" binding:"required,oneof=Aprovado Reprovado Pendente"`
	Notes  string            `json:"notes,omitempty"`
}

// ============ FINANCE ============
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type PostTransactionRequest struct {
	ID          string                   `json:"id,omitempty"`
	Description string                   `json:"description" binding:"required"`
	Category    string                   `json:"category"`
	AccountID   string                   `json:"account_id" binding:"required"`
	Amount      decimal.Decimal          `json:"amount" binding:"required"`
	Type        models.TransactionType   `json:"type" binding:"required,oneof=Receita Despesa"`
	Status      models.TransactionStatus `json:"status" binding:"omitempty,oneof=Pendente Conciliado Cancelado"`
	DueDate     *string                  `json:"due_date,omitempty"`
	LedgerCode  string                   `json:"ledger_code,omitempty"`
	DocumentID  string                   `json:"document_id,omitempty"`

	// Authorized carries the privileged override for the negative-balance policy.
	Authorized bool `json:"authorized,omitempty"`
}

type ReconcileRequest struct {
	Date string `json:"date" binding:"required"`
}

// ============ SALES ============
type WeighedSaleRequest struct {
	ItemID      string          `json:"item_id" binding:"required"`
	GrossWeight decimal.Decimal `json:"gross_weight" binding:"required"`
	TareWeight  decimal.Decimal `json:"tare_weight" binding:"required"`
	AccountID   string          `json:"account_id" binding:"required"`
	UserID      string          `json:"user_id,omitempty"`
}

// ============ WEIGHING (dry run) ============
type WeighingPreviewRequest struct {
	ItemID      string          `json:"item_id" binding:"required"`
	GrossWeight decimal.Decimal `json:"gross_weight" binding:"required"`
	TareWeight  decimal.Decimal `json:"tare_weight" binding:"required"`
}
