package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============ ENUMS & TYPES ============
type TransactionType string

const (
	TransactionReceita TransactionType = "Receita"
	TransactionDespesa TransactionType = "Despesa"
)

type TransactionStatus string

const (
	StatusPendente   TransactionStatus = "Pendente"
	StatusConciliado TransactionStatus = "Conciliado"
	StatusCancelado  TransactionStatus = "Cancelado"
)

// ============ TRANSACTION ============
// Amount is always the positive magnitude; the sign is implied by Type.
type Transaction struct {
	ID          string            `json:"id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	AccountID   string            `json:"account_id"`
	Amount      decimal.Decimal   `json:"amount"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	LedgerCode  string            `json:"ledger_code,omitempty"`

	// DocumentID correlates the posting with the stock movement(s) of the same
	// business document, mirroring StockMovement.DocumentID.
	DocumentID string `json:"document_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Signed returns the amount with the sign implied by the transaction type.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionDespesa {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ============ ACCOUNT ============
// Account carries no balance field. The balance is always derived from the
// transaction log so it can never drift from it.
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}
