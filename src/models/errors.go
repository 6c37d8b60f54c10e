package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors, always recoverable by the caller.
var (
	ErrItemNotFound    = errors.New("inventory item not found")
	ErrFormulaNotFound = errors.New("production formula not found")
	ErrOrderNotFound   = errors.New("production order not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrNotFound        = errors.New("transaction not found")

	ErrInvalidWeighing   = errors.New("invalid weighing: gross weight must exceed tare")
	ErrUnsupportedUnit   = errors.New("unit not supported by weighing conversion")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidAmount     = errors.New("transaction amount must be positive")
	ErrInvalidQuantity   = errors.New("order quantity must be positive")
)

// Idempotency violations, rejected so the caller can tell "already done"
// apart from "succeeded again".
var (
	ErrDuplicateTransaction = errors.New("transaction id already posted")
	ErrOrderFinalized       = errors.New("production order already finalized")
)

// State machine violations.
var (
	ErrInvalidTransition    = errors.New("invalid production order transition")
	ErrOrderHasStockEffects = errors.New("production order has applied stock effects and cannot be deleted")
)

// AuthorizationRequiredError is a policy outcome, not a hard failure: posting a
// reconciled expense that would drive the account negative needs a privileged
// override. It carries enough context for an approval workflow.
type AuthorizationRequiredError struct {
	AccountID string
	Shortfall decimal.Decimal
}

func (e *AuthorizationRequiredError) Error() string {
	return fmt.Sprintf("authorization required: account %s would go negative by %s",
		e.AccountID, e.Shortfall.String())
}
