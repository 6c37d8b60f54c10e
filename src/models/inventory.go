package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============ ENUMS & TYPES ============
type MovementType string

const (
	MovementEntrada MovementType = "Entrada"
	MovementSaida   MovementType = "Saída"
)

// Commercial units handled by the weighing converter.
const (
	UnitKG  = "kg"
	UnitTon = "ton"
	UnitM3  = "m³"
	UnitUN  = "UN"
	UnitL   = "L"
)

// ============ INVENTORY ITEM ============
// Quantity is an authoritative cache: it must always equal the running sum of
// every StockMovement recorded for the item since creation.
type InventoryItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"cost_price"`
	MinStock  decimal.Decimal `json:"min_stock"`

	// Weight is kg per commercial unit, the density proxy used when converting
	// scale readings into volumetric units. Nil when the item has none declared.
	Weight *decimal.Decimal `json:"weight,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============ STOCK MOVEMENT ============
// Immutable once created; the movement log is append-only.
type StockMovement struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Type       MovementType    `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"` // always the non-negative magnitude
	Date       time.Time       `json:"date"`
	Reason     string          `json:"reason"`
	DocumentID string          `json:"document_id,omitempty"`
	UserID     string          `json:"user_id,omitempty"`
}

// Signed returns the movement quantity with the sign implied by its type.
func (m StockMovement) Signed() decimal.Decimal {
	if m.Type == MovementSaida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
