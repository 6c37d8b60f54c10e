package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============ ENUMS & TYPES ============
type FormulaType string

const (
	FormulaComposicao FormulaType = "Composicao"
	FormulaBritagem   FormulaType = "Britagem"
)

type OrderStatus string

const (
	OrderPlanejado  OrderStatus = "Planejado"
	OrderEmProducao OrderStatus = "Em Produção"
	OrderQualidade  OrderStatus = "Qualidade"
	OrderFinalizado OrderStatus = "Finalizado"
	OrderPausado    OrderStatus = "Pausado"
	OrderCancelado  OrderStatus = "Cancelado"
)

// Terminal reports whether no further transition may leave the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderFinalizado || s == OrderCancelado
}

type TestResult string

const (
	TestAprovado  TestResult = "Aprovado"
	TestReprovado TestResult = "Reprovado"
	TestPendente  TestResult = "Pendente"
)

// ============ FORMULA ============
type FormulaIngredient struct {
	ProductID string          `json:"product_id"`
	Qty       decimal.Decimal `json:"qty"` // per unit of ordered batch size
	Unit      string          `json:"unit"`
}

// FormulaOutput declares one graded product of a crushing run as a percentage of
// the total batch yield. Outputs summing below 100 model yield loss; the engine
// never validates the sum upward, that is a caller responsibility.
type FormulaOutput struct {
	ProductID  string          `json:"product_id"`
	Percentage decimal.Decimal `json:"percentage"`
}

type ProductionFormula struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	Type        FormulaType         `json:"type"`
	Ingredients []FormulaIngredient `json:"ingredients"`

	// Britagem only: graded outputs by percentage.
	Outputs []FormulaOutput `json:"outputs,omitempty"`

	// Composicao only: the single product receiving 1:1 yield.
	OutputProductID string `json:"output_product_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ============ PRODUCTION UNIT ============
type ProductionUnit struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Capacity decimal.Decimal `json:"capacity"`
	Status   string          `json:"status"`
}

// ============ QUALITY TEST ============
type QualityTest struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Result TestResult `json:"result"`
	Date   time.Time  `json:"date"`
	Notes  string     `json:"notes,omitempty"`
}

// ============ PRODUCTION ORDER ============
type ProductionOrder struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	FormulaID   string          `json:"formula_id"`
	UnitID      string          `json:"unit_id"`
	Quantity    decimal.Decimal `json:"quantity"` // ordered batch size
	Status      OrderStatus     `json:"status"`
	Progress    int             `json:"progress"` // 0–100

	// RawMaterialsDeducted is the idempotency guard for consumption: once true,
	// a repeated start never touches stock again.
	RawMaterialsDeducted bool `json:"raw_materials_deducted"`

	QualityTests []QualityTest `json:"quality_tests,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
