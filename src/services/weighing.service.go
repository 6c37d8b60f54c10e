package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"production-ledger/src/models"
)

var (
	kgPerTon       = decimal.NewFromInt(1000)
	defaultDensity = decimal.NewFromInt(1) // ton/m³ when the item declares no weight
	hundred        = decimal.NewFromInt(100)
)

// WeighingResult is a pure conversion outcome: the commercial quantity plus a
// human-readable derivation for audit and printing. Applying it to a cart line
// and recomputing monetary totals is the caller's job.
type WeighingResult struct {
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	NetKg      decimal.Decimal `json:"net_kg"`
	Derivation string          `json:"derivation"`
}

// ConvertWeighing turns a scale reading (gross and tare in kg) into the item's
// commercial unit. It is side-effect free.
func ConvertWeighing(gross, tare decimal.Decimal, item models.InventoryItem) (WeighingResult, error) {
	if gross.LessThanOrEqual(tare) {
		return WeighingResult{}, models.ErrInvalidWeighing
	}

	net := gross.Sub(tare)

	var qty decimal.Decimal
	var derivation string

	switch item.Unit {
	case models.UnitKG:
		qty = net.Round(3)
		derivation = fmt.Sprintf("Peso líquido: %s - %s = %s kg", gross, tare, net)

	case models.UnitTon:
		qty = net.Div(kgPerTon).Round(3)
		derivation = fmt.Sprintf("Peso líquido: %s - %s = %s kg ÷ 1000 = %s ton",
			gross, tare, net, qty)

	case models.UnitM3:
		density := defaultDensity
		if item.Weight != nil && item.Weight.IsPositive() {
			density = item.Weight.Div(kgPerTon) // kg/m³ → ton/m³
		}
		tons := net.Div(kgPerTon)
		qty = tons.Div(density).Round(3)
		derivation = fmt.Sprintf("Peso líquido: %s - %s = %s kg = %s ton ÷ densidade %s ton/m³ = %s m³",
			gross, tare, net, tons, density, qty)

	default:
		return WeighingResult{}, fmt.Errorf("%w: %s", models.ErrUnsupportedUnit, item.Unit)
	}

	return WeighingResult{
		Quantity:   qty,
		Unit:       item.Unit,
		NetKg:      net,
		Derivation: derivation,
	}, nil
}
