package repositories

import (
	"sort"
	"sync"

	"production-ledger/src/models"
)

// ProductionRepository owns formulas, orders and production units.
type ProductionRepository struct {
	mu       sync.RWMutex
	formulas map[string]models.ProductionFormula
	orders   map[string]models.ProductionOrder
	units    map[string]models.ProductionUnit

	orderLocks *keyMutex
}

func NewProductionRepository() *ProductionRepository {
	return &ProductionRepository{
		formulas:   make(map[string]models.ProductionFormula),
		orders:     make(map[string]models.ProductionOrder),
		units:      make(map[string]models.ProductionUnit),
		orderLocks: newKeyMutex(),
	}
}

// LockOrder serializes every transition on a single order; the idempotency
// check-and-set in start/complete depends on this.
func (r *ProductionRepository) LockOrder(orderID string) func() {
	return r.orderLocks.Lock(orderID)
}

// ============ FORMULAS ============

func (r *ProductionRepository) GetFormula(id string) (models.ProductionFormula, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formulas[id]
	if !ok {
		return models.ProductionFormula{}, models.ErrFormulaNotFound
	}
	return f, nil
}

func (r *ProductionRepository) SaveFormula(f models.ProductionFormula) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formulas[f.ID] = f
}

func (r *ProductionRepository) ListFormulas() []models.ProductionFormula {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ProductionFormula, 0, len(r.formulas))
	for _, f := range r.formulas {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ============ ORDERS ============

func (r *ProductionRepository) GetOrder(id string) (models.ProductionOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return models.ProductionOrder{}, models.ErrOrderNotFound
	}
	return o, nil
}

func (r *ProductionRepository) SaveOrder(o models.ProductionOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
}

func (r *ProductionRepository) DeleteOrder(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
}

func (r *ProductionRepository) ListOrders() []models.ProductionOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ProductionOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber < out[j].OrderNumber })
	return out
}

// ============ UNITS ============

func (r *ProductionRepository) SaveUnit(u models.ProductionUnit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[u.ID] = u
}

func (r *ProductionRepository) ListUnits() []models.ProductionUnit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ProductionUnit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ============ SNAPSHOT ============

func (r *ProductionRepository) SnapshotState() ([]models.ProductionFormula, []models.ProductionOrder, []models.ProductionUnit) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formulas := make([]models.ProductionFormula, 0, len(r.formulas))
	for _, f := range r.formulas {
		formulas = append(formulas, f)
	}
	sort.Slice(formulas, func(i, j int) bool { return formulas[i].ID < formulas[j].ID })

	orders := make([]models.ProductionOrder, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	units := make([]models.ProductionUnit, 0, len(r.units))
	for _, u := range r.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })

	return formulas, orders, units
}

func (r *ProductionRepository) RestoreState(formulas []models.ProductionFormula, orders []models.ProductionOrder, units []models.ProductionUnit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.formulas = make(map[string]models.ProductionFormula, len(formulas))
	for _, f := range formulas {
		r.formulas[f.ID] = f
	}
	r.orders = make(map[string]models.ProductionOrder, len(orders))
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	r.units = make(map[string]models.ProductionUnit, len(units))
	for _, u := range units {
		r.units[u.ID] = u
	}
}
