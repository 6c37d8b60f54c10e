package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"production-ledger/src/models"
)

// InventoryRepository owns the item set and the append-only movement log.
// The movement log may be read concurrently by any number of readers; only
// appends take the write lock.
type InventoryRepository struct {
	mu        sync.RWMutex
	items     map[string]models.InventoryItem
	movements []models.StockMovement
	byItem    map[string][]int // indexes into movements

	locks *keyMutex
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		items:  make(map[string]models.InventoryItem),
		byItem: make(map[string][]int),
		locks:  newKeyMutex(),
	}
}

// LockItem serializes mutations on a single item. Callers hold the returned
// unlock across their whole read-modify-write.
func (r *InventoryRepository) LockItem(itemID string) func() {
	return r.locks.Lock(itemID)
}

func (r *InventoryRepository) GetItem(id string) (models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return models.InventoryItem{}, models.ErrItemNotFound
	}
	return item, nil
}

func (r *InventoryRepository) SaveItem(item models.InventoryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
}

func (r *InventoryRepository) ListItems() []models.InventoryItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

func (r *InventoryRepository) AppendMovement(m models.StockMovement) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.movements = append(r.movements, m)
	r.byItem[m.ItemID] = append(r.byItem[m.ItemID], len(r.movements)-1)
}

func (r *InventoryRepository) MovementsFor(itemID string) []models.StockMovement {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idxs := r.byItem[itemID]
	out := make([]models.StockMovement, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, r.movements[i])
	}
	return out
}

func (r *InventoryRepository) AllMovements() []models.StockMovement {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.StockMovement, len(r.movements))
	copy(out, r.movements)
	return out
}

// BalanceAsOf sums the signed movement log for an item up to and including t.
func (r *InventoryRepository) BalanceAsOf(itemID string, t time.Time) decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	balance := decimal.Zero
	for _, i := range r.byItem[itemID] {
		m := r.movements[i]
		if m.Date.After(t) {
			continue
		}
		balance = balance.Add(m.Signed())
	}
	return balance
}

// ============ SNAPSHOT ============

func (r *InventoryRepository) SnapshotState() ([]models.InventoryItem, []models.StockMovement) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	movements := make([]models.StockMovement, len(r.movements))
	copy(movements, r.movements)
	return items, movements
}

func (r *InventoryRepository) RestoreState(items []models.InventoryItem, movements []models.StockMovement) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]models.InventoryItem, len(items))
	for _, item := range items {
		r.items[item.ID] = item
	}

	r.movements = make([]models.StockMovement, len(movements))
	copy(r.movements, movements)

	r.byItem = make(map[string][]int)
	for i, m := range r.movements {
		r.byItem[m.ItemID] = append(r.byItem[m.ItemID], i)
	}
}
