package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"production-ledger/src/mirror"
	"production-ledger/src/models"
	"production-ledger/src/repositories"
)

// ============ REQUEST STRUCTS ============
type CreateItemRequest struct {
	Name      string
	Category  string
	Unit      string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	CostPrice decimal.Decimal
	MinStock  decimal.Decimal
	Weight    *decimal.Decimal
	UserID    string
}

// ============ STOCK SERVICE ============
// StockService is the only path by which an item quantity may change. Every
// higher-level flow (sales fulfillment, purchase receipt, production
// consumption and yield) routes through Adjust.
type StockService struct {
	Repo *repositories.InventoryRepository
	Log  *logrus.Logger

	// Strict rejects adjustments that would drive stock negative. Permissive
	// matches the historical behavior where stock may go below zero.
	Strict bool

	Mirror *mirror.Queue
}

// CreateItem registers an item. A non-zero opening quantity is logged as an
// Entrada movement so the cache-consistency invariant holds from the start.
// In strict mode a negative opening quantity is rejected up front; otherwise
// the item would be saved and the opening adjustment fail after the fact.
func (s *StockService) CreateItem(req CreateItemRequest) (models.InventoryItem, error) {
	if s.Strict && req.Quantity.IsNegative() {
		return models.InventoryItem{}, models.ErrInsufficientStock
	}

	now := time.Now()
	item := models.InventoryItem{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		Quantity:  decimal.Zero,
		Price:     req.Price,
		CostPrice: req.CostPrice,
		MinStock:  req.MinStock,
		Weight:    req.Weight,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Repo.SaveItem(item)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableItems, ID: item.ID, Payload: item})

	if req.Quantity.IsZero() {
		return item, nil
	}
	return s.Adjust(item.ID, req.Quantity, "Saldo inicial", "", req.UserID)
}

func (s *StockService) GetItem(id string) (models.InventoryItem, error) {
	return s.Repo.GetItem(id)
}

func (s *StockService) ListItems() []models.InventoryItem {
	return s.Repo.ListItems()
}

// LowStock returns the items at or below their minimum stock level.
func (s *StockService) LowStock() []models.InventoryItem {
	var out []models.InventoryItem
	for _, item := range s.Repo.ListItems() {
		if item.MinStock.IsPositive() && item.Quantity.LessThanOrEqual(item.MinStock) {
			out = append(out, item)
		}
	}
	return out
}

// Adjust is the single stock mutation primitive. The delta may be negative;
// the movement type is derived from its sign and the logged quantity is always
// the magnitude. The quantity cache and the movement append happen under the
// item's mutex so no movement can be applied without being logged.
func (s *StockService) Adjust(itemID string, delta decimal.Decimal, reason, documentID, userID string) (models.InventoryItem, error) {
	unlock := s.Repo.LockItem(itemID)
	defer unlock()

	item, err := s.Repo.GetItem(itemID)
	if err != nil {
		return models.InventoryItem{}, err
	}

	newQuantity := item.Quantity.Add(delta)
	if s.Strict && newQuantity.IsNegative() {
		return models.InventoryItem{}, models.ErrInsufficientStock
	}

	movementType := models.MovementEntrada
	if delta.IsNegative() {
		movementType = models.MovementSaida
	}

	movement := models.StockMovement{
		ID:         uuid.NewString(),
		ItemID:     item.ID,
		ItemName:   item.Name,
		Type:       movementType,
		Quantity:   delta.Abs(),
		Date:       time.Now(),
		Reason:     reason,
		DocumentID: documentID,
		UserID:     userID,
	}

	item.Quantity = newQuantity
	item.UpdatedAt = movement.Date
	s.Repo.SaveItem(item)
	s.Repo.AppendMovement(movement)

	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableItems, ID: item.ID, Payload: item})
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableMovements, ID: movement.ID, Payload: movement})

	return item, nil
}

// BalanceAsOf derives the quantity at a point in time from the movement log.
func (s *StockService) BalanceAsOf(itemID string, at time.Time) (decimal.Decimal, error) {
	if _, err := s.Repo.GetItem(itemID); err != nil {
		return decimal.Zero, err
	}
	return s.Repo.BalanceAsOf(itemID, at), nil
}

func (s *StockService) MovementsFor(itemID string) ([]models.StockMovement, error) {
	if _, err := s.Repo.GetItem(itemID); err != nil {
		return nil, err
	}
	return s.Repo.MovementsFor(itemID), nil
}

// AllMovements is the global movement log across every item, in append order.
func (s *StockService) AllMovements() []models.StockMovement {
	return s.Repo.AllMovements()
}

// VerifyConsistency checks the conservation invariant for an item: the cached
// quantity must equal the running sum of its movement log.
func (s *StockService) VerifyConsistency(itemID string) (bool, error) {
	unlock := s.Repo.LockItem(itemID)
	defer unlock()

	item, err := s.Repo.GetItem(itemID)
	if err != nil {
		return false, err
	}

	sum := decimal.Zero
	for _, m := range s.Repo.MovementsFor(itemID) {
		sum = sum.Add(m.Signed())
	}

	consistent := sum.Equal(item.Quantity)
	if !consistent {
		s.Log.WithFields(logrus.Fields{
			"module":   "stock",
			"item_id":  itemID,
			"cached":   item.Quantity.String(),
			"derived":  sum.String(),
			"drift":    item.Quantity.Sub(sum).String(),
			"funcName": "VerifyConsistency",
		}).Error("stock cache drifted from movement log")
	}
	return consistent, nil
}
