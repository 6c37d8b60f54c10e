package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"production-ledger/src/mirror"
	"production-ledger/src/models"
	"production-ledger/src/repositories"
)

// ============ REQUEST STRUCTS ============
type CreateOrderRequest struct {
	OrderNumber string
	FormulaID   string
	UnitID      string
	Quantity    decimal.Decimal
}

type CreateFormulaRequest struct {
	Name            string
	Category        string
	Type            models.FormulaType
	Ingredients     []models.FormulaIngredient
	Outputs         []models.FormulaOutput
	OutputProductID string
}

// ============ PRODUCTION SERVICE ============
// ProductionService drives the order state machine. It is a caller of the
// stock ledger, never a direct mutator: consumption and yield both go through
// StockService.Adjust.
type ProductionService struct {
	Repo  *repositories.ProductionRepository
	Stock *StockService
	Log   *logrus.Logger

	Mirror *mirror.Queue
}

// ============ FORMULAS & UNITS ============

func (s *ProductionService) CreateFormula(req CreateFormulaRequest) models.ProductionFormula {
	f := models.ProductionFormula{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Category:        req.Category,
		Type:            req.Type,
		Ingredients:     req.Ingredients,
		Outputs:         req.Outputs,
		OutputProductID: req.OutputProductID,
		CreatedAt:       time.Now(),
	}
	s.Repo.SaveFormula(f)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableFormulas, ID: f.ID, Payload: f})
	return f
}

func (s *ProductionService) GetFormula(id string) (models.ProductionFormula, error) {
	return s.Repo.GetFormula(id)
}

func (s *ProductionService) ListFormulas() []models.ProductionFormula {
	return s.Repo.ListFormulas()
}

func (s *ProductionService) SaveUnit(u models.ProductionUnit) models.ProductionUnit {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.Repo.SaveUnit(u)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableUnits, ID: u.ID, Payload: u})
	return u
}

func (s *ProductionService) ListUnits() []models.ProductionUnit {
	return s.Repo.ListUnits()
}

// ============ ORDERS ============

func (s *ProductionService) CreateOrder(req CreateOrderRequest) (models.ProductionOrder, error) {
	// A non-positive batch size would turn Start's deduction into a credit.
	if !req.Quantity.IsPositive() {
		return models.ProductionOrder{}, models.ErrInvalidQuantity
	}

	now := time.Now()
	o := models.ProductionOrder{
		ID:          uuid.NewString(),
		OrderNumber: req.OrderNumber,
		FormulaID:   req.FormulaID,
		UnitID:      req.UnitID,
		Quantity:    req.Quantity,
		Status:      models.OrderPlanejado,
		Progress:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Repo.SaveOrder(o)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpCreate, Table: mirror.TableOrders, ID: o.ID, Payload: o})
	return o, nil
}

func (s *ProductionService) GetOrder(id string) (models.ProductionOrder, error) {
	return s.Repo.GetOrder(id)
}

func (s *ProductionService) ListOrders() []models.ProductionOrder {
	return s.Repo.ListOrders()
}

// Start moves an order into Em Produção and deducts raw materials exactly
// once. RawMaterialsDeducted is checked and set under the order mutex, so a
// retried start can never double-deduct. Valid entry points are Planejado, Em
// Produção (retry) and Pausado (resume); an order already in Qualidade must
// not regress to the floor.
//
// A missing formula skips the deduction but still transitions the order; the
// error is returned so the caller can tell the two outcomes apart.
func (s *ProductionService) Start(orderID string) (models.ProductionOrder, error) {
	unlock := s.Repo.LockOrder(orderID)
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return models.ProductionOrder{}, err
	}
	switch order.Status {
	case models.OrderPlanejado, models.OrderEmProducao, models.OrderPausado:
	default:
		return models.ProductionOrder{}, models.ErrInvalidTransition
	}

	order.Status = models.OrderEmProducao
	order.Progress = 10
	order.UpdatedAt = time.Now()

	var startErr error
	if !order.RawMaterialsDeducted {
		formula, err := s.Repo.GetFormula(order.FormulaID)
		if err != nil {
			s.Log.WithFields(logrus.Fields{
				"module":   "production",
				"order_id": order.ID,
				"formula":  order.FormulaID,
			}).Warn("formula missing at start, raw materials not deducted")
			startErr = err
		} else if err := s.deductRawMaterials(order, formula); err != nil {
			return models.ProductionOrder{}, err
		} else {
			order.RawMaterialsDeducted = true
		}
	}

	s.Repo.SaveOrder(order)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableOrders, ID: order.ID, Payload: order})
	return order, startErr
}

// deductRawMaterials consumes inputs for one batch. A crushing order consumes
// its declared primary input 1:1 by mass; a composition consumes every
// ingredient scaled by the batch size.
func (s *ProductionService) deductRawMaterials(order models.ProductionOrder, formula models.ProductionFormula) error {
	type deduction struct {
		productID string
		amount    decimal.Decimal
	}

	var deductions []deduction
	if formula.Type == models.FormulaBritagem {
		if len(formula.Ingredients) == 0 {
			return fmt.Errorf("formula %s: %w", formula.ID, models.ErrFormulaNotFound)
		}
		deductions = append(deductions, deduction{
			productID: formula.Ingredients[0].ProductID,
			amount:    order.Quantity,
		})
	} else {
		for _, ing := range formula.Ingredients {
			deductions = append(deductions, deduction{
				productID: ing.ProductID,
				amount:    ing.Qty.Mul(order.Quantity),
			})
		}
	}

	// Validate before touching stock so a mid-batch failure cannot leave a
	// partial consumption behind.
	for _, d := range deductions {
		item, err := s.Stock.GetItem(d.productID)
		if err != nil {
			return err
		}
		if s.Stock.Strict && item.Quantity.Sub(d.amount).IsNegative() {
			return models.ErrInsufficientStock
		}
	}

	reason := fmt.Sprintf("Consumo produção OP %s", order.OrderNumber)
	for _, d := range deductions {
		if _, err := s.Stock.Adjust(d.productID, d.amount.Neg(), reason, order.ID, ""); err != nil {
			return err
		}
	}
	return nil
}

// SendToQuality moves an order from Em Produção to Qualidade. No stock effect.
func (s *ProductionService) SendToQuality(orderID string) (models.ProductionOrder, error) {
	unlock := s.Repo.LockOrder(orderID)
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return models.ProductionOrder{}, err
	}
	if order.Status != models.OrderEmProducao {
		return models.ProductionOrder{}, models.ErrInvalidTransition
	}

	order.Status = models.OrderQualidade
	order.Progress = 90
	order.UpdatedAt = time.Now()
	s.Repo.SaveOrder(order)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableOrders, ID: order.ID, Payload: order})
	return order, nil
}

// Complete finalizes an order and credits its yield. Gated on the Finalizado
// status so a repeated call can never double-credit stock.
func (s *ProductionService) Complete(orderID string) (models.ProductionOrder, error) {
	unlock := s.Repo.LockOrder(orderID)
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return models.ProductionOrder{}, err
	}
	if order.Status == models.OrderFinalizado {
		return models.ProductionOrder{}, models.ErrOrderFinalized
	}
	if order.Status != models.OrderQualidade && order.Status != models.OrderEmProducao {
		return models.ProductionOrder{}, models.ErrInvalidTransition
	}

	order.Status = models.OrderFinalizado
	order.Progress = 100
	order.UpdatedAt = time.Now()

	var completeErr error
	formula, err := s.Repo.GetFormula(order.FormulaID)
	if err != nil {
		completeErr = err
	} else {
		reason := fmt.Sprintf("Produção OP %s", order.OrderNumber)
		if formula.Type == models.FormulaBritagem {
			// Outputs may sum below 100% (modeled yield loss); the engine never
			// validates the sum upward.
			for _, out := range formula.Outputs {
				yield := order.Quantity.Mul(out.Percentage).Div(hundred)
				if _, err := s.Stock.Adjust(out.ProductID, yield, reason, order.ID, ""); err != nil {
					completeErr = err
					break
				}
			}
		} else {
			if _, err := s.Stock.Adjust(formula.OutputProductID, order.Quantity, reason, order.ID, ""); err != nil {
				completeErr = err
			}
		}
	}

	s.Repo.SaveOrder(order)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableOrders, ID: order.ID, Payload: order})
	return order, completeErr
}

// Pause suspends a non-terminal order. Manual override, no stock effect.
func (s *ProductionService) Pause(orderID string) (models.ProductionOrder, error) {
	return s.override(orderID, models.OrderPausado)
}

// Cancel aborts a non-terminal order. Manual override, no stock effect; any
// consumed raw material stays consumed.
func (s *ProductionService) Cancel(orderID string) (models.ProductionOrder, error) {
	return s.override(orderID, models.OrderCancelado)
}

func (s *ProductionService) override(orderID string, status models.OrderStatus) (models.ProductionOrder, error) {
	unlock := s.Repo.LockOrder(orderID)
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return models.ProductionOrder{}, err
	}
	if order.Status.Terminal() {
		return models.ProductionOrder{}, models.ErrInvalidTransition
	}

	order.Status = status
	order.UpdatedAt = time.Now()
	s.Repo.SaveOrder(order)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableOrders, ID: order.ID, Payload: order})
	return order, nil
}

// AddQualityTest appends a test to the order. Tests never gate Complete.
func (s *ProductionService) AddQualityTest(orderID string, test models.QualityTest) (models.ProductionOrder, error) {
	unlock := s.Repo.LockOrder(orderID)
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return models.ProductionOrder{}, err
	}

	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	if test.Date.IsZero() {
		test.Date = time.Now()
	}
	order.QualityTests = append(order.QualityTests, test)
	order.UpdatedAt = time.Now()
	s.Repo.SaveOrder(order)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpUpdate, Table: mirror.TableOrders, ID: order.ID, Payload: order})
	return order, nil
}

// Delete removes an order. Orders that already touched stock (consumed raw
// material or credited yield) are refused; deleting them would strand the
// movements they caused.
func (s *ProductionService) Delete(orderID string) error {
	unlock := s.Repo.LockOrder(orderID)
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return err
	}
	if order.RawMaterialsDeducted || order.Status == models.OrderFinalizado {
		return models.ErrOrderHasStockEffects
	}
	if order.Status != models.OrderPlanejado {
		return models.ErrInvalidTransition
	}

	s.Repo.DeleteOrder(orderID)
	s.Mirror.Enqueue(mirror.Event{Op: mirror.OpDelete, Table: mirror.TableOrders, ID: orderID})
	return nil
}
