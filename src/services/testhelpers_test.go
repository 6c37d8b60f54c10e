package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"production-ledger/src/models"
	"production-ledger/src/repositories"
	"production-ledger/src/services"
)

type testEnv struct {
	InventoryRepo  *repositories.InventoryRepository
	ProductionRepo *repositories.ProductionRepository
	FinanceRepo    *repositories.FinanceRepository

	Stock      *services.StockService
	Production *services.ProductionService
	Finance    *services.FinanceService
	Sales      *services.SalesService
	Snapshot   *services.SnapshotService
}

func newTestEnv(strict bool) *testEnv {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	inventoryRepo := repositories.NewInventoryRepository()
	productionRepo := repositories.NewProductionRepository()
	financeRepo := repositories.NewFinanceRepository()

	stock := &services.StockService{Repo: inventoryRepo, Log: log, Strict: strict}
	production := &services.ProductionService{Repo: productionRepo, Stock: stock, Log: log}
	finance := &services.FinanceService{Repo: financeRepo, Log: log, Policy: services.DefaultNegativeBalancePolicy}
	sales := &services.SalesService{Stock: stock, Finance: finance}
	snapshot := &services.SnapshotService{
		Inventory:  inventoryRepo,
		Production: productionRepo,
		Finance:    financeRepo,
	}

	return &testEnv{
		InventoryRepo:  inventoryRepo,
		ProductionRepo: productionRepo,
		FinanceRepo:    financeRepo,
		Stock:          stock,
		Production:     production,
		Finance:        finance,
		Sales:          sales,
		Snapshot:       snapshot,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msg ...string) {
	t.Helper()
	if !actual.Equal(dec(expected)) {
		prefix := ""
		if len(msg) > 0 {
			prefix = msg[0] + ": "
		}
		t.Errorf("%sexpected %s, got %s", prefix, expected, actual.String())
	}
}

func (e *testEnv) mustCreateOrder(t *testing.T, orderNumber, formulaID, qty string) models.ProductionOrder {
	t.Helper()
	order, err := e.Production.CreateOrder(services.CreateOrderRequest{
		OrderNumber: orderNumber,
		FormulaID:   formulaID,
		Quantity:    dec(qty),
	})
	if err != nil {
		t.Fatalf("failed to create order %s: %v", orderNumber, err)
	}
	return order
}

func (e *testEnv) mustCreateItem(t *testing.T, name, unit string, qty, price string, weight *decimal.Decimal) models.InventoryItem {
	t.Helper()
	item, err := e.Stock.CreateItem(services.CreateItemRequest{
		Name:     name,
		Category: "Agregados",
		Unit:     unit,
		Quantity: dec(qty),
		Price:    dec(price),
	})
	if err != nil {
		t.Fatalf("failed to create item %s: %v", name, err)
	}
	if weight != nil {
		item.Weight = weight
		e.InventoryRepo.SaveItem(item)
	}
	return item
}
