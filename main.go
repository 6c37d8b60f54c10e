package main

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"production-ledger/src/config"
	"production-ledger/src/handlers"
	"production-ledger/src/mirror"
	"production-ledger/src/models"
	"production-ledger/src/repositories"
	"production-ledger/src/routes"
	"production-ledger/src/services"
)

func main() {
	cfg := config.Load()
	log := config.GetLogger()

	// Repositories: the in-memory state is the source of truth.
	inventoryRepo := repositories.NewInventoryRepository()
	productionRepo := repositories.NewProductionRepository()
	financeRepo := repositories.NewFinanceRepository()

	// Remote mirror: best effort, queued after local commits, never awaited.
	var gateway mirror.Gateway = mirror.NoopGateway{}
	if cfg.MirrorDSN != "" {
		gw, err := mirror.NewGormGateway(cfg.MirrorDSN)
		if err != nil {
			config.LogError(log, "main", "main", "mirror gateway init failed, running without mirror", nil, err)
		} else {
			gateway = gw
		}
	}
	queue := mirror.NewQueue(gateway, log, cfg.MirrorBuffer)
	queue.Start()
	defer queue.Close()

	// Services
	stockService := &services.StockService{
		Repo:   inventoryRepo,
		Log:    log,
		Strict: cfg.StrictStock,
		Mirror: queue,
	}
	productionService := &services.ProductionService{
		Repo:   productionRepo,
		Stock:  stockService,
		Log:    log,
		Mirror: queue,
	}
	financeService := &services.FinanceService{
		Repo:   financeRepo,
		Log:    log,
		Policy: services.DefaultNegativeBalancePolicy,
		Mirror: queue,
	}
	salesService := &services.SalesService{
		Stock:   stockService,
		Finance: financeService,
	}
	snapshotService := &services.SnapshotService{
		Inventory:  inventoryRepo,
		Production: productionRepo,
		Finance:    financeRepo,
	}

	if err := snapshotService.LoadFile(cfg.SnapshotPath); err != nil {
		config.LogError(log, "main", "main", "snapshot load failed, starting empty", nil, err)
	}

	if len(stockService.ListItems()) == 0 {
		seedSampleData(stockService, productionService, financeService)
	}

	// Handlers
	stockHandler := &handlers.StockHandler{Service: stockService}
	productionHandler := &handlers.ProductionHandler{Service: productionService}
	financeHandler := &handlers.FinanceHandler{Service: financeService}
	salesHandler := &handlers.SalesHandler{
		Sales:        salesService,
		Snapshot:     snapshotService,
		SnapshotPath: cfg.SnapshotPath,
		Gateway:      gateway,
	}

	router := gin.Default()

	api := router.Group("/api/v1")
	routes.RegisterStockRoutes(api.Group("/inventory"), stockHandler)
	routes.RegisterProductionRoutes(api.Group("/production"), productionHandler)
	routes.RegisterFinanceRoutes(api.Group("/finance"), financeHandler)
	routes.RegisterSalesRoutes(api.Group("/sales"), salesHandler)
	routes.RegisterSnapshotRoutes(api.Group("/snapshot"), salesHandler)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func seedSampleData(stock *services.StockService, production *services.ProductionService, finance *services.FinanceService) {
	density := decimal.NewFromInt(2400) // kg/m³ for crushed basalt

	rock, _ := stock.CreateItem(services.CreateItemRequest{
		Name:     "Pedra Bruta",
		Category: "Matéria-prima",
		Unit:     models.UnitTon,
		Quantity: decimal.NewFromInt(500),
		Price:    decimal.NewFromInt(40),
		UserID:   "seed",
	})
	gravel1, _ := stock.CreateItem(services.CreateItemRequest{
		Name:     "Brita 1",
		Category: "Agregados",
		Unit:     models.UnitTon,
		Price:    decimal.NewFromInt(95),
		Weight:   &density,
		UserID:   "seed",
	})
	gravel0, _ := stock.CreateItem(services.CreateItemRequest{
		Name:     "Brita 0",
		Category: "Agregados",
		Unit:     models.UnitTon,
		Price:    decimal.NewFromInt(105),
		Weight:   &density,
		UserID:   "seed",
	})

	production.CreateFormula(services.CreateFormulaRequest{
		Name:     "Britagem padrão",
		Category: "Agregados",
		Type:     models.FormulaBritagem,
		Ingredients: []models.FormulaIngredient{
			{ProductID: rock.ID, Qty: decimal.NewFromInt(1), Unit: models.UnitTon},
		},
		Outputs: []models.FormulaOutput{
			{ProductID: gravel1.ID, Percentage: decimal.NewFromInt(60)},
			{ProductID: gravel0.ID, Percentage: decimal.NewFromInt(30)},
		},
	})

	finance.CreateAccount("Caixa", decimal.NewFromInt(10000))
	finance.CreateAccount("Banco", decimal.NewFromInt(50000))
}
