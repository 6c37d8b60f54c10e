package routes

import (
	"github.com/gin-gonic/gin"

	"production-ledger/src/handlers"
)

func RegisterStockRoutes(r *gin.RouterGroup, h *handlers.StockHandler) {
	r.GET("/items", h.ListItems)
	r.GET("/movements", h.AllMovements)
	r.GET("/items/low-stock", h.LowStock)
	r.GET("/items/:id", h.GetItem)
	r.GET("/items/:id/movements", h.Movements)
	r.GET("/items/:id/balance", h.BalanceAsOf)
	r.GET("/items/:id/consistency", h.VerifyConsistency)

	r.POST("/items", h.CreateItem)
	r.POST("/items/:id/adjust", h.Adjust)
}

func RegisterProductionRoutes(r *gin.RouterGroup, h *handlers.ProductionHandler) {
	r.GET("/formulas", h.ListFormulas)
	r.POST("/formulas", h.CreateFormula)

	r.GET("/units", h.ListUnits)
	r.POST("/units", h.SaveUnit)

	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.POST("/orders", h.CreateOrder)
	r.POST("/orders/:id/start", h.Start)
	r.POST("/orders/:id/quality", h.SendToQuality)
	r.POST("/orders/:id/complete", h.Complete)
	r.POST("/orders/:id/pause", h.Pause)
	r.POST("/orders/:id/cancel", h.Cancel)
	r.POST("/orders/:id/tests", h.AddQualityTest)
	r.DELETE("/orders/:id", h.Delete)
}

func RegisterFinanceRoutes(r *gin.RouterGroup, h *handlers.FinanceHandler) {
	r.GET("/accounts", h.ListAccounts)
	r.GET("/accounts/:id/balance", h.AccountBalance)
	r.POST("/accounts", h.CreateAccount)

	r.GET("/transactions", h.ListTransactions)
	r.POST("/transactions", h.Post)
	r.PUT("/transactions/:id", h.Update)
	r.POST("/transactions/:id/reconcile", h.Reconcile)
	r.POST("/transactions/:id/unreconcile", h.Unreconcile)

	r.GET("/forecast", h.Forecast)
}

func RegisterSalesRoutes(r *gin.RouterGroup, h *handlers.SalesHandler) {
	r.POST("/weighing/preview", h.PreviewWeighing)
	r.POST("/weighed", h.RecordWeighedSale)
}

func RegisterSnapshotRoutes(r *gin.RouterGroup, h *handlers.SalesHandler) {
	r.GET("", h.GetSnapshot)
	r.PUT("", h.RestoreSnapshot)
	r.POST("/save", h.SaveSnapshot)
	r.GET("/mirror/:table", h.MirrorTable)
}
