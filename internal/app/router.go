package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/Zelesto/trailers-backend-sub001/internal/handler"
	"github.com/Zelesto/trailers-backend-sub001/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	TripHandler           *handler.TripHandler
	VehicleHandler        *handler.VehicleHandler
	DriverHandler         *handler.DriverHandler
	AccountHandler        *handler.AccountHandler
	StatementHandler      *handler.StatementHandler
	ReconciliationHandler *handler.ReconciliationHandler
	PaymentHandler        *handler.PaymentHandler
	StockCountHandler     *handler.StockCountHandler
	RedisClient           *redis.Client
	NewRelicApp           *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.GET("/:id/metrics", deps.TripHandler.GetMetrics)
			trips.POST("/:id/plan", deps.TripHandler.PlanTrip)
			trips.POST("/:id/assign", deps.TripHandler.AssignTrip)
			trips.POST("/:id/start", deps.TripHandler.StartTrip)
			trips.POST("/:id/complete", deps.TripHandler.CompleteTrip)
			trips.POST("/:id/cancel", deps.TripHandler.CancelTrip)
		}

		// Vehicle routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.POST("/register", deps.VehicleHandler.Register)
			vehicles.GET("", deps.VehicleHandler.GetAll)
			vehicles.POST("/:id/location", deps.VehicleHandler.UpdateLocation)
			vehicles.POST("/:id/maintenance", deps.VehicleHandler.SetMaintenance)
			vehicles.POST("/:id/return", deps.VehicleHandler.ReturnToService)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.GET("", deps.DriverHandler.GetAll)
			drivers.POST("/:id/off-duty", deps.DriverHandler.SetOffDuty)
			drivers.POST("/:id/available", deps.DriverHandler.SetAvailable)
		}

		// Account routes.
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", deps.AccountHandler.Create)
			accounts.GET("", deps.AccountHandler.GetAll)
			accounts.GET("/:id", deps.AccountHandler.Get)
			accounts.POST("/:id/deactivate", deps.AccountHandler.Deactivate)
			accounts.GET("/:id/statements", deps.StatementHandler.GetByAccount)
			accounts.GET("/:id/reconciliations", deps.ReconciliationHandler.GetByAccount)
		}

		// Statement routes.
		statements := v1.Group("/statements")
		{
			statements.POST("", deps.StatementHandler.Create)
			statements.GET("/:id", deps.StatementHandler.Get)
			statements.POST("/:id/opening-balance", deps.StatementHandler.SetOpeningBalance)
			statements.POST("/:id/transactions", deps.StatementHandler.PostTransaction)
			statements.POST("/:id/reconcile", deps.StatementHandler.Reconcile)
		}

		// Reconciliation routes.
		reconciliations := v1.Group("/reconciliations")
		{
			reconciliations.POST("/run", deps.ReconciliationHandler.Run)
			reconciliations.GET("", deps.ReconciliationHandler.GetAll)
		}

		// Payment routes.
		payments := v1.Group("/payments")
		{
			payments.POST("", deps.PaymentHandler.Capture)
			payments.GET("/:id", deps.PaymentHandler.Get)
			payments.GET("/:id/allocations", deps.PaymentHandler.GetAllocations)
			payments.POST("/:id/allocate", deps.PaymentHandler.Allocate)
			payments.POST("/:id/post", deps.PaymentHandler.Post)
		}

		// Stock count routes.
		stockCounts := v1.Group("/stock-counts")
		{
			stockCounts.POST("", deps.StockCountHandler.Create)
			stockCounts.GET("", deps.StockCountHandler.GetAll)
			stockCounts.GET("/:id", deps.StockCountHandler.Get)
			stockCounts.POST("/:id/lines", deps.StockCountHandler.UpsertLine)
			stockCounts.DELETE("/:id/lines/:itemId", deps.StockCountHandler.RemoveLine)
			stockCounts.POST("/:id/post", deps.StockCountHandler.Post)
		}
	}

	return router
}
