package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/api/handler"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	transferHandler *handler.TransferHandler,
	walletHandler *handler.WalletHandler,
	auditHandler *handler.AuditHandler,
	opsHandler *handler.OpsHandler,
	metricsGatherer prometheus.Gatherer,
) {
	userRoutes := router.Group("/users")
	{
		// POST /users/:userId/transfers
		userRoutes.POST("/:userId/transfers", transferHandler.Submit)

		// GET /users/:userId/transfers
		userRoutes.GET("/:userId/transfers", transferHandler.History)

		// GET /users/:userId/balance
		userRoutes.GET("/:userId/balance", walletHandler.GetBalance)

		// POST /users/:userId/deposits
		userRoutes.POST("/:userId/deposits", walletHandler.Deposit)

		// POST /users/:userId/cashouts
		userRoutes.POST("/:userId/cashouts", walletHandler.Cashout)
	}

	router.GET("/health", opsHandler.Health)
	router.GET("/health/breakers", opsHandler.Breakers)
	router.GET("/audit", auditHandler.Query)
	router.POST("/admin/archival/run", opsHandler.RunArchival)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{})))
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Correlation())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
