package api

import (
	v1 "github.com/flexprice/invoice-dashboard/internal/api/v1"
	"github.com/flexprice/invoice-dashboard/internal/config"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/rest/middleware"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Invoice   *v1.InvoiceHandler
	Customer  *v1.CustomerHandler
	Dashboard *v1.DashboardHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.SentryScopeMiddleware,
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	router.GET("/revenue", handlers.Dashboard.GetRevenue)

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/cards", handlers.Dashboard.GetCardData)
	}

	invoices := router.Group("/invoices")
	{
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/latest", handlers.Invoice.GetLatestInvoices)
		invoices.GET("/pages", handlers.Invoice.GetInvoicesPages)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
	}

	customers := router.Group("/customers")
	{
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/table", handlers.Customer.GetCustomersTable)
	}
}
