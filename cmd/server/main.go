package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/flexprice/invoice-dashboard/internal/api"
	v1 "github.com/flexprice/invoice-dashboard/internal/api/v1"
	"github.com/flexprice/invoice-dashboard/internal/cache"
	"github.com/flexprice/invoice-dashboard/internal/config"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/metrics"
	"github.com/flexprice/invoice-dashboard/internal/repository"
	"github.com/flexprice/invoice-dashboard/internal/sentry"
	"github.com/flexprice/invoice-dashboard/internal/service"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/flexprice/invoice-dashboard/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

func init() {
	// Invoice dates are calendar days in UTC
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			repository.NewStoreClient,
		),
		fx.Invoke(validator.NewValidator),
		sentry.Module(),
		cache.Module(),
	)

	// Repositories
	opts = append(opts,
		fx.Provide(
			repository.NewInvoiceRepository,
			repository.NewCustomerRepository,
			repository.NewRevenueRepository,
		),
	)

	// Services
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewInvoiceService,
			service.NewDashboardService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			registerMetrics,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	client store.Client,
	invoiceService service.InvoiceService,
	dashboardService service.DashboardService,
) api.Handlers {
	return api.Handlers{
		Health:    v1.NewHealthHandler(client, logger),
		Invoice:   v1.NewInvoiceHandler(invoiceService, dashboardService, logger),
		Customer:  v1.NewCustomerHandler(dashboardService, logger),
		Dashboard: v1.NewDashboardHandler(dashboardService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func registerMetrics(cfg *config.Configuration) {
	if cfg.Metrics.Enabled {
		metrics.MustRegister(prometheus.DefaultRegisterer)
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(r)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

func startAWSLambdaAPI(r *gin.Engine) {
	ginLambda := ginadapter.New(r)
	lambda.Start(ginLambda.ProxyWithContext)
}
