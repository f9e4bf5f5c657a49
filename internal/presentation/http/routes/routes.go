package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoicely-api/internal/config"
	domainRepo "github.com/sangkips/invoicely-api/internal/domain/repository"
	"github.com/sangkips/invoicely-api/internal/presentation/http/handler"
	"github.com/sangkips/invoicely-api/internal/presentation/http/middleware"
	"github.com/sangkips/invoicely-api/pkg/metrics"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Invoice   *handler.DocumentHandler
	Receipt   *handler.DocumentHandler
	Product   *handler.ProductHandler
	Dashboard *handler.DashboardHandler
	Seed      *handler.SeedHandler // nil when the reseed scheduler is disabled
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *zap.Logger
	Metrics         *metrics.Metrics
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes. ctx bounds background middleware work.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log, deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewIPRateLimiter(ctx, middleware.RateLimiterConfigFor(
			deps.Cfg.RateLimit.Requests,
			deps.Cfg.RateLimit.Duration,
		))
		v1.Use(rateLimiter.Middleware())
		if deps.IdempotencyRepo != nil {
			v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Log: deps.Log}))
		}

		// Dashboard
		v1.GET("/dashboard", h.Dashboard.GetStats)

		registerProductRoutes(v1, h)
		registerInvoiceRoutes(v1, h)
		registerReceiptRoutes(v1, h)

		if h.Seed != nil {
			v1.GET("/seed/status", h.Seed.GetStatus)
		}
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	invoices := v1.Group("/invoices")
	registerDocumentRoutes(invoices, h.Invoice)
	invoices.PATCH("/:id/status", h.Invoice.UpdateStatus)
}

func registerReceiptRoutes(v1 *gin.RouterGroup, h *Handlers) {
	registerDocumentRoutes(v1.Group("/receipts"), h.Receipt)
}

func registerDocumentRoutes(group *gin.RouterGroup, dh *handler.DocumentHandler) {
	group.GET("", dh.List)
	group.POST("", dh.Create)
	group.GET("/next-number", dh.NextNumber)
	group.GET("/:id", dh.Get)
	group.PUT("/:id", dh.Update)
	group.DELETE("/:id", dh.Delete)
	group.GET("/:id/export/pdf", dh.ExportPDF)
	group.GET("/:id/export/xlsx", dh.ExportXLSX)
	group.GET("/:id/export/escpos", dh.ExportESCPOS)
}
