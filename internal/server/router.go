package server

import (
	"linkpulse-core/internal/handler"
	"linkpulse-core/internal/handler/response"
	"linkpulse-core/internal/middleware"
	"linkpulse-core/internal/service"
	"linkpulse-core/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Deposit *handler.DepositHandler
	Points  *handler.PointsHandler
	Payment *handler.PaymentHandler
}

// NewHTTPRouter builds the gin engine.
func NewHTTPRouter(h Handlers, authSvc *service.AuthService) *gin.Engine {
	// 0. Metrics registry
	monitor.Init()

	// 1. Engine with default middleware (Logger, Recovery)
	r := gin.Default()

	// 2. Common middleware
	r.Use(monitor.PrometheusMiddleware())

	// 3. Base routes
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. Provider webhooks, rate limited per source IP
	webhookLimiter := middleware.NewRateLimiter(10, 20)
	webhooks := r.Group("/webhooks", webhookLimiter.Middleware())
	{
		webhooks.POST("/bank", h.Payment.BankNotification)
		webhooks.POST("/paypal", h.Payment.PayPalCapture)
		webhooks.POST("/vietqr", h.Payment.VietQRCallback)
	}

	// 5. API routes
	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.GET("/packages", h.Deposit.ListPackages)

		authed := api.Group("", middleware.Auth(authSvc))
		{
			authed.POST("/deposit/order", h.Deposit.CreateOrder)
			authed.POST("/deposit/checkout", h.Deposit.Checkout)
			authed.GET("/deposit/current", h.Deposit.CurrentOrder)

			authed.GET("/points/balance", h.Points.Balance)
			authed.GET("/points/transactions", h.Points.Transactions)

			authed.POST("/index/requests", h.Points.CreateIndexBatch)
		}
	}

	return r
}
