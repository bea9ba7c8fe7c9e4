package main

import (
	"net/http"

	"facturacion-service/internal/billing"
	"facturacion-service/internal/handler"
	mid "facturacion-service/internal/middleware"
	"facturacion-service/internal/store"
	"facturacion-service/pkg/config"
	"facturacion-service/pkg/database"
	"facturacion-service/pkg/logger"
	"facturacion-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

func main() {
	// Load .env file; fall back to real environment variables when absent
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting facturacion-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire the store and billing services
	st := store.New(database.GetDB())
	resolver := billing.NewTaxResolver(st)
	renderer := billing.NewDocumentRenderer(resolver, appConfig.Billing.LogoPath, log)
	dialer := gomail.NewDialer(
		appConfig.SMTP.Host,
		appConfig.SMTP.Port,
		appConfig.SMTP.Username,
		appConfig.SMTP.Password,
	)
	mailer := billing.NewMailer(renderer, dialer,
		appConfig.SMTP.From,
		appConfig.SMTP.DefaultRecipient,
		log)
	h := handler.New(st, renderer, mailer)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Invoice API routes
	invoiceAPI := e.Group("/api/invoices")
	invoiceAPI.GET("", h.ListInvoices)
	invoiceAPI.POST("", h.CreateInvoice)
	invoiceAPI.GET("/export", h.ExportInvoices)
	invoiceAPI.POST("/send", h.SendInvoice)
	invoiceAPI.POST("/send-batch", h.SendInvoiceBatch)
	invoiceAPI.GET("/:id/document", h.InvoiceDocument)
	invoiceAPI.DELETE("/:id", h.DeleteInvoice)

	// Client API routes
	clientAPI := e.Group("/api/clients")
	clientAPI.GET("", h.ListClients)
	clientAPI.POST("", h.CreateClient)
	clientAPI.DELETE("/:id", h.DeleteClient)

	// Property API routes
	propertyAPI := e.Group("/api/properties")
	propertyAPI.GET("", h.ListProperties)
	propertyAPI.POST("", h.CreateProperty)
	propertyAPI.DELETE("/:id", h.DeleteProperty)

	// Contract API routes
	contractAPI := e.Group("/api/contracts")
	contractAPI.GET("", h.ListContracts)
	contractAPI.POST("", h.CreateContract)
	contractAPI.DELETE("/:id", h.DeleteContract)

	// Payment API routes
	paymentAPI := e.Group("/api/payments")
	paymentAPI.GET("", h.ListPayments)
	paymentAPI.POST("", h.CreatePayment)
	paymentAPI.DELETE("/:id", h.DeletePayment)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
