package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/medilinkhq/pharmacy_backend/config"
	"github.com/medilinkhq/pharmacy_backend/handlers"
	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/middlewares"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/storage"
)

const defaultPort = "8080"

func main() {
	godotenv.Load()
	logger := config.GetLogger()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedis()

	db := config.GetDB()
	if err := models.MigrateTable(db); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	store := storage.NewGormStore(db)
	h := handlers.New(
		ledger.NewPurchaseLedger(store),
		ledger.NewSaleLedger(store),
		ledger.NewBatchRegistry(store),
		ledger.NewCatalog(store),
		ledger.NewTransactionLog(store),
	)

	router := newRouter(h)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
}

func newRouter(h *handlers.Handler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "X-Pharmacy-Id", "X-User-Id", "X-Correlation-Id"},
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))
	router.Use(middlewares.CorrelationMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middlewares.PharmacyMiddleware())
	{
		api.POST("/products", h.CreateProduct)
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)
		api.GET("/products/:id/expiry", h.GetProductExpiry)

		api.POST("/purchases", h.CreatePurchase)
		api.PUT("/purchases/:id", h.UpdatePurchase)
		api.DELETE("/purchases/:id", h.DeletePurchase)
		api.GET("/reports/purchases", h.PurchaseReport)
		api.GET("/reports/purchases/export", h.PurchaseReportExport)

		api.POST("/sales", h.CreateSale)
		api.PUT("/sales/:id", h.UpdateSale)
		api.DELETE("/sales/:id", h.DeleteSale)
		api.GET("/reports/sales", h.SalesReport)
		api.GET("/reports/sales/export", h.SalesReportExport)

		api.GET("/reports/expiry", h.ExpiryReport)

		api.GET("/transactions", h.ListTransactions)
		api.GET("/transactions/:id", h.GetTransaction)
		api.DELETE("/transactions/:id", h.DeleteTransaction)
	}

	return router
}
