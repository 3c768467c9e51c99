package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"bus-ticketing/internal/config"
	"bus-ticketing/internal/logger"
	"bus-ticketing/internal/payment"
	"bus-ticketing/internal/payment/handler"
	"bus-ticketing/internal/payment/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()
	appLogger := logger.NewLogger("payment-service")
	defer appLogger.Close()

	sqldb, err := sql.Open(sqliteshim.ShimName, "payments.db")
	if err != nil {
		appLogger.Fatal("DATABASE", "Failed to open SQLite: "+err.Error())
	}
	defer sqldb.Close()

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	store, err := storage.NewBunStore(bunDB)
	if err != nil {
		appLogger.Fatal("DATABASE", err.Error())
	}

	gateway := payment.NewSimulatedGateway(cfg.Payment.Latency, cfg.Payment.FailureRate)
	paymentHandler := handler.NewPaymentHandler(gateway, store, appLogger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	paymentHandler.RegisterRoutes(r)

	server := &http.Server{
		Addr:    cfg.Payment.Port,
		Handler: r,
	}

	go func() {
		appLogger.Info("SERVER", "🚀 Payment Service running on "+cfg.Payment.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("SERVER", "❌ HTTP server error: "+err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("SERVER", "📦 Shutdown signal received. Cleaning up...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		appLogger.Fatal("SERVER", "❌ Server forced to shutdown: "+err.Error())
	}

	appLogger.Info("SERVER", "✅ Server exited gracefully")
}
