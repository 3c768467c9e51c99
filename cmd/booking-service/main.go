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

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"bus-ticketing/internal/auth"
	authapi "bus-ticketing/internal/auth/api"
	authdb "bus-ticketing/internal/auth/db"
	"bus-ticketing/internal/booking"
	bookingapi "bus-ticketing/internal/booking/api"
	bookingdb "bus-ticketing/internal/booking/db"
	rediswrap "bus-ticketing/internal/booking/redis"
	"bus-ticketing/internal/config"
	"bus-ticketing/internal/kafka"
	"bus-ticketing/internal/logger"
	"bus-ticketing/internal/payment"
	"bus-ticketing/internal/tickets"
	"bus-ticketing/internal/trips"
	tripsapi "bus-ticketing/internal/trips/api"
	tripsdb "bus-ticketing/internal/trips/db"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()
	appLogger := logger.NewLogger("booking-service")
	defer appLogger.Close()

	// --- SQLite Setup ---
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Database.Path)
	if err != nil {
		appLogger.Fatal("DATABASE", "Failed to open SQLite: "+err.Error())
	}
	defer sqldb.Close()

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	if err := bookingdb.Migrate(bunDB); err != nil {
		appLogger.Fatal("DATABASE", err.Error())
	}
	if err := tripsdb.Migrate(bunDB); err != nil {
		appLogger.Fatal("DATABASE", err.Error())
	}
	if err := authdb.Migrate(bunDB); err != nil {
		appLogger.Fatal("DATABASE", err.Error())
	}
	if err := tripsdb.Seed(bunDB); err != nil {
		appLogger.Fatal("DATABASE", "Failed to seed trips: "+err.Error())
	}

	// --- Redis Setup ---
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	appLogger.Info("REDIS", "🔗 Connecting to Redis at "+cfg.Redis.Addr)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Fatal("REDIS", "❌ Failed to connect to Redis: "+err.Error())
	}

	// --- Kafka Setup ---
	var events booking.EventPublisher = kafka.NoopProducer{}
	if cfg.Kafka.Enabled {
		topics := []string{cfg.Kafka.Topics.OrderConfirmed, cfg.Kafka.Topics.OrderCancelled}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, topics); err != nil {
			appLogger.Warn("KAFKA", "Topic bootstrap failed: "+err.Error())
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.OrderConfirmed, cfg.Kafka.Topics.OrderCancelled)
		defer producer.Close()
		events = producer
	}

	// --- Payment Gateway ---
	var gateway booking.Gateway
	if cfg.Payment.GatewayURL != "" {
		gateway = payment.NewHTTPGateway(cfg.Payment.GatewayURL, &http.Client{Timeout: 30 * time.Second})
		appLogger.Info("PAYMENT", "Using payment service at "+cfg.Payment.GatewayURL)
	} else {
		gateway = payment.NewSimulatedGateway(cfg.Payment.Latency, cfg.Payment.FailureRate)
		appLogger.Info("PAYMENT", "Using in-process simulated gateway")
	}

	// --- Services ---
	store := &bookingdb.DB{Bun: bunDB}
	tripStore := &tripsdb.DB{Bun: bunDB}
	seatLocks := rediswrap.NewRedis(redisClient, cfg.Redis.SeatLockTTL)

	tripService := trips.NewTripService(tripStore)
	ticketService := tickets.NewTicketService(store, cfg.Auth.QRSecret)

	tokenIssuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessionStore := auth.NewSessionStore(redisClient, cfg.Auth.TokenTTL)
	authService := auth.NewAuthService(&authdb.DB{Bun: bunDB}, tokenIssuer, sessionStore)

	appLogger.Info("BOOKING", "📦 Initializing Booking Service...")
	bookingService := booking.NewBookingService(store, seatLocks, events, gateway, ticketService, tripService, appLogger)
	bookingService.ServiceFee = cfg.Pricing.ServiceFee

	authHandler := &authapi.Handler{AuthService: authService, Logger: appLogger}
	tripHandler := &tripsapi.Handler{TripService: tripService}
	bookingHandler := &bookingapi.Handler{BookingService: bookingService}

	// --- Router ---
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/trips", tripHandler.Search)
		r.Get("/trips/featured", tripHandler.Featured)
		r.Get("/trips/{tripId}", tripHandler.GetTrip)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Post("/trips/{tripId}/checkout", bookingHandler.StartCheckout)
			r.Get("/checkout/{sessionId}", bookingHandler.GetCheckout)
			r.Post("/checkout/{sessionId}/seats/{seatNumber}/toggle", bookingHandler.ToggleSeat)
			r.Delete("/checkout/{sessionId}/seats", bookingHandler.ClearSelection)
			r.Post("/checkout/{sessionId}/advance", bookingHandler.Advance)
			r.Post("/checkout/{sessionId}/back", bookingHandler.Back)
			r.Post("/checkout/{sessionId}/passengers", bookingHandler.AddPassenger)
			r.Put("/checkout/{sessionId}/passengers/{index}", bookingHandler.UpdatePassenger)
			r.Delete("/checkout/{sessionId}/passengers/{index}", bookingHandler.RemovePassenger)
			r.Post("/checkout/{sessionId}/submit", bookingHandler.Submit)

			r.Get("/orders", bookingHandler.OrderHistory)
			r.Get("/orders/{orderId}", bookingHandler.GetOrder)
			r.Delete("/orders/{orderId}", bookingHandler.CancelOrder)
		})
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("SERVER", "🚀 Booking Service running on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("SERVER", "❌ HTTP server error: "+err.Error())
		}
	}()

	// --- Graceful Shutdown ---
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
