package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tair/warehouse-inbound/internal/product"
	httpDelivery "github.com/tair/warehouse-inbound/internal/product/delivery/http"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
	"github.com/tair/warehouse-inbound/pkg/logger"
	"github.com/tair/warehouse-inbound/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "product-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting product service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Open the product store
	store, cleanup := openStore("products")
	defer cleanup()

	logger.Logger.Info().Msg("Store initialized successfully")

	// Initialize handler with Wire DI
	handler, err := product.InitializeHTTPHandler(store)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8081")
	startHTTPServer(handler, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// openStore builds the key-value store selected by STORE_BACKEND
// (redis or postgres) and returns it with its cleanup function.
func openStore(collection string) (kvstore.Store, func()) {
	backend := getEnv("STORE_BACKEND", "redis")

	switch backend {
	case "postgres":
		db, err := kvstore.OpenPostgres(kvstore.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "warehousedb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}

		store, err := kvstore.NewPostgresStore(db, collection)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize store")
		}
		return store, func() { db.Close() }

	case "redis":
		client, err := kvstore.NewRedisClient(
			getEnv("REDIS_ADDR", "localhost:6379"),
			getEnv("REDIS_PASSWORD", ""),
		)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		return kvstore.NewRedisStore(client, collection), func() { client.Close() }

	default:
		logger.Logger.Fatal().Str("backend", backend).Msg("Unknown store backend")
		return nil, nil
	}
}

func startHTTPServer(handler *httpDelivery.ProductHandler, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
