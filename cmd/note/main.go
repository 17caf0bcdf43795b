package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tair/warehouse-inbound/internal/note"
	httpDelivery "github.com/tair/warehouse-inbound/internal/note/delivery/http"
	"github.com/tair/warehouse-inbound/internal/note/export"
	"github.com/tair/warehouse-inbound/internal/note/ledger"
	"github.com/tair/warehouse-inbound/internal/note/usecase/command"
	"github.com/tair/warehouse-inbound/kafka"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
	"github.com/tair/warehouse-inbound/pkg/logger"
	"github.com/tair/warehouse-inbound/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "note-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting note service")

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

	// Open the note store
	store, cleanup := openStore("inbound-notes")
	defer cleanup()

	logger.Logger.Info().Msg("Store initialized successfully")

	// Quantity adjustments go through the product service
	productServiceURL := getEnv("PRODUCT_SERVICE_URL", "http://localhost:8081")
	adjuster := ledger.NewHTTPAdjuster(productServiceURL)

	// Kafka publisher is optional; without brokers note events are skipped
	var publisher command.EventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		kafkaPublisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize kafka publisher")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
			logger.Logger.Info().Str("brokers", brokers).Msg("Kafka publisher initialized")
		}
	}

	// Export storage is optional; without a bucket the export endpoint is off
	var exporter *export.Exporter
	if bucket := getEnv("EXPORT_BUCKET", ""); bucket != "" {
		blobs, err := export.NewGCSBlobStore(context.Background(), bucket)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize blob store")
		} else {
			defer blobs.Close()
			exporter = export.NewExporter(blobs)
		}
	}

	// Initialize handler with Wire DI
	handler, err := note.InitializeHTTPHandler(store, adjuster, publisher, exporter)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	logger.Logger.Info().
		Str("product_service", productServiceURL).
		Msg("Note handler initialized with product service client")

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
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

		// Table names cannot carry a dash
		store, err := kvstore.NewPostgresStore(db, strings.ReplaceAll(collection, "-", "_"))
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

func startHTTPServer(handler *httpDelivery.NoteHandler, port string) {
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
