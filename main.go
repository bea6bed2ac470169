package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"gitub.com/matheusmosca/ecommerce-api/services/address"
	"gitub.com/matheusmosca/ecommerce-api/services/admin"
	"gitub.com/matheusmosca/ecommerce-api/services/auth"
	"gitub.com/matheusmosca/ecommerce-api/services/cart"
	"gitub.com/matheusmosca/ecommerce-api/services/catalog"
	"gitub.com/matheusmosca/ecommerce-api/services/checkout"
	"gitub.com/matheusmosca/ecommerce-api/services/review"
	"gitub.com/matheusmosca/ecommerce-api/services/users"
	"gitub.com/matheusmosca/ecommerce-api/storage"
)

func main() {
	ctx := context.Background()

	// Initialize OpenTelemetry
	tp, err := initTracer()
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	mp, err := initMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down meter: %v", err)
		}
	}()

	// Initialize database
	dbPool, err := storage.Connect(ctx, databaseDSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbPool.Close()

	if err := storage.RunMigrations(ctx, dbPool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize dependencies
	tokens := auth.NewTokenManager(
		getEnv("JWT_ACCESS_SECRET", "dev-access-secret"),
		getEnv("JWT_REFRESH_SECRET", "dev-refresh-secret"),
	)
	tracer := tp.Tracer("ecommerce-api")

	authHandler := auth.NewHandler(auth.NewUseCase(auth.NewRepository(dbPool), tokens))
	usersHandler := users.NewHandler(users.NewUseCase(users.NewRepository(dbPool)))
	catalogHandler := catalog.NewHandler(catalog.NewUseCase(catalog.NewRepository(dbPool)))
	cartHandler := cart.NewHandler(cart.NewUseCase(cart.NewRepository(dbPool)))
	checkoutHandler := checkout.NewHandler(checkout.NewUseCase(checkout.NewRepository(dbPool), tracer))
	reviewHandler := review.NewHandler(review.NewUseCase(review.NewRepository(dbPool)))
	addressHandler := address.NewHandler(address.NewUseCase(address.NewRepository(dbPool)))
	adminHandler := admin.NewHandler(admin.NewUseCase(admin.NewRepository(dbPool)))

	// Setup Gin router
	r := gin.Default()
	r.Use(otelgin.Middleware(getEnv("SERVICE_NAME", "ecommerce-api")))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "ecommerce-api"})
	})

	public := r.Group("/")
	authed := r.Group("/", auth.RequireAuth(tokens))
	adminOnly := r.Group("/", auth.RequireAuth(tokens), auth.RequireAdmin())

	authHandler.RegisterRoutes(public, authed)
	usersHandler.RegisterRoutes(authed)
	catalogHandler.RegisterRoutes(public, adminOnly)
	cartHandler.RegisterRoutes(authed)
	checkoutHandler.RegisterRoutes(authed)
	reviewHandler.RegisterRoutes(public, authed)
	addressHandler.RegisterRoutes(authed)
	adminHandler.RegisterRoutes(adminOnly)

	port := getEnv("PORT", "8080")
	log.Printf("🚀 E-commerce API listening on port %s", port)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func databaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DATABASE_USER", "root"),
		getEnv("DATABASE_PASSWORD", "pass"),
		getEnv("DATABASE_HOST", "localhost"),
		getEnv("DATABASE_PORT", "5432"),
		getEnv("DATABASE_NAME", "ecommerce_db"),
	)
}

func initTracer() (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	otlpEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(otlpEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(getEnv("SERVICE_NAME", "ecommerce-api")),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	otel.SetTracerProvider(tp)

	return tp, nil
}

func initMetrics() (*sdkmetric.MeterProvider, error) {
	ctx := context.Background()

	otlpEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(otlpEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(getEnv("SERVICE_NAME", "ecommerce-api")),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
