// Package bootstrap wires configuration into live runtime dependencies.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/MayankPrasher/draftly-backend/internal/cache"
	"github.com/MayankPrasher/draftly-backend/internal/config"
	"github.com/MayankPrasher/draftly-backend/internal/database"
	"github.com/MayankPrasher/draftly-backend/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and initializes tracing.
// The returned shutdown function flushes the tracer provider.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, func(context.Context) error, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis may come back nil if unreachable; rate limiting degrades.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	exporter := "stdout"
	if cfg.OTLPEndpoint != "" {
		exporter = "otlp"
	}
	tracingShutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "draftly-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.Env == "production" || cfg.OTLPEndpoint != "",
		Exporter:       exporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   1.0,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tracing init failed: %w", err)
	}

	return db, r, tracingShutdown, nil
}
