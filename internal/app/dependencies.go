package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/shop/internal/health"
	"github.com/vladislavdragonenkov/shop/internal/httpapi"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/service/shop"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
	"github.com/vladislavdragonenkov/shop/internal/storage/postgres"
)

const storageCheckTimeout = 2 * time.Second

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Store    domain.Store
	Services shop.Services
	Logger   *log.Entry
}

// NewDependencies собирает сервисы магазина поверх переданного хранилища.
// nil store означает новое in-memory хранилище.
func NewDependencies(store domain.Store, shopMetrics *metrics.ShopMetrics, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if store == nil {
		store = memory.NewStore()
	}

	return &Dependencies{
		Store: store,
		Services: shop.New(shop.Deps{
			Store:   store,
			Metrics: shopMetrics,
			Logger:  logger.WithField("layer", "service"),
		}),
		Logger: logger,
	}
}

// NewAPIHandler возвращает HTTP-обработчик /api поверх собранных зависимостей.
func NewAPIHandler(deps *Dependencies, httpMetrics *metrics.HTTPMetrics, corsOrigins []string) http.Handler {
	return httpapi.NewRouter(httpapi.RouterConfig{
		Customers:      deps.Services.Customers,
		Products:       deps.Services.Products,
		Purchases:      deps.Services.Purchases,
		Logger:         deps.Logger.WithField("layer", "http"),
		Metrics:        httpMetrics,
		AllowedOrigins: corsOrigins,
	})
}

type runtimeDependencies struct {
	store          domain.Store
	storageChecker healthcheck.Checker
	closeFn        func() error
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if driver == "" {
		driver = StorageDriverMemory
	}

	switch driver {
	case StorageDriverMemory:
		store := memory.NewStore()
		logger.Info("используется in-memory хранилище")
		return &runtimeDependencies{
			store:          store,
			storageChecker: healthcheck.NewStorageChecker("storage", store, storageCheckTimeout),
			closeFn:        store.Close,
		}, nil

	case StorageDriverPostgres:
		dsn := strings.TrimSpace(cfg.PostgresDSN)
		if dsn == "" {
			return nil, fmt.Errorf("postgres dsn is required when storage driver is %q", StorageDriverPostgres)
		}

		retryCfg := postgres.DefaultRetryConfig()
		if cfg.PostgresConnectAttempts > 0 {
			retryCfg.MaxAttempts = cfg.PostgresConnectAttempts
		}
		store, err := postgres.OpenWithRetry(ctx, dsn, retryCfg, logger.WithField("layer", "storage"))
		if err != nil {
			return nil, fmt.Errorf("init postgres storage: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
			logger.Info("миграции PostgreSQL применены")
		}

		logger.Info("используется PostgreSQL хранилище")
		return &runtimeDependencies{
			store:          store,
			storageChecker: healthcheck.NewStorageChecker("storage", store, storageCheckTimeout),
			closeFn:        store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
