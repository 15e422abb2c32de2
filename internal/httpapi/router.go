// Package httpapi - HTTP-интерфейс магазина поверх gin.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
)

// CustomerService - операции над клиентами, нужные HTTP-слою.
type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id int64) (domain.Customer, error)
	Create(ctx context.Context, in domain.CustomerCreate) (domain.Customer, error)
	Update(ctx context.Context, id int64, in domain.CustomerUpdate) (domain.Customer, error)
	Delete(ctx context.Context, id int64) error
	BirthdayCelebrants(ctx context.Context, on domain.Date) ([]domain.Customer, error)
	RecentBuyers(ctx context.Context, days int) ([]domain.RecentBuyer, error)
	PopularCategories(ctx context.Context, customerID int64) ([]domain.CategoryUnits, error)
}

// ProductService - операции над каталогом.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Create(ctx context.Context, in domain.ProductCreate) (domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductUpdate) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// PurchaseService - операции над покупками.
type PurchaseService interface {
	List(ctx context.Context) ([]domain.Purchase, error)
	Get(ctx context.Context, id int64) (domain.Purchase, error)
	Create(ctx context.Context, in domain.PurchaseCreate) (domain.Purchase, error)
	Update(ctx context.Context, id int64, in domain.PurchaseUpdate) (domain.Purchase, error)
	Delete(ctx context.Context, id int64) error
}

// RouterConfig - зависимости HTTP-слоя.
type RouterConfig struct {
	Customers CustomerService
	Products  ProductService
	Purchases PurchaseService

	Logger         *log.Entry
	Metrics        *metrics.HTTPMetrics
	AllowedOrigins []string
}

// NewRouter собирает gin.Engine со всеми маршрутами /api.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}

	r := gin.New()
	r.Use(RequestID())
	r.Use(RequestLogger(logger))
	r.Use(Metrics(cfg.Metrics))
	r.Use(Recovery(logger))
	r.Use(CORS(cfg.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, APIError{Message: "route not found", Code: codeNotFound})
	})

	api := r.Group("/api")

	if cfg.Customers != nil {
		h := &customerHandler{svc: cfg.Customers, logger: logger}
		customers := api.Group("/customers")
		customers.GET("", h.list)
		customers.POST("", h.create)
		customers.GET("/birthday-celebrants", h.birthdayCelebrants)
		customers.GET("/recent-buyers", h.recentBuyers)
		customers.GET("/popular-categories", h.popularCategories)
		customers.GET("/:id", h.get)
		customers.PUT("/:id", h.update)
		customers.DELETE("/:id", h.delete)
	}

	if cfg.Products != nil {
		h := &productHandler{svc: cfg.Products, logger: logger}
		products := api.Group("/products")
		products.GET("", h.list)
		products.POST("", h.create)
		products.GET("/:id", h.get)
		products.PUT("/:id", h.update)
		products.DELETE("/:id", h.delete)
	}

	if cfg.Purchases != nil {
		h := &purchaseHandler{svc: cfg.Purchases, logger: logger}
		purchases := api.Group("/purchases")
		purchases.GET("", h.list)
		purchases.POST("", h.create)
		purchases.GET("/:id", h.get)
		purchases.PUT("/:id", h.update)
		purchases.DELETE("/:id", h.delete)
	}

	return r
}
