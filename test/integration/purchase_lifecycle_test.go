package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/shop/internal/app"
	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
	"github.com/vladislavdragonenkov/shop/internal/storage/postgres"
)

// PurchaseLifecycleTestSuite проходит путь клиент → товары → покупка → изменение → отчёты через HTTP API.
type PurchaseLifecycleTestSuite struct {
	suite.Suite
	newStore func(t *testing.T) domain.Store
	handler  http.Handler
	store    domain.Store
}

func (suite *PurchaseLifecycleTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel)
	logger := baseLogger.WithField("component", "integration-test")

	reg := prometheus.NewRegistry()
	suite.store = suite.newStore(suite.T())
	deps := app.NewDependencies(suite.store, metrics.NewShopMetricsWithRegisterer(reg), logger)
	suite.handler = app.NewAPIHandler(deps, metrics.NewHTTPMetricsWithRegisterer(reg), nil)
}

func (suite *PurchaseLifecycleTestSuite) TearDownTest() {
	if suite.store != nil {
		_ = suite.store.Close()
	}
}

func TestPurchaseLifecycle_Memory(t *testing.T) {
	suite.Run(t, &PurchaseLifecycleTestSuite{
		newStore: func(*testing.T) domain.Store { return memory.NewStore() },
	})
}

func TestPurchaseLifecycle_Postgres(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("SHOP_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("SHOP_POSTGRES_TEST_DSN is not set")
	}

	suite.Run(t, &PurchaseLifecycleTestSuite{
		newStore: func(t *testing.T) domain.Store {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			store, err := postgres.Open(ctx, dsn)
			if err != nil {
				t.Skipf("postgres is not available: %v", err)
			}
			require.NoError(t, store.EnsureSchema(ctx))
			_, err = store.DB().ExecContext(ctx,
				`TRUNCATE purchase_items, purchases, products, customers RESTART IDENTITY CASCADE`)
			require.NoError(t, err)
			return store
		},
	})
}

func (suite *PurchaseLifecycleTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	suite.handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto[T any](suite *PurchaseLifecycleTestSuite, rec *httptest.ResponseRecorder) T {
	var out T
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (suite *PurchaseLifecycleTestSuite) create(path string, body any) int64 {
	rec := suite.request(http.MethodPost, path, body)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeInto[struct {
		ID int64 `json:"id"`
	}](suite, rec)
	suite.Require().NotZero(created.ID)
	suite.Require().Equal(fmt.Sprintf("%s/%d", path, created.ID), rec.Header().Get("Location"))
	return created.ID
}

func (suite *PurchaseLifecycleTestSuite) requireMoney(expected string, actual decimal.Decimal) {
	suite.Require().True(decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func (suite *PurchaseLifecycleTestSuite) TestFullLifecycle() {
	customerID := suite.create("/api/customers", map[string]any{
		"full_name":     "Мария Иванова",
		"date_of_birth": "2000-06-01",
	})
	p1 := suite.create("/api/products", map[string]any{
		"name": "Ноутбук", "category": "Электроника", "sku": "EL-001", "price": 10.00,
	})
	p2 := suite.create("/api/products", map[string]any{
		"name": "Кружка", "category": "Посуда", "sku": "KT-002", "price": 5.00,
	})

	// Покупка [P1×2, P2×1] стоит 25.00.
	purchaseID := suite.create("/api/purchases", map[string]any{
		"customer_id": customerID,
		"items": []map[string]any{
			{"product_id": p1, "quantity": 2},
			{"product_id": p2, "quantity": 1},
		},
	})

	rec := suite.request(http.MethodGet, fmt.Sprintf("/api/purchases/%d", purchaseID), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	purchase := decodeInto[domain.Purchase](suite, rec)
	suite.requireMoney("25.00", purchase.TotalCost)
	suite.Require().Len(purchase.Items, 2)

	var p1Item domain.PurchaseItem
	for _, item := range purchase.Items {
		if item.ProductID == p1 {
			p1Item = item
		}
	}
	suite.Require().NotZero(p1Item.ID)

	rec = suite.request(http.MethodGet, fmt.Sprintf("/api/customers/popular-categories?customer_id=%d", customerID), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Require().Equal([]domain.CategoryUnits{
		{Category: "Электроника", TotalUnits: 2},
		{Category: "Посуда", TotalUnits: 1},
	}, decodeInto[[]domain.CategoryUnits](suite, rec))

	// Изменение до [P1×1]: строка P2 удаляется, сумма пересчитывается.
	rec = suite.request(http.MethodPut, fmt.Sprintf("/api/purchases/%d", purchaseID), map[string]any{
		"items": []map[string]any{{"id": p1Item.ID, "product_id": p1, "quantity": 1}},
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeInto[domain.Purchase](suite, rec)
	suite.requireMoney("10.00", updated.TotalCost)
	suite.Require().Len(updated.Items, 1)
	suite.Require().Equal(p1Item.ID, updated.Items[0].ID)
	suite.Require().Equal(1, updated.Items[0].Quantity)

	rec = suite.request(http.MethodGet, "/api/customers/birthday-celebrants?date=06-01", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	celebrants := decodeInto[[]domain.Customer](suite, rec)
	suite.Require().Len(celebrants, 1)
	suite.Require().Equal(customerID, celebrants[0].ID)

	rec = suite.request(http.MethodGet, fmt.Sprintf("/api/customers/popular-categories?customer_id=%d", customerID), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Require().Equal([]domain.CategoryUnits{
		{Category: "Электроника", TotalUnits: 1},
	}, decodeInto[[]domain.CategoryUnits](suite, rec))

	rec = suite.request(http.MethodGet, "/api/customers/recent-buyers?days=0", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	buyers := decodeInto[[]domain.RecentBuyer](suite, rec)
	suite.Require().Len(buyers, 1)
	suite.Require().Equal(customerID, buyers[0].CustomerID)

	// P2 больше не используется и удаляется, P1 всё ещё в покупке.
	suite.Require().Equal(http.StatusNoContent, suite.request(http.MethodDelete, fmt.Sprintf("/api/products/%d", p2), nil).Code)
	suite.Require().Equal(http.StatusConflict, suite.request(http.MethodDelete, fmt.Sprintf("/api/products/%d", p1), nil).Code)

	// Удаление клиента каскадно удаляет его покупки.
	suite.Require().Equal(http.StatusNoContent, suite.request(http.MethodDelete, fmt.Sprintf("/api/customers/%d", customerID), nil).Code)
	suite.Require().Equal(http.StatusNotFound, suite.request(http.MethodGet, fmt.Sprintf("/api/purchases/%d", purchaseID), nil).Code)
	suite.Require().Equal(http.StatusNoContent, suite.request(http.MethodDelete, fmt.Sprintf("/api/products/%d", p1), nil).Code)
}

func (suite *PurchaseLifecycleTestSuite) TestUpdateRejectsEmptyItems() {
	customerID := suite.create("/api/customers", map[string]any{
		"full_name": "Олег", "date_of_birth": "1985-01-20",
	})
	productID := suite.create("/api/products", map[string]any{
		"name": "Лампа", "category": "Свет", "sku": "LT-1", "price": 7.25,
	})
	purchaseID := suite.create("/api/purchases", map[string]any{
		"customer_id": customerID,
		"items":       []map[string]any{{"product_id": productID, "quantity": 4}},
	})

	rec := suite.request(http.MethodPut, fmt.Sprintf("/api/purchases/%d", purchaseID), map[string]any{
		"items": []map[string]any{},
	})
	suite.Require().Equal(http.StatusBadRequest, rec.Code)

	rec = suite.request(http.MethodGet, fmt.Sprintf("/api/purchases/%d", purchaseID), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	purchase := decodeInto[domain.Purchase](suite, rec)
	suite.requireMoney("29.00", purchase.TotalCost)
	suite.Require().Len(purchase.Items, 1)
}
