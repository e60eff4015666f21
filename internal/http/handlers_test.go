package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/repository"
	"autoparts/internal/service"
	"autoparts/internal/telemetry"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	tx := repository.NewMemoryTx(store)

	provider, err := telemetry.Setup(context.Background(), telemetry.ExporterScraper, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	metrics, err := telemetry.NewMetrics(provider.Meter("httpapi-test"))
	require.NoError(t, err)

	catalog := service.NewCatalogService(store, store, store, service.CatalogOptions{Metrics: metrics})
	orders := service.NewOrderService(store, ordersRepo, tx, nil)
	checkout := service.NewCheckoutService(store, orders, 0, "RUB", metrics, nil)
	carts := service.NewCartService(store, catalog, tx, decimal.NewFromInt(39), metrics, nil)

	return NewServer(Services{Catalog: catalog, Carts: carts, Orders: orders, Checkout: checkout}, nil, metrics, provider.Handler())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "decode %q", w.Body.String())
	return out
}

func seed(t *testing.T, s *Server) {
	t.Helper()
	w := doJSON(t, s, http.MethodPut, "/api/v1/products/BOSCH/0986452041", map[string]any{
		"name": "Фильтр масляный",
		"internalOffers": []map[string]any{
			{"id": "1", "productId": "P1", "price": 1250, "quantity": "5 шт", "deliveryDays": 1, "available": true},
		},
		"externalOffers": []map[string]any{
			{"offerKey": "K1", "price": "990", "quantity": 10, "deliveryTime": "12 марта 2026"},
		},
		"analogs": []map[string]any{{"brand": "MANN", "articleNumber": "W712"}},
	})
	require.Equal(t, http.StatusOK, w.Code, "seed bosch: %s", w.Body)
	w = doJSON(t, s, http.MethodPut, "/api/v1/products/MANN/W712", map[string]any{
		"name":           "Фильтр MANN",
		"internalOffers": []map[string]any{{"id": "2", "productId": "PW", "price": 800, "deliveryDays": 2}},
	})
	require.Equal(t, http.StatusOK, w.Code, "seed mann: %s", w.Body)
}

var customerBody = map[string]any{"name": "Иван", "phone": "+79990000000"}

func TestProductAdminFlow(t *testing.T) {
	s := setupServer(t)
	seed(t, s)

	w := doJSON(t, s, http.MethodGet, "/api/v1/products/bosch/0986-452041", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "BOSCH", decode(t, w)["brand"])

	w = doJSON(t, s, http.MethodGet, "/api/v1/products?q=mann", nil)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doJSON(t, s, http.MethodDelete, "/api/v1/products/MANN/W712", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, s, http.MethodGet, "/api/v1/products/MANN/W712", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOffersListing(t *testing.T) {
	s := setupServer(t)
	seed(t, s)

	w := doJSON(t, s, http.MethodGet, "/api/v1/products/BOSCH/0986452041/offers?analogs=true", nil)
	require.Equal(t, http.StatusOK, w.Code, "offers: %s", w.Body)
	list := decode(t, w)["offers"].([]any)
	require.Len(t, list, 3)
	first := list[0].(map[string]any)
	assert.Equal(t, "P1", first["id"])
	assert.Equal(t, "1 день", first["delivery_label"])
	assert.Equal(t, true, first["can_add"])
	last := list[2].(map[string]any)
	assert.Equal(t, "K1", last["id"])
	assert.Equal(t, "12 марта 2026", last["delivery_label"])

	w = doJSON(t, s, http.MethodGet, "/api/v1/products/BOSCH/0986452041/offers?analogs=true&brand=MANN", nil)
	assert.Len(t, decode(t, w)["offers"].([]any), 1, "brand filter")
	w = doJSON(t, s, http.MethodGet, "/api/v1/products/BOSCH/0986452041/offers?min_price=900&max_price=1000", nil)
	assert.Len(t, decode(t, w)["offers"].([]any), 1, "price filter")

	w = doJSON(t, s, http.MethodGet, "/api/v1/products/BOSCH/0986452041/offers?min_price=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, s, http.MethodGet, "/api/v1/products/ACME/1/offers", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartCheckoutAndOrderFlow(t *testing.T) {
	s := setupServer(t)
	seed(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/items", map[string]any{
		"brand": "BOSCH", "article": "0986452041", "product_id": "P1", "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, "add: %s", w.Body)
	lineID := decode(t, w)["line"].(map[string]any)["id"].(string)

	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/items", map[string]any{
		"brand": "BOSCH", "article": "0986452041", "product_id": "P1", "quantity": 10,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ExceedsRemaining", decode(t, w)["reason"])

	w = doJSON(t, s, http.MethodPatch, "/api/v1/carts/c1/items/"+lineID, map[string]any{"quantity": 3})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodPatch, "/api/v1/carts/c1/items/"+lineID, map[string]any{"quantity": 9})
	assert.Equal(t, http.StatusConflict, w.Code, "over stock")
	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/items/"+lineID+"/select", map[string]any{"selected": true})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/carts/c1", nil)
	summary := decode(t, w)["summary"].(map[string]any)
	assert.Equal(t, "3789", summary["final_price"])

	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/checkout", customerBody)
	require.Equal(t, http.StatusCreated, w.Code, "checkout: %s", w.Body)
	assert.Equal(t, "Submitted", decode(t, w)["state"])

	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders/1/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders/1/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddItem_BatchPrice(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPut, "/api/v1/products/BOSCH/0986452041", map[string]any{
		"name": "Фильтр масляный",
		"internalOffers": []map[string]any{
			{"id": "1", "productId": "P1", "price": 1250, "quantity": 5},
			{"id": "2", "productId": "P1", "price": 1400, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, "seed: %s", w.Body)

	add := map[string]any{"brand": "BOSCH", "article": "0986452041", "product_id": "P1", "quantity": 1}
	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/items", add)
	assert.Equal(t, http.StatusBadRequest, w.Code, "two batches need a price: %s", w.Body)

	add["price"] = "1400"
	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/items", add)
	require.Equal(t, http.StatusCreated, w.Code, "add: %s", w.Body)
	assert.Equal(t, "2", decode(t, w)["line"].(map[string]any)["stock"])

	add["price"] = "999"
	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/items", add)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutShortfallResolve(t *testing.T) {
	s := setupServer(t)
	seed(t, s)

	add := map[string]any{"brand": "BOSCH", "article": "0986452041", "product_id": "P1", "quantity": 5}
	w := doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/items", add)
	require.Equal(t, http.StatusCreated, w.Code)
	add["quantity"] = 1
	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c2/items", add)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c2/checkout", customerBody)
	require.Equal(t, http.StatusCreated, w.Code, "checkout c2: %s", w.Body)

	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/checkout", customerBody)
	require.Equal(t, http.StatusOK, w.Code, "shortfall: %s", w.Body)
	body := decode(t, w)
	require.Equal(t, "Shortfall", body["state"])
	short := body["shortfall"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(4), short["available"])
	assert.Equal(t, float64(5), short["requested"])
	id := body["checkout_id"].(string)

	w = doJSON(t, s, http.MethodPost, "/api/v1/checkouts/"+id+"/resolve", map[string]any{"action": "later"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/checkouts/"+id+"/resolve", map[string]any{"action": "order_available"})
	require.Equal(t, http.StatusCreated, w.Code, "resolve: %s", w.Body)
	w = doJSON(t, s, http.MethodPost, "/api/v1/checkouts/"+id+"/resolve", map[string]any{"action": "order_available"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTP_BadRequests(t *testing.T) {
	s := setupServer(t)
	seed(t, s)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/carts/c1/items", strings.NewReader("{"))
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code, "bad json")

	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/empty/checkout", customerBody)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/carts/c1/checkout", map[string]any{"name": "Иван"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "no phone")
	w = doJSON(t, s, http.MethodPatch, "/api/v1/carts/c1/items/x", map[string]any{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code, "zero quantity")
}

func TestHealthAndMetrics(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	raw, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(raw), "storefront_http_request", "request metrics not exported")
}
