package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"store_manager/internal/authz"
	"store_manager/internal/handlers"
	"store_manager/internal/models"
	"store_manager/internal/repository"
	"store_manager/internal/services"
	"store_manager/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	access string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)

	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	users := services.NewUserService(repository.NewUserRepository(db))
	require.NoError(t, users.CreateUser(context.Background(), &models.User{Username: "admin", IsActive: true, IsStaff: true}, "admin"))

	auth := services.NewAuthService(users, nil, services.AuthConfig{
		Secret:     []byte("router-test"),
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}, log)
	policy, err := authz.NewPolicy()
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		ServiceName:    "store-manager-test",
		CORSOrigins:    []string{"http://localhost:5173"},
		RequestTimeout: 5 * time.Second,
		Tokens:         auth,
		Policy:         policy,
		Logger:         log,
		Handlers: Handlers{
			Products:  handlers.NewProductHandler(services.NewProductService(productRepo, log), log),
			Customers: handlers.NewCustomerHandler(services.NewCustomerService(customerRepo, orderRepo, nil, log), log),
			Orders: handlers.NewOrderHandler(services.NewOrderService(
				orderRepo,
				repository.NewOrderItemRepository(db),
				customerRepo,
				productRepo,
				nil,
				log,
			), log),
			Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(repository.NewDashboardRepository(db), log), log),
			Auth:      handlers.NewAuthHandler(auth, log),
			Health:    handlers.NewHealthHandler(db, log),
		},
	})

	s := &testServer{router: router, db: db}
	w := s.do("POST", "/api/token/", `{"username":"admin","password":"admin"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	s.access = pair.Access
	return s
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestAnonymousAccess(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedProduct(t, s.db, "PRD-1", "Home", 1, "5.00")

	assert.Equal(t, http.StatusOK, s.do("GET", "/api/products/", "", "").Code)
	assert.Equal(t, http.StatusOK, s.do("GET", "/api/products/PRD-1/", "", "").Code)
	assert.Equal(t, http.StatusOK, s.do("GET", "/api/health/", "", "").Code)

	for _, tc := range []struct{ method, path string }{
		{"POST", "/api/products/"},
		{"DELETE", "/api/products/PRD-1/"},
		{"GET", "/api/customers/"},
		{"GET", "/api/orders/"},
		{"GET", "/api/dashboard-stats/"},
	} {
		w := s.do(tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
		assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, w.Body.String())
	}
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)

	w := s.do("POST", "/api/token/", `{"username":"admin","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"No active account found with the given credentials"}`, w.Body.String())

	w = s.do("POST", "/api/token/", `{"username":"admin"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"password":["This field is required."]}`, w.Body.String())

	w = s.do("GET", "/api/customers/", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenRefresh(t *testing.T) {
	s := newTestServer(t)

	w := s.do("POST", "/api/token/", `{"username":"admin","password":"admin"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))

	w = s.do("POST", "/api/token/refresh/", `{"refresh":"`+pair.Refresh+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var access models.AccessToken
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &access))
	assert.Equal(t, http.StatusOK, s.do("GET", "/api/customers/", "", access.Access).Code)

	// An access token cannot be used to refresh.
	w = s.do("POST", "/api/token/refresh/", `{"refresh":"`+pair.Access+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token_not_valid", decodeMap(t, w)["code"])
}

func TestOrderRoundTripAndCascade(t *testing.T) {
	s := newTestServer(t)

	w := s.do("POST", "/api/customers/", `{"id":"CUST-1","name":"Ann Lee","email":"ann@example.com"}`, s.access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do("POST", "/api/products/", `{"id":"PRD-1","name":"Headphones","unit_price":"129.99","image":"https://img.example/h.jpg"}`, s.access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do("POST", "/api/products/", `{"id":"PRD-2","name":"Case","unit_price":"10.00"}`, s.access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do("POST", "/api/orders/", `{
		"id": "ORD-1",
		"customer": "CUST-1",
		"payment_method": "Credit Card",
		"payment_status": "paid",
		"total_amount": "269.98",
		"shipping_address": "1 Main St",
		"items": [{"product": "PRD-1", "quantity": 2}, {"product": "PRD-2", "quantity": 1}]
	}`, s.access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A later price change does not touch what was charged.
	w = s.do("PATCH", "/api/products/PRD-1/", `{"unit_price":"99.00"}`, s.access)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do("GET", "/api/orders/ORD-1/", "", s.access)
	require.Equal(t, http.StatusOK, w.Code)
	order := decodeMap(t, w)
	assert.Equal(t, "Ann Lee", order["customer_name"])
	assert.Equal(t, "ann@example.com", order["customer_email"])
	items := order["items"].([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Headphones", first["product_name"])
	assert.Equal(t, "https://img.example/h.jpg", first["product_image"])
	assert.EqualValues(t, 2, first["quantity"])
	assert.Equal(t, "129.99", first["price_at_purchase"])

	// Items are read-only after creation.
	w = s.do("PATCH", "/api/orders/ORD-1/", `{"status":"shipped","items":[]}`, s.access)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decodeMap(t, w)
	assert.Equal(t, "shipped", patched["status"])
	assert.Len(t, patched["items"], 2)

	w = s.do("GET", "/api/dashboard-stats/", "", s.access)
	require.Equal(t, http.StatusOK, w.Code)
	kpi := decodeMap(t, w)["kpi"].(map[string]interface{})
	assert.Equal(t, "269.98", kpi["total_revenue"])
	assert.EqualValues(t, 3, kpi["products_sold"])

	w = s.do("DELETE", "/api/customers/CUST-1/", "", s.access)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusNotFound, s.do("GET", "/api/orders/ORD-1/", "", s.access).Code)
	var itemCount int64
	require.NoError(t, s.db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestRequestIDAndCORSHeaders(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/health/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
