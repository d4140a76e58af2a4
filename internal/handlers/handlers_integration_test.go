package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loadlab/internal/config"
	"loadlab/internal/latency"
	"loadlab/internal/models"
	"loadlab/internal/repositories"
	"loadlab/internal/server"
	"loadlab/internal/services"
	"loadlab/pkg/testdata"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// setupApp builds the API over a fresh memory store holding a small catalog.
func setupApp(t *testing.T) (*fiber.App, *repositories.Store) {
	t.Helper()
	return setupAppWith(t, server.Deps{})
}

// setupAppWith fills in config, logger and store on deps before building the app.
func setupAppWith(t *testing.T, deps server.Deps) (*fiber.App, *repositories.Store) {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)
	v.Set("JWT_SECRET", "test_jwt_secret")
	v.Set("HTTP_LOG_ENABLED", false)
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := repositories.NewMemoryStore()
	seedProductsForTest(t, store.Products)

	deps.Config = cfg
	deps.Logger = log
	deps.Store = store
	deps.ServiceOptions = []services.Option{services.WithHashCost(bcrypt.MinCost)}
	return server.New(deps), store
}

func TestCancelledServerContextEndsSimulatedDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	app, _ := setupAppWith(t, server.Deps{
		Context: ctx,
		Latency: latency.NewRandomSimulator(map[string]latency.Range{
			latency.ListProducts: {Min: time.Hour, Max: time.Hour},
		}),
	})
	cancel()

	status, body := doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusRequestTimeout, status)
	assert.Equal(t, "Request cancelled", body["error"])

	// Endpoints without a configured window are not delayed.
	status, _ = doJSON(t, app, http.MethodGet, "/api/products/prod_1", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func seedProductsForTest(t *testing.T, repo repositories.ProductRepository) {
	products := []models.Product{
		{ID: "prod_1", Name: "Test Laptop", Description: "For testing purposes", Price: 1000, Category: models.CategoryElectronics, Stock: 5, Rating: 4.1},
		{ID: "prod_2", Name: "Test Monitor", Description: "Another test item", Price: 200, Category: models.CategoryElectronics, Stock: 10, Rating: 4.7},
		{ID: "prod_3", Name: "Test Shirt", Description: "Cotton", Price: 25, Category: models.CategoryClothing, Stock: 50, Rating: 3.3},
	}
	for i := range products {
		require.NoError(t, repo.Create(context.Background(), &products[i]))
	}
}

// doJSON sends body as JSON and decodes the response into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func register(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@x.com",
		"password": "pw",
	})
	require.Equal(t, http.StatusCreated, status)
	return body["token"].(string)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "pw",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password")

	// Duplicate registration
	status, body = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "other@x.com", "password": "pw",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already exists", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "pw",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "a@x.com", "password": "pw",
	})
	assert.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username and password required", body["error"])
}

// TestRegistrationScenario walks the flow a load-test virtual user follows.
func TestRegistrationScenario(t *testing.T) {
	app, _ := setupApp(t)
	gen := testdata.NewGenerator(42)

	for i := 0; i < 3; i++ {
		creds := gen.NewCredentials()
		status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", creds)
		require.Equal(t, http.StatusCreated, status, body)

		status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": creds.Email, "password": creds.Password,
		})
		require.Equal(t, http.StatusOK, status, body)
		token := body["token"].(string)

		productID := testdata.Pick(gen, []string{"prod_1", "prod_2", "prod_3"})
		status, _ = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{
			"productId": productID, "quantity": 1,
		})
		assert.Equal(t, http.StatusOK, status)
	}
}

func TestProductEndpointsArePublic(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/products?category=electronics&sort=price_asc", "", nil)
	require.Equal(t, http.StatusOK, status)
	products := body["products"].([]interface{})
	require.Len(t, products, 2)
	assert.Equal(t, "prod_2", products[0].(map[string]interface{})["id"])
	assert.Equal(t, "prod_1", products[1].(map[string]interface{})["id"])
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["total"])
	assert.Equal(t, float64(1), pagination["pages"])

	status, body = doJSON(t, app, http.MethodGet, "/api/products?page=abc&limit=2", "", nil)
	require.Equal(t, http.StatusOK, status)
	pagination = body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(2), pagination["limit"])
	assert.Equal(t, float64(2), pagination["pages"])

	status, body = doJSON(t, app, http.MethodGet, "/api/products/prod_3", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Test Shirt", body["name"])

	status, body = doJSON(t, app, http.MethodGet, "/api/products/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", body["error"])
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	app, _ := setupApp(t)

	for _, path := range []string{"/api/cart", "/api/orders", "/api/analytics"} {
		status, body := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "Access token required", body["error"])

		status, body = doJSON(t, app, http.MethodGet, path, "garbage", nil)
		assert.Equal(t, http.StatusForbidden, status, path)
		assert.Equal(t, "Invalid token", body["error"])
	}
}

func TestCartAndOrderFlow(t *testing.T) {
	app, store := setupApp(t)
	token := register(t, app, "alice")

	status, body := doJSON(t, app, http.MethodPost, "/api/orders", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cart is empty", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{"productId": "prod_1", "quantity": 6})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient stock", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Product ID required", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{"productId": "ghost"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{"productId": "prod_1", "quantity": 2})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Item added to cart", body["message"])
	assert.Equal(t, float64(1), body["cartSize"])

	// Quantity defaults to one.
	status, body = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{"productId": "prod_3"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["cartSize"])

	status, body = doJSON(t, app, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2025), body["total"])
	assert.Equal(t, float64(2), body["itemCount"])
	items := body["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "prod_1", first["productId"])
	assert.Equal(t, "Test Laptop", first["product"].(map[string]interface{})["name"])

	status, body = doJSON(t, app, http.MethodPost, "/api/orders", token, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Order created successfully", body["message"])
	order := body["order"].(map[string]interface{})
	assert.Equal(t, float64(2025), order["total"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, float64(2), order["itemCount"])
	orderID := order["id"].(string)

	laptop, err := store.Products.GetByID(context.Background(), "prod_1")
	require.NoError(t, err)
	assert.Equal(t, 3, laptop.Stock)

	status, body = doJSON(t, app, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["itemCount"])

	status, body = doJSON(t, app, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, status)
	orders := body["orders"].([]interface{})
	require.Len(t, orders, 1)
	listed := orders[0].(map[string]interface{})
	assert.Equal(t, orderID, listed["id"])
	assert.Contains(t, listed, "createdAt")

	status, body = doJSON(t, app, http.MethodGet, "/api/orders/"+orderID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 2)

	// Another user cannot see it.
	other := register(t, app, "mallory")
	status, body = doJSON(t, app, http.MethodGet, "/api/orders/"+orderID, other, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Order not found", body["error"])

	status, body = doJSON(t, app, http.MethodGet, "/api/orders", other, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["orders"])
}

func TestAnalyticsEndpoint(t *testing.T) {
	app, _ := setupApp(t)
	token := register(t, app, "alice")

	_, _ = doJSON(t, app, http.MethodPost, "/api/cart", token, map[string]interface{}{"productId": "prod_2", "quantity": 1})
	_, _ = doJSON(t, app, http.MethodPost, "/api/orders", token, nil)

	status, body := doJSON(t, app, http.MethodGet, "/api/analytics", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), body["totalProducts"])
	assert.Equal(t, float64(1), body["totalUsers"])
	assert.Equal(t, float64(1), body["totalOrders"])
	assert.Equal(t, float64(200), body["totalRevenue"])
	assert.Equal(t, float64(200), body["averageOrderValue"])
	assert.Len(t, body["topCategories"], 4)
	assert.Len(t, body["recentActivity"], 1)
}

func TestHealthAndFallback(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "uptime")
	assert.Contains(t, body["memory"], "heapAlloc")

	for _, path := range []string{"/does/not/exist", "/api/cartoon", "/api/orders/a/b", "/api/analyticsX"} {
		status, body = doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "Endpoint not found", body["error"], path)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/products?page=4611686018427387904&limit=4611686018427387904", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["products"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "loadlab_http_requests_total")
}
