package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangtrinh58/goshop/internal/adapter/token"
	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/core/service"
)

// One registration per test process; prometheus collectors cannot be
// registered twice.
var (
	testMetrics     *Metrics
	testMetricsOnce sync.Once
)

func getTestMetrics() *Metrics {
	testMetricsOnce.Do(func() {
		testMetrics = NewMetrics()
	})
	return testMetrics
}

type stubOrderRepo struct {
	mu     sync.Mutex
	stock  map[int64]int
	price  map[int64]decimal.Decimal
	orders map[int64]*domain.Order
	nextID int64
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		stock:  make(map[int64]int),
		price:  make(map[int64]decimal.Decimal),
		orders: make(map[int64]*domain.Order),
	}
}

func (s *stubOrderRepo) addProduct(id int64, price string, stock int) {
	s.price[id] = decimal.RequireFromString(price)
	s.stock[id] = stock
}

func (s *stubOrderRepo) PlaceOrder(ctx context.Context, userID int64, lines []domain.OrderLine) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	var items []domain.OrderItem
	for _, line := range lines {
		price, ok := s.price[line.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, line.ProductID)
		}
		if s.stock[line.ProductID] < line.Quantity {
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID: line.ProductID,
				Available: s.stock[line.ProductID],
				Requested: line.Quantity,
			}
		}
		items = append(items, domain.OrderItem{ProductID: line.ProductID, Quantity: line.Quantity, Price: price})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	for _, item := range items {
		s.stock[item.ProductID] -= item.Quantity
	}

	s.nextID++
	order := &domain.Order{ID: s.nextID, UserID: userID, TotalAmount: total,
		Status: domain.OrderStatusPending, Items: items}
	s.orders[order.ID] = order
	return *order, nil
}

func (s *stubOrderRepo) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.orders[id]; ok {
		return *order, nil
	}
	return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
}

func (s *stubOrderRepo) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []domain.Order
	for id := int64(1); id <= s.nextID; id++ {
		if o, ok := s.orders[id]; ok && o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (s *stubOrderRepo) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []domain.Order
	for id := int64(1); id <= s.nextID; id++ {
		if o, ok := s.orders[id]; ok {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (s *stubOrderRepo) SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	if order.Status.Terminal() {
		return domain.Order{}, fmt.Errorf("%w: id %d is %s", domain.ErrOrderFinalized, id, order.Status)
	}
	order.Status = status
	return *order, nil
}

type routerEnv struct {
	router http.Handler
	tokens *token.JWTIssuer
	repo   *stubOrderRepo
}

func newRouterEnv() *routerEnv {
	repo := newStubOrderRepo()
	tokens := token.NewJWTIssuer("handler-test-secret", time.Hour)
	svcs := Services{Orders: service.NewOrderService(repo)}
	return &routerEnv{
		router: NewRouter(svcs, tokens, getTestMetrics()),
		tokens: tokens,
		repo:   repo,
	}
}

func (e *routerEnv) bearer(t *testing.T, userID int64, role domain.Role) string {
	t.Helper()
	signed, err := e.tokens.Issue(userID, role)
	require.NoError(t, err)
	return "Bearer " + signed
}

func (e *routerEnv) do(t *testing.T, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrder_RequiresAuth(t *testing.T) {
	env := newRouterEnv()

	rec := env.do(t, http.MethodPost, "/api/orders", "", `{"cartItems":[{"productId":1,"quantity":1}]}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder_Success(t *testing.T) {
	env := newRouterEnv()
	env.repo.addProduct(1, "5.00", 10)

	rec := env.do(t, http.MethodPost, "/api/orders", env.bearer(t, 7, domain.RoleUser),
		`{"cartItems":[{"productId":1,"quantity":3}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, int64(7), order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("15.00")))
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	env := newRouterEnv()
	auth := env.bearer(t, 7, domain.RoleUser)

	rec := env.do(t, http.MethodPost, "/api/orders", auth, `{"cartItems":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/orders", auth,
		`{"cartItems":[{"productId":0,"quantity":-1}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Fields, 2)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	env := newRouterEnv()

	rec := env.do(t, http.MethodPost, "/api/orders", env.bearer(t, 7, domain.RoleUser),
		`{"cartItems":[{"productId":99,"quantity":1}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	env := newRouterEnv()
	env.repo.addProduct(1, "5.00", 2)

	rec := env.do(t, http.MethodPost, "/api/orders", env.bearer(t, 7, domain.RoleUser),
		`{"cartItems":[{"productId":1,"quantity":3}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListOrders_OnlyOwn(t *testing.T) {
	env := newRouterEnv()
	env.repo.addProduct(1, "5.00", 10)

	rec := env.do(t, http.MethodPost, "/api/orders", env.bearer(t, 7, domain.RoleUser),
		`{"cartItems":[{"productId":1,"quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/orders", env.bearer(t, 8, domain.RoleUser),
		`{"cartItems":[{"productId":1,"quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders", env.bearer(t, 7, domain.RoleUser), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, int64(7), orders[0].UserID)
}

func TestListAllOrders_AdminOnly(t *testing.T) {
	env := newRouterEnv()

	rec := env.do(t, http.MethodGet, "/api/orders/all", env.bearer(t, 7, domain.RoleUser), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders/all", env.bearer(t, 1, domain.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApproveOrder_StaffAllowed(t *testing.T) {
	env := newRouterEnv()
	env.repo.addProduct(1, "5.00", 10)

	rec := env.do(t, http.MethodPost, "/api/orders", env.bearer(t, 7, domain.RoleUser),
		`{"cartItems":[{"productId":1,"quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	path := fmt.Sprintf("/api/orders/%d/approve", order.ID)
	rec = env.do(t, http.MethodPut, path, env.bearer(t, 7, domain.RoleUser), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, path, env.bearer(t, 2, domain.RoleStaff), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var approved domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	assert.Equal(t, domain.OrderStatusApproved, approved.Status)

	// Re-cancelling a terminal order conflicts.
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/cancel", order.ID),
		env.bearer(t, 2, domain.RoleStaff), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApproveOrder_NotFound(t *testing.T) {
	env := newRouterEnv()

	rec := env.do(t, http.MethodPut, "/api/orders/12345/approve",
		env.bearer(t, 1, domain.RoleAdmin), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
