package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangtrinh58/goshop/internal/core/domain"
)

// mockOrderRepo reproduces the adapter's all-or-nothing semantics in memory:
// stock is only committed once every line of the request has validated.
type mockOrderRepo struct {
	mu     sync.Mutex
	stock  map[int64]int
	price  map[int64]decimal.Decimal
	orders map[int64]*domain.Order
	nextID int64
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		stock:  make(map[int64]int),
		price:  make(map[int64]decimal.Decimal),
		orders: make(map[int64]*domain.Order),
	}
}

func (m *mockOrderRepo) addProduct(id int64, price string, stock int) {
	m.price[id] = decimal.RequireFromString(price)
	m.stock[id] = stock
}

func (m *mockOrderRepo) PlaceOrder(ctx context.Context, userID int64, lines []domain.OrderLine) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	pending := make(map[int64]int)
	var items []domain.OrderItem

	for _, line := range lines {
		price, ok := m.price[line.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, line.ProductID)
		}
		available := m.stock[line.ProductID] - pending[line.ProductID]
		if available < line.Quantity {
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID: line.ProductID,
				Available: available,
				Requested: line.Quantity,
			}
		}
		pending[line.ProductID] += line.Quantity
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	for id, qty := range pending {
		m.stock[id] -= qty
	}

	m.nextID++
	order := &domain.Order{
		ID:          m.nextID,
		UserID:      userID,
		TotalAmount: total,
		Status:      domain.OrderStatusPending,
		Items:       items,
	}
	m.orders[order.ID] = order
	return *order, nil
}

func (m *mockOrderRepo) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	return *order, nil
}

func (m *mockOrderRepo) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []domain.Order
	for id := int64(1); id <= m.nextID; id++ {
		if o, ok := m.orders[id]; ok && o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []domain.Order
	for id := int64(1); id <= m.nextID; id++ {
		if o, ok := m.orders[id]; ok {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	if order.Status.Terminal() {
		return domain.Order{}, fmt.Errorf("%w: id %d is %s", domain.ErrOrderFinalized, id, order.Status)
	}
	order.Status = status
	return *order, nil
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := newMockOrderRepo()
	repo.addProduct(1, "5.00", 10)
	svc := NewOrderService(repo)

	order, err := svc.PlaceOrder(context.Background(), 7, []domain.OrderLine{{ProductID: 1, Quantity: 3}})
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("15.00")),
		"expected total 15.00, got %s", order.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 7, repo.stock[1])
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("5.00")))
}

func TestPlaceOrder_EmptyLines(t *testing.T) {
	svc := NewOrderService(newMockOrderRepo())

	_, err := svc.PlaceOrder(context.Background(), 7, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPlaceOrder_InvalidQuantity(t *testing.T) {
	repo := newMockOrderRepo()
	repo.addProduct(1, "5.00", 10)
	svc := NewOrderService(repo)

	_, err := svc.PlaceOrder(context.Background(), 7, []domain.OrderLine{{ProductID: 1, Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidLine)
	assert.Equal(t, 10, repo.stock[1], "validation failure must not touch stock")
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	repo := newMockOrderRepo()
	repo.addProduct(1, "5.00", 2)
	svc := NewOrderService(repo)

	_, err := svc.PlaceOrder(context.Background(), 7, []domain.OrderLine{{ProductID: 1, Quantity: 3}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(1), stockErr.ProductID)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, repo.stock[1])
	assert.Empty(t, repo.orders)
}

func TestPlaceOrder_UnknownProductRollsBackWholeOrder(t *testing.T) {
	repo := newMockOrderRepo()
	repo.addProduct(1, "5.00", 10)
	svc := NewOrderService(repo)

	_, err := svc.PlaceOrder(context.Background(), 7, []domain.OrderLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 99, Quantity: 2},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 10, repo.stock[1], "valid line must be rolled back too")
	assert.Empty(t, repo.orders)
}

func TestPlaceOrder_Concurrent(t *testing.T) {
	initialStock := 20
	totalRequests := 50

	repo := newMockOrderRepo()
	repo.addProduct(1, "5.00", initialStock)
	svc := NewOrderService(repo)

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(context.Background(), 7, []domain.OrderLine{{ProductID: 1, Quantity: 1}})
			if err == nil {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(initialStock), successCount.Load())
	assert.Equal(t, 0, repo.stock[1])
}

func TestSetStatus_ApproveThenReapprove(t *testing.T) {
	repo := newMockOrderRepo()
	repo.addProduct(1, "5.00", 10)
	svc := NewOrderService(repo)

	order, err := svc.PlaceOrder(context.Background(), 7, []domain.OrderLine{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	approved, err := svc.SetStatus(context.Background(), order.ID, domain.OrderStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusApproved, approved.Status)

	_, err = svc.SetStatus(context.Background(), order.ID, domain.OrderStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrOrderFinalized)
}

func TestSetStatus_UnknownOrder(t *testing.T) {
	svc := NewOrderService(newMockOrderRepo())

	_, err := svc.SetStatus(context.Background(), 12345, domain.OrderStatusApproved)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestSetStatus_RejectsNonTerminalTarget(t *testing.T) {
	svc := NewOrderService(newMockOrderRepo())

	_, err := svc.SetStatus(context.Background(), 1, domain.OrderStatusPending)
	assert.ErrorIs(t, err, ErrBadTransition)
}
