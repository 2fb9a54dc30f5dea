package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/port"
)

var (
	ErrEmptyOrder    = errors.New("order must contain at least one line")
	ErrInvalidLine   = errors.New("order line must have a positive product id and quantity")
	ErrBadTransition = errors.New("target status must be approved or cancelled")
)

type OrderService struct {
	orders port.OrderRepository
}

func NewOrderService(orders port.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// PlaceOrder validates the requested lines and hands them to the repository,
// which runs the stock check, price snapshotting and decrement as a single
// transaction. On any failure nothing is persisted.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, lines []domain.OrderLine) (domain.Order, error) {
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	for _, line := range lines {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: product %d quantity %d",
				ErrInvalidLine, line.ProductID, line.Quantity)
		}
	}
	return s.orders.PlaceOrder(ctx, userID, lines)
}

func (s *OrderService) GetOrdersForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAllOrders(ctx)
}

// SetStatus drives the pending -> approved | cancelled workflow. Transitions
// out of a terminal status are rejected by the repository. Cancelling does
// not restock.
func (s *OrderService) SetStatus(ctx context.Context, orderID int64, target domain.OrderStatus) (domain.Order, error) {
	if !target.Terminal() {
		return domain.Order{}, fmt.Errorf("%w: got %s", ErrBadTransition, target)
	}
	return s.orders.SetOrderStatus(ctx, orderID, target)
}
