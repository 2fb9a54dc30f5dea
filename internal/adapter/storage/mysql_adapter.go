package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/dangtrinh58/goshop/internal/core/domain"
)

type MySQLAdapter struct {
	db *sqlx.DB
}

func NewMySQLAdapter(db *sqlx.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// PlaceOrder executes the whole order placement inside one transaction. Each
// requested line locks its product row, so two concurrent orders for the same
// product serialize on the stock check; the conditional decrement keeps stock
// from ever going negative. Any failure rolls the transaction back and leaves
// the database untouched.
func (m *MySQLAdapter) PlaceOrder(ctx context.Context, userID int64, lines []domain.OrderLine) (domain.Order, error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(lines))

	for _, line := range lines {
		var product struct {
			Price decimal.Decimal `db:"price"`
			Stock int             `db:"stock"`
		}
		err := tx.GetContext(ctx, &product, `
			SELECT price, stock FROM products WHERE id = ? FOR UPDATE`,
			line.ProductID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, line.ProductID)
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("lock product %d: %w", line.ProductID, err)
		}

		if product.Stock < line.Quantity {
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID: line.ProductID,
				Available: product.Stock,
				Requested: line.Quantity,
			}
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - ?, updated_at = NOW()
			WHERE id = ? AND stock >= ?`,
			line.Quantity, line.ProductID, line.Quantity,
		)
		if err != nil {
			return domain.Order{}, fmt.Errorf("decrement stock for product %d: %w", line.ProductID, err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID: line.ProductID,
				Available: product.Stock,
				Requested: line.Quantity,
			}
		}

		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, total_amount, status) VALUES (?, ?, ?)`,
		userID, total, domain.OrderStatusPending,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return domain.Order{}, fmt.Errorf("order id: %w", err)
	}

	for i := range items {
		items[i].OrderID = orderID
		itemResult, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			orderID, items[i].ProductID, items[i].Quantity, items[i].Price,
		)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order item: %w", err)
		}
		items[i].ID, _ = itemResult.LastInsertId()
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit order: %w", err)
	}

	return m.GetOrder(ctx, orderID)
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var order domain.Order
	err := m.db.GetContext(ctx, &order, `
		SELECT id, user_id, total_amount, status, created_at, updated_at
		FROM orders WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("query order: %w", err)
	}

	err = m.db.SelectContext(ctx, &order.Items, `
		SELECT id, order_id, product_id, quantity, price, created_at
		FROM order_items WHERE order_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("query order items: %w", err)
	}
	return order, nil
}

func (m *MySQLAdapter) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := m.db.SelectContext(ctx, &orders, `
		SELECT id, user_id, total_amount, status, created_at, updated_at
		FROM orders WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return m.attachItems(ctx, orders)
}

func (m *MySQLAdapter) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := m.db.SelectContext(ctx, &orders, `
		SELECT id, user_id, total_amount, status, created_at, updated_at
		FROM orders ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return m.attachItems(ctx, orders)
}

func (m *MySQLAdapter) attachItems(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	query, args, err := sqlx.In(`
		SELECT id, order_id, product_id, quantity, price, created_at
		FROM order_items WHERE order_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var items []domain.OrderItem
	if err := m.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}

	byOrder := make(map[int64][]domain.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}

// SetOrderStatus transitions a pending order to approved or cancelled. The
// conditional update only matches pending rows; a zero row count is
// disambiguated between an unknown id and an order that already left pending.
// Cancelling does not restock.
func (m *MySQLAdapter) SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	result, err := m.db.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, updated_at = NOW()
		WHERE id = ? AND status = ?`,
		status, id, domain.OrderStatusPending,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		var current domain.OrderStatus
		err := m.db.GetContext(ctx, &current, `SELECT status FROM orders WHERE id = ?`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("query order status: %w", err)
		}
		return domain.Order{}, fmt.Errorf("%w: id %d is %s", domain.ErrOrderFinalized, id, current)
	}

	return m.GetOrder(ctx, id)
}
