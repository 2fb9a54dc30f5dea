package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dangtrinh58/goshop/internal/core/domain"
)

func (m *MySQLAdapter) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := m.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders WHERE status = ?`, domain.OrderStatusApproved)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query total revenue: %w", err)
	}
	return total, nil
}

func (m *MySQLAdapter) MonthlyRevenue(ctx context.Context) ([]domain.MonthlyRevenue, error) {
	var buckets []domain.MonthlyRevenue
	err := m.db.SelectContext(ctx, &buckets, `
		SELECT DATE_FORMAT(created_at, '%Y-%m') AS month,
		       SUM(total_amount) AS revenue
		FROM orders
		WHERE status = ?
		GROUP BY DATE_FORMAT(created_at, '%Y-%m')
		ORDER BY month ASC`, domain.OrderStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("query monthly revenue: %w", err)
	}
	return buckets, nil
}

// TopSellingProducts ranks by units sold across all orders regardless of
// status; the product's current category name and price are joined in.
func (m *MySQLAdapter) TopSellingProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	var products []domain.TopProduct
	err := m.db.SelectContext(ctx, &products, `
		SELECT oi.product_id AS product_id,
		       p.name AS name,
		       c.name AS category,
		       p.price AS price,
		       SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		GROUP BY oi.product_id, p.name, c.name, p.price
		ORDER BY total_sold DESC, oi.product_id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top selling products: %w", err)
	}
	return products, nil
}
