package domain

import "github.com/shopspring/decimal"

// MonthlyRevenue is one (year-month, revenue) bucket over approved orders.
type MonthlyRevenue struct {
	Month   string          `db:"month" json:"month"`
	Revenue decimal.Decimal `db:"revenue" json:"revenue"`
}

// TopProduct ranks a product by total quantity sold across all orders,
// regardless of order status.
type TopProduct struct {
	ProductID int64           `db:"product_id" json:"productId"`
	Name      string          `db:"name" json:"name"`
	Category  *string         `db:"category" json:"category,omitempty"`
	Price     decimal.Decimal `db:"price" json:"price"`
	TotalSold int             `db:"total_sold" json:"totalSold"`
}
