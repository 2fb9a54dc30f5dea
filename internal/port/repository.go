package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dangtrinh58/goshop/internal/core/domain"
)

type UserRepository interface {
	// CreateUser persists a new user and returns it with its assigned id.
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)

	// GetUserByEmail returns domain.ErrUserNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUser(ctx context.Context, id int64) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

type CartRepository interface {
	// GetCartByUserID loads the user's cart with its items and their products.
	// Returns domain.ErrCartNotFound when the user has no cart yet.
	GetCartByUserID(ctx context.Context, userID int64) (domain.Cart, error)

	// EnsureCart returns the user's cart, creating an empty one if absent.
	EnsureCart(ctx context.Context, userID int64) (domain.Cart, error)

	// GetCartItem returns domain.ErrCartItemNotFound when the product is not
	// in the cart.
	GetCartItem(ctx context.Context, cartID, productID int64) (domain.CartItem, error)

	CreateCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	UpdateCartItem(ctx context.Context, item domain.CartItem) error
	DeleteCartItem(ctx context.Context, cartID, productID int64) error
	ClearCart(ctx context.Context, cartID int64) error
}

type OrderRepository interface {
	// PlaceOrder runs the whole order placement as one transaction: per line,
	// lock the product row, verify stock, snapshot the price and decrement
	// stock with a conditional update, then insert the order and its items.
	// Any failure rolls everything back; the store is left untouched.
	PlaceOrder(ctx context.Context, userID int64, lines []domain.OrderLine) (domain.Order, error)

	// GetOrder loads a single order with its items.
	GetOrder(ctx context.Context, id int64) (domain.Order, error)

	ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)

	// SetOrderStatus transitions a pending order to a terminal status.
	// Returns domain.ErrOrderNotFound for an unknown id and
	// domain.ErrOrderFinalized when the order already left pending.
	SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error)
}

type StatsRepository interface {
	// TotalRevenue sums totalAmount over approved orders; zero when none.
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)

	MonthlyRevenue(ctx context.Context) ([]domain.MonthlyRevenue, error)
	TopSellingProducts(ctx context.Context, limit int) ([]domain.TopProduct, error)
}
