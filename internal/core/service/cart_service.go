package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/port"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
}

func NewCartService(carts port.CartRepository, products port.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Get(ctx context.Context, userID int64) (domain.Cart, error) {
	return s.carts.GetCartByUserID(ctx, userID)
}

// AddItem puts a product in the user's cart, creating the cart on first use.
// Adding a product already in the cart merges the quantities. The line total
// is recomputed from the product's current price on every mutation.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, ErrInvalidQuantity
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.carts.EnsureCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	item, err := s.carts.GetCartItem(ctx, cart.ID, productID)
	switch {
	case err == nil:
		item.Quantity += quantity
		item.Total = lineTotal(product.Price, item.Quantity)
		if err := s.carts.UpdateCartItem(ctx, item); err != nil {
			return domain.Cart{}, err
		}
	case errors.Is(err, domain.ErrCartItemNotFound):
		_, err := s.carts.CreateCartItem(ctx, domain.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			Total:     lineTotal(product.Price, quantity),
		})
		if err != nil {
			return domain.Cart{}, err
		}
	default:
		return domain.Cart{}, err
	}

	return s.carts.GetCartByUserID(ctx, userID)
}

// UpdateItemQuantity replaces the quantity of an existing cart line.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID int64, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, ErrInvalidQuantity
	}

	cart, err := s.carts.GetCartByUserID(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	item, err := s.carts.GetCartItem(ctx, cart.ID, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	item.Quantity = quantity
	item.Total = lineTotal(product.Price, quantity)
	if err := s.carts.UpdateCartItem(ctx, item); err != nil {
		return domain.Cart{}, err
	}

	return s.carts.GetCartByUserID(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) error {
	cart, err := s.carts.GetCartByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.carts.DeleteCartItem(ctx, cart.ID, productID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	cart, err := s.carts.GetCartByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.carts.ClearCart(ctx, cart.ID)
}

func lineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
