package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dangtrinh58/goshop/internal/core/domain"
)

const cartItemColumns = `id, cart_id, product_id, quantity, total, created_at, updated_at`

func (m *MySQLAdapter) GetCartByUserID(ctx context.Context, userID int64) (domain.Cart, error) {
	var cart domain.Cart
	err := m.db.GetContext(ctx, &cart, `
		SELECT id, user_id, created_at, updated_at
		FROM carts WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, fmt.Errorf("%w: user %d", domain.ErrCartNotFound, userID)
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("query cart: %w", err)
	}

	err = m.db.SelectContext(ctx, &cart.Items,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = ? ORDER BY id`,
		cart.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("query cart items: %w", err)
	}
	if err := m.attachProducts(ctx, cart.Items); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (m *MySQLAdapter) attachProducts(ctx context.Context, items []domain.CartItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	query, args, err := sqlx.In(
		`SELECT `+productColumns+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("build products query: %w", err)
	}

	var products []domain.Product
	if err := m.db.SelectContext(ctx, &products, query, args...); err != nil {
		return fmt.Errorf("query cart products: %w", err)
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range items {
		if p, ok := byID[items[i].ProductID]; ok {
			product := p
			items[i].Product = &product
		}
	}
	return nil
}

func (m *MySQLAdapter) EnsureCart(ctx context.Context, userID int64) (domain.Cart, error) {
	cart, err := m.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrCartNotFound) {
		return domain.Cart{}, err
	}

	_, err = m.db.ExecContext(ctx,
		`INSERT IGNORE INTO carts (user_id) VALUES (?)`, userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("insert cart: %w", err)
	}
	return m.GetCartByUserID(ctx, userID)
}

func (m *MySQLAdapter) GetCartItem(ctx context.Context, cartID, productID int64) (domain.CartItem, error) {
	var item domain.CartItem
	err := m.db.GetContext(ctx, &item,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = ? AND product_id = ?`,
		cartID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CartItem{}, fmt.Errorf("%w: product %d", domain.ErrCartItemNotFound, productID)
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("query cart item: %w", err)
	}
	return item, nil
}

func (m *MySQLAdapter) CreateCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity, total)
		VALUES (?, ?, ?, ?)`,
		item.CartID, item.ProductID, item.Quantity, item.Total,
	)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("insert cart item: %w", err)
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("cart item id: %w", err)
	}
	return item, nil
}

func (m *MySQLAdapter) UpdateCartItem(ctx context.Context, item domain.CartItem) error {
	_, err := m.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = ?, total = ?, updated_at = NOW()
		WHERE id = ?`,
		item.Quantity, item.Total, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) DeleteCartItem(ctx context.Context, cartID, productID int64) error {
	result, err := m.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`,
		cartID, productID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrCartItemNotFound, productID)
	}
	return nil
}

func (m *MySQLAdapter) ClearCart(ctx context.Context, cartID int64) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
