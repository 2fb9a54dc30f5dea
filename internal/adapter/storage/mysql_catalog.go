package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dangtrinh58/goshop/internal/core/domain"
)

const productColumns = `id, name, description, category_id, price, image, stock, featured, created_at, updated_at`

func (m *MySQLAdapter) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO products (name, description, category_id, price, image, stock, featured)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		product.Name, product.Description, product.CategoryID, product.Price,
		product.Image, product.Stock, product.Featured,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Product{}, fmt.Errorf("product id: %w", err)
	}
	return m.GetProduct(ctx, id)
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	err := m.db.GetContext(ctx, &product,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("query product: %w", err)
	}
	return product, nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var conditions []string
	var args []any

	if filter.Name != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.CategoryID != 0 {
		conditions = append(conditions, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	var products []domain.Product
	if err := m.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return products, nil
}

func (m *MySQLAdapter) UpdateProduct(ctx context.Context, product domain.Product) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, category_id = ?, price = ?, image = ?,
		    stock = ?, featured = ?, updated_at = NOW()
		WHERE id = ?`,
		product.Name, product.Description, product.CategoryID, product.Price,
		product.Image, product.Stock, product.Featured, product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		if _, err := m.GetProduct(ctx, product.ID); err != nil {
			return err
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteProduct(ctx context.Context, id int64) error {
	result, err := m.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	return nil
}

func (m *MySQLAdapter) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO categories (name, description) VALUES (?, ?)`,
		category.Name, category.Description,
	)
	if err != nil {
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Category{}, fmt.Errorf("category id: %w", err)
	}
	return m.GetCategory(ctx, id)
}

func (m *MySQLAdapter) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	var category domain.Category
	err := m.db.GetContext(ctx, &category, `
		SELECT id, name, description, created_at, updated_at
		FROM categories WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, id)
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("query category: %w", err)
	}
	return category, nil
}

func (m *MySQLAdapter) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := m.db.SelectContext(ctx, &categories, `
		SELECT id, name, description, created_at, updated_at
		FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return categories, nil
}

func (m *MySQLAdapter) UpdateCategory(ctx context.Context, category domain.Category) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, description = ?, updated_at = NOW()
		WHERE id = ?`,
		category.Name, category.Description, category.ID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		if _, err := m.GetCategory(ctx, category.ID); err != nil {
			return err
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteCategory(ctx context.Context, id int64) error {
	result, err := m.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, id)
	}
	return nil
}
