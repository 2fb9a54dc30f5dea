package service

import (
	"context"
	"errors"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/port"
)

var ErrNegativePrice = errors.New("price must not be negative")

type ProductService struct {
	products port.ProductRepository
}

func NewProductService(products port.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Price.IsNegative() {
		return domain.Product{}, ErrNegativePrice
	}
	return s.products.CreateProduct(ctx, product)
}

func (s *ProductService) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.ListProducts(ctx, filter)
}

func (s *ProductService) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Price.IsNegative() {
		return domain.Product{}, ErrNegativePrice
	}
	if err := s.products.UpdateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return s.products.GetProduct(ctx, product.ID)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.products.DeleteProduct(ctx, id)
}
