package service

import (
	"context"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/port"
)

type CategoryService struct {
	categories port.CategoryRepository
}

func NewCategoryService(categories port.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	return s.categories.CreateCategory(ctx, category)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (domain.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *CategoryService) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return domain.Category{}, err
	}
	return s.categories.GetCategory(ctx, category.ID)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.categories.DeleteCategory(ctx, id)
}
