package service

import (
	"context"
	"fmt"

	"garderob/internal/domain"
	"garderob/internal/repository"
)

// CategoryService логика категорий: CRUD и защита от удаления используемой категории
type CategoryService struct {
	categories repository.CategoryRepository
	sets       repository.ClothingSetRepository
}

func NewCategoryService(categories repository.CategoryRepository, sets repository.ClothingSetRepository) *CategoryService {
	return &CategoryService{categories: categories, sets: sets}
}

func (s *CategoryService) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	cp := c
	cp.IsActive = true
	if err := s.categories.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: bad category id", ErrInvalidInput)
	}
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.ID <= 0 || c.Name == "" {
		return nil, fmt.Errorf("%w: category id and name are required", ErrInvalidInput)
	}
	existing, err := s.categories.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = c.Name
	existing.Description = c.Description
	if err := s.categories.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete мягко удаляет категорию. Пока на имя категории ссылается хотя бы
// один активный комплект, удаление запрещено и категория остаётся активной.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: bad category id", ErrInvalidInput)
	}
	existing, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	inUse, err := s.sets.List(ctx, repository.SetFilter{ActiveOnly: true, Category: existing.Name})
	if err != nil {
		return err
	}
	if len(inUse) > 0 {
		return fmt.Errorf("%w: %q is referenced by %d active set(s)", ErrCategoryInUse, existing.Name, len(inUse))
	}
	existing.IsActive = false
	return s.categories.Update(ctx, existing)
}

func (s *CategoryService) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return s.categories.List(ctx, repository.CategoryFilter{ActiveOnly: activeOnly})
}
