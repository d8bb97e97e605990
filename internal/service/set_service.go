package service

import (
	"context"
	"fmt"

	"garderob/internal/domain"
	"garderob/internal/repository"
)

// SetService инкапсулирует бизнес-логику вокруг комплектов каталога
type SetService struct {
	repo repository.ClothingSetRepository
}

func NewSetService(repo repository.ClothingSetRepository) *SetService {
	return &SetService{repo: repo}
}

func validateSet(s *domain.ClothingSet) error {
	if s.Name == "" {
		return fmt.Errorf("%w: set name is required", ErrInvalidInput)
	}
	if s.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if s.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if s.PricePerDay.IsNegative() {
		return fmt.Errorf("%w: price per day must not be negative", ErrInvalidInput)
	}
	return nil
}

func (s *SetService) Create(ctx context.Context, set domain.ClothingSet) (*domain.ClothingSet, error) {
	if err := validateSet(&set); err != nil {
		return nil, err
	}
	cp := set
	cp.IsActive = true
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *SetService) GetByID(ctx context.Context, id int64) (*domain.ClothingSet, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: bad set id", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

// Update не меняет CreatedAt и IsActive; общее количество Quantity меняется
// только здесь, бронирования его никогда не трогают
func (s *SetService) Update(ctx context.Context, set domain.ClothingSet) (*domain.ClothingSet, error) {
	if set.ID <= 0 {
		return nil, fmt.Errorf("%w: bad set id", ErrInvalidInput)
	}
	if err := validateSet(&set); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, set.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = set.Name
	existing.Description = set.Description
	existing.Category = set.Category
	existing.Quantity = set.Quantity
	existing.PricePerDay = set.PricePerDay
	if set.ImageURL != "" {
		existing.ImageURL = set.ImageURL
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete мягкое удаление: комплект выпадает из каталога и отчётов,
// но прошлые заказы продолжают ссылаться на него
func (s *SetService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: bad set id", ErrInvalidInput)
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	existing.IsActive = false
	return s.repo.Update(ctx, existing)
}

func (s *SetService) List(ctx context.Context, f repository.SetFilter) ([]domain.ClothingSet, error) {
	return s.repo.List(ctx, f)
}
