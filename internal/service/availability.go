package service

import (
	"context"
	"errors"
	"time"

	"garderob/internal/repository"
)

// AvailabilityService вычисляет свободный остаток комплекта на интервал дат.
// Доступность всегда выводится из журнала заказов на момент запроса,
// счётчик резервов не ведётся.
type AvailabilityService struct {
	sets   repository.ClothingSetRepository
	orders repository.OrderRepository
}

func NewAvailabilityService(sets repository.ClothingSetRepository, orders repository.OrderRepository) *AvailabilityService {
	return &AvailabilityService{sets: sets, orders: orders}
}

// AvailableQuantity возвращает свободное и общее количество комплекта на
// закрытый интервал [start, end]. Отсутствующий комплект — (0, 0, nil):
// «бронировать нечего», а не ошибка. Упорядоченность start ≤ end — забота
// вызывающего.
func (s *AvailabilityService) AvailableQuantity(ctx context.Context, setID int64, start, end time.Time) (available, total int64, err error) {
	set, err := s.sets.GetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	overlapping, err := s.orders.List(ctx, repository.OrderFilter{
		HoldingOnly:   true,
		OverlapsStart: &start,
		OverlapsEnd:   &end,
	})
	if err != nil {
		return 0, 0, err
	}

	var reserved int64
	for _, o := range overlapping {
		for _, it := range o.Items {
			if it.ClothingSetID == setID {
				reserved += it.Quantity
			}
		}
	}

	available = set.Quantity - reserved
	if available < 0 {
		// clamp: рассогласованные данные не должны давать отрицательный остаток
		available = 0
	}
	return available, set.Quantity, nil
}
