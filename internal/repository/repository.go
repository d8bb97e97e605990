package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"garderob/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrDuplicateName возвращается при нарушении уникальности имени категории
var ErrDuplicateName = errors.New("name already taken")

// CategoryFilter параметры выборки категорий
type CategoryFilter struct {
	ActiveOnly bool
}

// SetFilter параметры выборки комплектов
type SetFilter struct {
	ActiveOnly    bool
	Category      string
	NameSubstring string
}

// OrderFilter параметры выборки заказов. OverlapsStart/OverlapsEnd задают
// закрытый интервал и применяются только вместе: если задана лишь одна
// граница, окно игнорируется. HoldingOnly отсекает cancelled и returned.
type OrderFilter struct {
	OverlapsStart *time.Time
	OverlapsEnd   *time.Time
	HoldingOnly   bool
}

// CategoryRepository интерфейс репозитория категорий
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	List(ctx context.Context, f CategoryFilter) ([]domain.Category, error)
}

// ClothingSetRepository интерфейс репозитория комплектов
type ClothingSetRepository interface {
	Create(ctx context.Context, s *domain.ClothingSet) error
	GetByID(ctx context.Context, id int64) (*domain.ClothingSet, error)
	Update(ctx context.Context, s *domain.ClothingSet) error
	List(ctx context.Context, f SetFilter) ([]domain.ClothingSet, error)
}

// OrderRepository интерфейс репозитория заказов. Create присваивает заказу
// ID, номер ORD-<год>-<порядковый> и CreatedAt, позиции сохраняются вместе
// с заказом как единое целое.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) (*domain.OrderWithItems, error)
	GetByID(ctx context.Context, id int64) (*domain.OrderWithItems, error)
	Update(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, f OrderFilter) ([]domain.OrderWithItems, error)
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
