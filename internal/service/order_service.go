package service

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"garderob/internal/domain"
	"garderob/internal/repository"
)

// OrderService реализует приём заказов и переходы статусов
type OrderService struct {
	sets         repository.ClothingSetRepository
	orders       repository.OrderRepository
	availability *AvailabilityService
	tx           repository.TxManager
}

func NewOrderService(sets repository.ClothingSetRepository, orders repository.OrderRepository, availability *AvailabilityService, tx repository.TxManager) *OrderService {
	return &OrderService{sets: sets, orders: orders, availability: availability, tx: tx}
}

// OrderDraft входные данные заказа без позиций
type OrderDraft struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	StartDate     time.Time
	EndDate       time.Time
	Notes         string
}

// ItemRequest запрошенная позиция. PricePerDay — необязательное
// переопределение цены; по умолчанию снимок берётся из каталога.
type ItemRequest struct {
	ClothingSetID int64
	Quantity      int64
	PricePerDay   *decimal.Decimal
}

var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

func validateDraft(d *OrderDraft) error {
	if d.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if !phoneRe.MatchString(d.CustomerPhone) {
		return fmt.Errorf("%w: customer phone %q is not a valid phone number", ErrInvalidInput, d.CustomerPhone)
	}
	if d.CustomerEmail != "" {
		if _, err := mail.ParseAddress(d.CustomerEmail); err != nil {
			return fmt.Errorf("%w: customer email %q is malformed", ErrInvalidInput, d.CustomerEmail)
		}
	}
	if !d.EndDate.After(d.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}
	return nil
}

// CreateOrder проверяет доступность каждой позиции на интервал заказа и
// атомарно сохраняет заказ вместе с позициями. Проверка и запись выполняются
// внутри одной транзакции: два конкурирующих заказа на один комплект не
// могут оба пройти проверку до записи любого из них.
func (s *OrderService) CreateOrder(ctx context.Context, draft OrderDraft, items []ItemRequest) (*domain.OrderWithItems, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", ErrInvalidInput)
	}
	for _, it := range items {
		if it.ClothingSetID <= 0 || it.Quantity < 1 {
			return nil, fmt.Errorf("%w: bad item: set id and positive quantity are required", ErrInvalidInput)
		}
		if it.PricePerDay != nil && !it.PricePerDay.IsPositive() {
			return nil, fmt.Errorf("%w: price override must be positive", ErrInvalidInput)
		}
	}

	days := domain.RentalDays(draft.StartDate, draft.EndDate)

	var created *domain.OrderWithItems
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		orderItems := make([]domain.OrderItem, 0, len(items))
		total := decimal.Zero
		for _, it := range items {
			set, err := s.sets.GetByID(ctx, it.ClothingSetID)
			if err != nil {
				if err == repository.ErrNotFound {
					return fmt.Errorf("%w: unknown clothing set id %d", ErrInvalidInput, it.ClothingSetID)
				}
				return err
			}
			if !set.IsActive {
				return fmt.Errorf("%w: clothing set %q is not available for rent", ErrInvalidInput, set.Name)
			}

			available, _, err := s.availability.AvailableQuantity(ctx, set.ID, draft.StartDate, draft.EndDate)
			if err != nil {
				return err
			}
			if available < it.Quantity {
				return &InsufficientInventoryError{
					ClothingSetID: set.ID,
					SetName:       set.Name,
					Available:     available,
					Requested:     it.Quantity,
				}
			}

			// price snapshot, decoupled from later catalog edits
			price := set.PricePerDay
			if it.PricePerDay != nil {
				price = *it.PricePerDay
			}
			lineTotal := price.Mul(decimal.NewFromInt(it.Quantity)).Mul(decimal.NewFromInt(days))
			total = total.Add(lineTotal)
			orderItems = append(orderItems, domain.OrderItem{
				ClothingSetID: set.ID,
				Quantity:      it.Quantity,
				PricePerDay:   price,
				TotalPrice:    lineTotal,
			})
		}

		o := domain.Order{
			CustomerName:  draft.CustomerName,
			CustomerPhone: draft.CustomerPhone,
			CustomerEmail: draft.CustomerEmail,
			StartDate:     draft.StartDate,
			EndDate:       draft.EndDate,
			Status:        domain.OrderStatusUpcoming,
			TotalAmount:   total,
			Notes:         draft.Notes,
		}
		out, err := s.orders.Create(ctx, &o, orderItems)
		if err != nil {
			return err
		}
		created = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.OrderWithItems, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: bad order id", ErrInvalidInput)
	}
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.OrderWithItems, error) {
	return s.orders.List(ctx, repository.OrderFilter{})
}

// UpdateStatus переводит заказ в новый статус. Допустимы только переходы
// вперёд по цепочке upcoming → shipped → active → returned и отмена из
// неконечного состояния; прочее отклоняется как ошибка валидации.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.OrderWithItems, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: bad order id", ErrInvalidInput)
	}
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.OrderWithItems
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !domain.CanTransition(o.Status, next) {
			return fmt.Errorf("%w: cannot transition order from %s to %s", ErrInvalidInput, o.Status, next)
		}
		o.Status = next
		if err := s.orders.Update(ctx, &o.Order); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
