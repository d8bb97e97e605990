package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category категория проката (мягкое удаление через IsActive)
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClothingSet комплект одежды в каталоге.
// Quantity — общее число единиц во владении; доступность всегда вычисляется,
// никогда не хранится.
type ClothingSet struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Quantity    int64           `json:"quantity"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	ImageURL    string          `json:"image_url,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Order заказ на прокат: закрытый интервал дат [StartDate, EndDate]
type Order struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	Status        OrderStatus     `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItem позиция заказа. PricePerDay — снимок цены на момент оформления,
// не живая ссылка на текущую цену комплекта.
type OrderItem struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	ClothingSetID int64           `json:"clothing_set_id"`
	Quantity      int64           `json:"quantity"`
	PricePerDay   decimal.Decimal `json:"price_per_day"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// ItemWithSet позиция заказа вместе с комплектом из каталога
type ItemWithSet struct {
	OrderItem
	ClothingSet ClothingSet `json:"clothing_set"`
}

// OrderWithItems заказ с раскрытыми позициями
type OrderWithItems struct {
	Order
	Items []ItemWithSet `json:"items"`
}

// Overlaps пересечение закрытых интервалов: бронь, заканчивающаяся в день X,
// конфликтует с заявкой, начинающейся в день X
func (o *Order) Overlaps(start, end time.Time) bool {
	return !o.StartDate.After(end) && !o.EndDate.Before(start)
}

// HoldsInventory true, если заказ удерживает инвентарь:
// cancelled и returned никогда не участвуют в расчёте доступности
func (o *Order) HoldsInventory() bool {
	return o.Status != OrderStatusCancelled && o.Status != OrderStatusReturned
}

// RentalDays число дней аренды закрытого интервала (обе границы включены)
func RentalDays(start, end time.Time) int64 {
	return int64(end.Sub(start).Hours()/24) + 1
}
