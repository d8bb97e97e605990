package domain

import "fmt"

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusUpcoming  OrderStatus = "upcoming"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusActive    OrderStatus = "active"
	OrderStatusReturned  OrderStatus = "returned"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// порядок прямой цепочки upcoming → shipped → active → returned
var statusRank = map[OrderStatus]int{
	OrderStatusUpcoming: 0,
	OrderStatusShipped:  1,
	OrderStatusActive:   2,
	OrderStatusReturned: 3,
}

// ParseOrderStatus проверяет, что строка — один из пяти допустимых статусов
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderStatusUpcoming, OrderStatusShipped, OrderStatusActive,
		OrderStatusReturned, OrderStatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// IsTerminal returned и cancelled — конечные состояния
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReturned || s == OrderStatusCancelled
}

// CanTransition допустимость перехода: только вперёд по цепочке
// upcoming → shipped → active → returned (пропуск шагов разрешён,
// досрочный возврат — это upcoming → returned), cancelled достижим из
// любого неконечного состояния, из конечных переходов нет.
func CanTransition(from, to OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	fr, ok := statusRank[from]
	if !ok {
		return false
	}
	tr, ok := statusRank[to]
	if !ok {
		return false
	}
	return tr > fr
}
