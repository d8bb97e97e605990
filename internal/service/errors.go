package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput базовая ошибка валидации; детали добавляются обёрткой
	ErrInvalidInput = errors.New("invalid input")
	// ErrCategoryInUse категорию нельзя удалить, пока на неё ссылается активный комплект
	ErrCategoryInUse = errors.New("category is in use by active clothing sets")
)

// InsufficientInventoryError отказ в оформлении: для позиции не хватает
// свободных единиц на запрошенный интервал
type InsufficientInventoryError struct {
	ClothingSetID int64
	SetName       string
	Available     int64
	Requested     int64
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for clothing set %q (id %d): available %d, requested %d",
		e.SetName, e.ClothingSetID, e.Available, e.Requested)
}
