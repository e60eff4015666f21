package domain

import "fmt"

// StockMismatchError отказ в оформлении: на складе меньше, чем запрошено.
// Текст ошибки содержит тройку (название, доступно, запрошено) в разбираемом виде.
type StockMismatchError struct {
	// ProductID заполняется, только если отказ пришёл от локального склада
	ProductID string
	Name      string
	Available int64
	Requested int64
}

func (e *StockMismatchError) Error() string {
	return fmt.Sprintf("недостаточно товара %q: доступно %d, запрошено %d", e.Name, e.Available, e.Requested)
}
