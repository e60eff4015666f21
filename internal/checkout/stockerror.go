package checkout

import (
	"errors"
	"regexp"
	"strconv"

	"autoparts/internal/domain"
)

// stockTriple название товара в кавычках и два числа: сначала доступно,
// потом запрошено
var stockTriple = regexp.MustCompile(`["«]([^"»]+)["»]\D*?(\d+)\D+?(\d+)`)

// ParseStockError достаёт из отказа тройку (название, доступно, запрошено).
// Сначала ищется типизированная ошибка, иначе разбирается текст.
// Для любых других ошибок ok == false.
func ParseStockError(err error) (*domain.StockMismatchError, bool) {
	if err == nil {
		return nil, false
	}
	var typed *domain.StockMismatchError
	if errors.As(err, &typed) {
		return typed, true
	}

	m := stockTriple.FindStringSubmatch(err.Error())
	if m == nil {
		return nil, false
	}
	available, err1 := strconv.ParseInt(m[2], 10, 64)
	requested, err2 := strconv.ParseInt(m[3], 10, 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return &domain.StockMismatchError{Name: m[1], Available: available, Requested: requested}, true
}
