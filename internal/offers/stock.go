package offers

import (
	"fmt"

	"autoparts/internal/domain"
)

//go:generate go tool stringer -type=ErrorKind -trimprefix=Kind -output=errorkind_string.go

// ErrorKind почему предложение нельзя добавить или заказать как просили
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindPriceUnavailable
	KindOutOfStock
	KindExceedsRemaining
	KindStockShortfall
	KindOrderSubmissionFailed
)

// AddCheck результат ValidateAdd
type AddCheck struct {
	OK         bool
	ClampedQty int64
	Kind       ErrorKind
	// Remaining сколько можно было добавить до запроса, nil без ограничения
	Remaining *int64
	// CartHoldsMax OutOfStock из-за корзины, а не пустого склада
	CartHoldsMax bool
}

// Message текст проверки для покупателя
func (c AddCheck) Message() string {
	switch c.Kind {
	case KindOutOfStock:
		if c.CartHoldsMax {
			return "В корзине уже максимальное количество этого товара"
		}
		return KindOutOfStock.Message()
	case KindExceedsRemaining:
		return fmt.Sprintf("Можно добавить не более %d шт.", c.ClampedQty)
	default:
		return c.Kind.Message()
	}
}

// Message текст для покупателя по умолчанию
func (k ErrorKind) Message() string {
	switch k {
	case KindPriceUnavailable:
		return "Цена товара не найдена"
	case KindOutOfStock:
		return "Товара нет в наличии"
	case KindExceedsRemaining:
		return "Запрошено больше, чем есть в наличии"
	case KindStockShortfall:
		return "Часть товаров закончилась, можно заказать доступное количество"
	case KindOrderSubmissionFailed:
		return "Не удалось оформить заказ, попробуйте ещё раз"
	default:
		return ""
	}
}

// Remaining сколько o ещё можно добавить при таких lines.
// nil: остаток неизвестен, ограничения нет.
func Remaining(o domain.Offer, lines []domain.CartLine) *int64 {
	if o.Stock == nil {
		return nil
	}
	r := max(*o.Stock-ExistingQuantity(o, lines), 0)
	return &r
}

// ValidateAdd помещается ли ещё qty штук o рядом с lines.
// Запрос меньше одной штуки считается за одну.
func ValidateAdd(o domain.Offer, lines []domain.CartLine, qty int64) AddCheck {
	if qty < 1 {
		qty = 1
	}
	rem := Remaining(o, lines)

	if !o.Purchasable() {
		return AddCheck{Kind: KindPriceUnavailable, Remaining: rem}
	}
	if rem == nil {
		return AddCheck{OK: true, ClampedQty: qty}
	}
	switch {
	case *rem == 0:
		return AddCheck{
			Kind:         KindOutOfStock,
			Remaining:    rem,
			CartHoldsMax: *o.Stock > 0,
		}
	case *rem < qty:
		return AddCheck{Kind: KindExceedsRemaining, ClampedQty: *rem, Remaining: rem}
	default:
		return AddCheck{OK: true, ClampedQty: qty, Remaining: rem}
	}
}

// StockLabel renders a stock figure as "12 шт", or "нет данных" when unknown.
func StockLabel(stock *int64) string {
	if stock == nil {
		return "нет данных"
	}
	return fmt.Sprintf("%d шт", max(*stock, 0))
}
