package offers

import (
	"github.com/shopspring/decimal"

	"autoparts/internal/domain"
)

// priceEpsilon разница цен, меньше которой две позиции одного товара своего
// склада считаются одним предложением. Партии одного productId различаются ценой.
var priceEpsilon = decimal.RequireFromString("0.01")

// SamePrice a и b отличаются меньше чем на копейку
func SamePrice(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(priceEpsilon)
}

// Matches лежит ли в line именно это предложение.
//
// Для productId нужна ещё и совпадающая цена, offerKey достаточно самого
// по себе. Бренд и артикул не сравниваются: одна деталь с двух складов это
// два предложения.
func Matches(o domain.Offer, line domain.CartLine) bool {
	switch {
	case o.ProductID != "" && line.ProductID != "":
		return o.ProductID == line.ProductID && SamePrice(o.Price, line.Price)
	case o.OfferKey != "" && line.OfferKey != "":
		return o.OfferKey == line.OfferKey
	default:
		return false
	}
}

// ExistingQuantity сумма количеств всех позиций с o
func ExistingQuantity(o domain.Offer, lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		if Matches(o, l) {
			total += l.Quantity
		}
	}
	return total
}

// FindLine первая позиция с o
func FindLine(o domain.Offer, lines []domain.CartLine) (domain.CartLine, bool) {
	for _, l := range lines {
		if Matches(o, l) {
			return l, true
		}
	}
	return domain.CartLine{}, false
}
