package offers

import (
	"autoparts/internal/domain"
)

// BestKind вид выделенного предложения
type BestKind string

const (
	BestLowestPrice     BestKind = "lowest_price"
	BestCheapestAnalog  BestKind = "cheapest_analog"
	BestFastestDelivery BestKind = "fastest_delivery"
)

// Title заголовок карточки
func (k BestKind) Title() string {
	switch k {
	case BestLowestPrice:
		return "Самая низкая цена"
	case BestCheapestAnalog:
		return "Самый дешевый аналог"
	case BestFastestDelivery:
		return "Самая быстрая доставка"
	default:
		return string(k)
	}
}

// Best выделенное предложение
type Best struct {
	Kind  BestKind     `json:"kind"`
	Offer domain.Offer `json:"offer"`
}

// BestOffers выбирает самое дешёвое предложение, самый дешёвый аналог (если
// аналоги есть) и самое быстрое. Участвуют только доступные к покупке
// предложения со сроком в днях, при равенстве побеждает более раннее.
func BestOffers(list []domain.Offer) []Best {
	var valid []domain.Offer
	for _, o := range list {
		if o.Purchasable() && o.Delivery.Days != nil {
			valid = append(valid, o)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	cheapest, fastest := valid[0], valid[0]
	var analog *domain.Offer
	for i, o := range valid {
		if o.Price.LessThan(cheapest.Price) {
			cheapest = o
		}
		if *o.Delivery.Days < *fastest.Delivery.Days {
			fastest = o
		}
		if o.IsAnalog && (analog == nil || o.Price.LessThan(analog.Price)) {
			analog = &valid[i]
		}
	}

	out := []Best{{Kind: BestLowestPrice, Offer: cheapest}}
	if analog != nil {
		out = append(out, Best{Kind: BestCheapestAnalog, Offer: *analog})
	}
	return append(out, Best{Kind: BestFastestDelivery, Offer: fastest})
}
