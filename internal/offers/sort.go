package offers

import (
	"math"
	"slices"
	"strings"

	"autoparts/internal/domain"
)

// SortKey колонка, по которой ранжируется витрина
type SortKey string

const (
	SortByPrice    SortKey = "price"
	SortByDelivery SortKey = "delivery"
	SortByStock    SortKey = "stock"
)

// Direction направление вторичного порядка
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// missingDeliveryDays ставит предложения без срока в днях в конец
const missingDeliveryDays = 999

// ParseSortKey понимает price, delivery и stock, остальное это price
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByDelivery, SortByStock:
		return k
	default:
		return SortByPrice
	}
}

// ParseDirection направление из s или направление ключа по умолчанию
func ParseDirection(s string, key SortKey) Direction {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Asc, Desc:
		return d
	default:
		return DefaultDirection(key)
	}
}

// DefaultDirection дешевле, быстрее и с большим остатком идут первыми
func DefaultDirection(key SortKey) Direction {
	if key == SortByStock {
		return Desc
	}
	return Asc
}

// Flip обратное направление
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// SortState активная колонка и направление таблицы предложений
type SortState struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// NewSortState начинает с key в его направлении по умолчанию
func NewSortState(key SortKey) SortState {
	return SortState{Key: key, Direction: DefaultDirection(key)}
}

// Toggle выбирает key: тот же ключ переворачивает направление, новый
// сбрасывает на направление по умолчанию.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Direction: s.Direction.Flip()}
	}
	return NewSortState(key)
}

// Sort отсортированная копия list. При любом ключе сначала приоритетные,
// потом свой склад, потом поставщики, внутри группы по key в направлении dir.
// Сортировка устойчивая.
func Sort(list []domain.Offer, key SortKey, dir Direction) []domain.Offer {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b domain.Offer) int {
		if c := bucket(a) - bucket(b); c != 0 {
			return c
		}
		c := compareByKey(a, b, key)
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

func bucket(o domain.Offer) int {
	switch {
	case o.Preferred:
		return 0
	case o.Origin == domain.OriginInternal:
		return 1
	default:
		return 2
	}
}

func compareByKey(a, b domain.Offer, key SortKey) int {
	switch key {
	case SortByStock:
		return cmpFloat(stockRank(a), stockRank(b))
	case SortByDelivery:
		return cmpFloat(deliveryRank(a), deliveryRank(b))
	default:
		return a.Price.Cmp(b.Price)
	}
}

func stockRank(o domain.Offer) float64 {
	if o.Stock == nil {
		return math.Inf(-1)
	}
	return float64(*o.Stock)
}

func deliveryRank(o domain.Offer) float64 {
	if o.Delivery.Days == nil {
		return missingDeliveryDays
	}
	return float64(*o.Delivery.Days)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
