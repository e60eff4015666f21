package offers

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"autoparts/internal/domain"
)

// IntRange границы по дням или количеству, включительно
type IntRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

func (r *IntRange) contains(v *int64) bool {
	// неизвестное значение фильтром не отсекается
	if r == nil || v == nil {
		return true
	}
	return *v >= r.Min && *v <= r.Max
}

// PriceRange границы цены, включительно
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func (r *PriceRange) contains(p decimal.Decimal) bool {
	// цена 0 значит "цены нет", как и неизвестный остаток
	if r == nil || !p.IsPositive() {
		return true
	}
	return p.GreaterThanOrEqual(r.Min) && p.LessThanOrEqual(r.Max)
}

// Filter сужает витрину. Нулевое значение пропускает всё.
type Filter struct {
	Brands   []string
	Price    *PriceRange
	Delivery *IntRange
	Quantity *IntRange
	// Search ищет по бренду, артикулу или названию без учёта регистра
	Search string
}

// Active задан ли хоть один критерий
func (f Filter) Active() bool {
	return len(f.Brands) > 0 || f.Price != nil || f.Delivery != nil ||
		f.Quantity != nil || strings.TrimSpace(f.Search) != ""
}

// Keep проходит ли o все критерии f
func (f Filter) Keep(o domain.Offer) bool {
	if len(f.Brands) > 0 && !slices.ContainsFunc(f.Brands, func(b string) bool {
		return strings.EqualFold(b, o.Brand)
	}) {
		return false
	}
	if !f.Price.contains(o.Price) || !f.Delivery.contains(o.Delivery.Days) || !f.Quantity.contains(o.Stock) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return strings.Contains(strings.ToLower(o.Brand), term) ||
			strings.Contains(strings.ToLower(o.Article), term) ||
			strings.Contains(strings.ToLower(o.Name), term)
	}
	return true
}

// Apply предложения list, прошедшие f, в исходном порядке
func Apply(list []domain.Offer, f Filter) []domain.Offer {
	if !f.Active() {
		return slices.Clone(list)
	}
	out := make([]domain.Offer, 0, len(list))
	for _, o := range list {
		if f.Keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// Facets элементы фильтра для витрины. Элемент показывается, только если
// у витрины больше одного различного значения.
type Facets struct {
	Brands   []string    `json:"brands,omitempty"`
	Price    *PriceRange `json:"price,omitempty"`
	Delivery *IntRange   `json:"delivery,omitempty"`
	Quantity *IntRange   `json:"quantity,omitempty"`
}

// BuildFacets строит фасеты по list. Цены расширяются до целых рублей,
// неположительные цены, сроки и количества не учитываются.
func BuildFacets(list []domain.Offer) Facets {
	var (
		f      Facets
		brands = map[string]struct{}{}
		prices []decimal.Decimal
		days   []int64
		qty    []int64
	)
	for _, o := range list {
		if o.Brand != "" {
			brands[o.Brand] = struct{}{}
		}
		if o.Price.IsPositive() {
			prices = append(prices, o.Price)
		}
		if d := o.Delivery.Days; d != nil && *d > 0 {
			days = append(days, *d)
		}
		if s := o.Stock; s != nil && *s > 0 {
			qty = append(qty, *s)
		}
	}

	if len(brands) > 1 {
		for b := range brands {
			f.Brands = append(f.Brands, b)
		}
		slices.Sort(f.Brands)
	}
	if len(prices) > 1 {
		lo, hi := decimal.Min(prices[0], prices[1:]...), decimal.Max(prices[0], prices[1:]...)
		if hi.GreaterThan(lo) {
			f.Price = &PriceRange{Min: lo.Floor(), Max: hi.Ceil()}
		}
	}
	f.Delivery = spread(days)
	f.Quantity = spread(qty)
	return f
}

func spread(vals []int64) *IntRange {
	if len(vals) < 2 {
		return nil
	}
	lo, hi := slices.Min(vals), slices.Max(vals)
	if hi == lo {
		return nil
	}
	return &IntRange{Min: lo, Max: hi}
}
