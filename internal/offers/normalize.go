package offers

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"autoparts/internal/domain"
)

// ParsePrice достаёт неотрицательное число из текста вроде "1 250,50 ₽" или
// "1,250.50". Всё кроме цифр и разделителей отбрасывается, последний
// разделитель десятичный. Неразборчивая цена даёт ноль, такое предложение
// купить нельзя.
func ParsePrice(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return decimal.Zero
	}

	sep := max(strings.LastIndex(clean, ","), strings.LastIndex(clean, "."))
	if sep >= 0 {
		whole := strings.NewReplacer(",", "", ".", "").Replace(clean[:sep])
		frac := clean[sep+1:]
		if whole == "" {
			whole = "0"
		}
		clean = whole
		if frac != "" {
			clean += "." + frac
		}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseStock первая группа цифр в s ("12 шт" -> 12).
// Без цифр остаток неизвестен и возвращается nil, нулём он не считается.
func ParseStock(s string) *int64 {
	start := strings.IndexFunc(s, isASCIIDigit)
	if start < 0 {
		return nil
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.ParseInt(s[start:end], 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

const sameDayDelivery = "в день заказа"

// ParseDelivery сохраняет распознанную дату как есть, иначе читает число
// дней. Склонение только при выводе.
func ParseDelivery(s string) domain.Delivery {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Delivery{}
	}
	if IsDeliveryDate(s) {
		return domain.Delivery{Date: s}
	}
	if strings.EqualFold(s, sameDayDelivery) {
		zero := int64(0)
		return domain.Delivery{Days: &zero}
	}
	return domain.Delivery{Days: ParseStock(s)}
}

// NormalizeInternal разбирает строку своего склада. Строки с available
// становятся приоритетными предложениями.
func NormalizeInternal(p domain.ProductRef, r domain.RawInternalOffer, currency string) domain.Offer {
	productID := strings.TrimSpace(r.ProductID)
	if productID == "" {
		productID = strings.TrimSpace(r.ID)
	}
	return domain.Offer{
		ProductID: productID,
		Origin:    domain.OriginInternal,
		Price:     ParsePrice(string(r.Price)),
		Currency:  currencyOr(currency, ""),
		Stock:     ParseStock(string(r.Quantity)),
		Delivery:  ParseDelivery(string(r.DeliveryDays)),
		Preferred: r.Available,
		Brand:     p.Brand,
		Article:   p.ArticleNumber,
		Name:      p.Name,
		Warehouse: r.Warehouse,
		Supplier:  r.Supplier,
	}
}

// NormalizeExternal разбирает предложение поставщика. Пустые бренд, артикул
// и название берутся у товара.
func NormalizeExternal(p domain.ProductRef, r domain.RawExternalOffer, currency string) domain.Offer {
	return domain.Offer{
		OfferKey:  strings.TrimSpace(r.OfferKey),
		Origin:    domain.OriginExternal,
		Price:     ParsePrice(string(r.Price)),
		Currency:  currencyOr(r.Currency, currency),
		Stock:     ParseStock(string(r.Quantity)),
		Delivery:  ParseDelivery(string(r.DeliveryTime)),
		Preferred: r.Recommended,
		Brand:     firstNonEmpty(r.Brand, p.Brand),
		Article:   firstNonEmpty(r.Code, p.ArticleNumber),
		Name:      firstNonEmpty(r.Name, p.Name),
		Warehouse: r.Warehouse,
		Supplier:  r.Supplier,
	}
}

// NormalizeProduct все предложения товара: сначала свой склад, внутри
// группы исходный порядок.
func NormalizeProduct(p domain.RawProduct, currency string) []domain.Offer {
	ref := domain.ProductRef{Brand: p.Brand, ArticleNumber: p.ArticleNumber, Name: p.Name}
	out := make([]domain.Offer, 0, len(p.InternalOffers)+len(p.ExternalOffers))
	for _, r := range p.InternalOffers {
		out = append(out, NormalizeInternal(ref, r, currency))
	}
	for _, r := range p.ExternalOffers {
		out = append(out, NormalizeExternal(ref, r, currency))
	}
	return out
}

func currencyOr(c, fallback string) string {
	if c = strings.TrimSpace(c); c != "" {
		return strings.ToUpper(c)
	}
	if fallback != "" {
		return fallback
	}
	return domain.DefaultCurrency
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
