package checkout

import (
	"strconv"
	"strings"

	"autoparts/internal/domain"
	"autoparts/internal/offers"
)

// CheckAll сверяет позиции с последним известным остатком и возвращает все
// позиции своего склада, где запрошено больше, чем есть. Позиции поставщиков
// и позиции без остатка не проверяются. Пустой результат: заказ можно
// отправлять как есть.
func CheckAll(lines []domain.CartLine) []domain.StockCheckResult {
	var out []domain.StockCheckResult
	for _, l := range lines {
		if l.Origin() != domain.OriginInternal {
			continue
		}
		available := offers.ParseStock(l.Stock)
		if available == nil || *available >= l.Quantity {
			continue
		}
		out = append(out, domain.StockCheckResult{
			LineID:    l.ID,
			Name:      l.Name,
			Available: *available,
			Requested: l.Quantity,
		})
	}
	return out
}

// ClampToAvailable урезает помеченные позиции до доступного количества,
// позиции с нулём выбрасывает. Исходный lines не меняется.
func ClampToAvailable(lines []domain.CartLine, flagged []domain.StockCheckResult) []domain.CartLine {
	byLine := make(map[string]int64, len(flagged))
	for _, r := range flagged {
		byLine[r.LineID] = r.Available
	}

	out := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		if available, ok := byLine[l.ID]; ok {
			if available < 1 {
				continue
			}
			l.Quantity = available
		}
		out = append(out, l)
	}
	return out
}

// BuildRequest собирает из позиций запрос на создание заказа
func BuildRequest(lines []domain.CartLine, customer domain.Customer, currency string) domain.OrderRequest {
	req := domain.OrderRequest{
		Customer: customer,
		Currency: currency,
		Items:    make([]domain.OrderRequestItem, 0, len(lines)),
	}
	for _, l := range lines {
		item := domain.OrderRequestItem{
			LineID:   l.ID,
			Name:     l.Name,
			Article:  l.Article,
			Brand:    l.Brand,
			Price:    l.Price,
			Quantity: l.Quantity,
		}
		if l.IsExternal {
			item.ExternalID = l.OfferKey
		} else {
			item.ProductID = l.ProductID
		}
		req.Items = append(req.Items, item)
	}
	return req
}

// applyMismatch записывает остаток из отказа в позицию, к которой он
// относится. false, если такой позиции нет.
func applyMismatch(lines []domain.CartLine, m *domain.StockMismatchError) bool {
	for i, l := range lines {
		if l.IsExternal {
			continue
		}
		byID := m.ProductID != "" && l.ProductID == m.ProductID
		byName := m.ProductID == "" && strings.EqualFold(strings.TrimSpace(l.Name), strings.TrimSpace(m.Name))
		if byID || byName {
			lines[i].Stock = strconv.FormatInt(m.Available, 10)
			return true
		}
	}
	return false
}
