package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"autoparts/internal/domain"
	"autoparts/internal/offers"
)

var _ CatalogRepository = (*MemoryStore)(nil)

// ErrStockUnknown остаток строки склада не задан числом
var ErrStockUnknown = errors.New("stock is not tracked")

func (m *MemoryStore) ProductOffers(ctx context.Context, brand, article string) (*domain.RawProduct, error) {
	defer m.read(ctx)()
	p, ok := m.products[NewProductKey(brand, article)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneProduct(p)
	return &cp, nil
}

// Upsert заменяет товар целиком вместе со всеми предложениями
func (m *MemoryStore) Upsert(ctx context.Context, p *domain.RawProduct) error {
	key := NewProductKey(p.Brand, p.ArticleNumber)
	if key.Brand == "" || key.Article == "" {
		return fmt.Errorf("brand and article are required")
	}
	defer m.write(ctx)()
	if old, ok := m.products[key]; ok {
		m.unindex(old)
	}
	m.products[key] = cloneProduct(*p)
	for _, r := range p.InternalOffers {
		if id := internalID(r); id != "" {
			m.productIndex[id] = key
		}
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, brand, article string) error {
	key := NewProductKey(brand, article)
	defer m.write(ctx)()
	p, ok := m.products[key]
	if !ok {
		return ErrNotFound
	}
	m.unindex(p)
	delete(m.products, key)
	return nil
}

func (m *MemoryStore) unindex(p domain.RawProduct) {
	for _, r := range p.InternalOffers {
		delete(m.productIndex, internalID(r))
	}
}

// List возвращает товары, отсортированные по бренду и артикулу
func (m *MemoryStore) List(ctx context.Context, f CatalogFilter) ([]domain.RawProduct, error) {
	defer m.read(ctx)()
	out := make([]domain.RawProduct, 0)
	for _, p := range m.products {
		if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
			continue
		}
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	slices.SortFunc(out, func(a, b domain.RawProduct) int {
		if c := strings.Compare(a.Brand, b.Brand); c != 0 {
			return c
		}
		return strings.Compare(a.ArticleNumber, b.ArticleNumber)
	})
	return out, nil
}

func (m *MemoryStore) InternalOffer(ctx context.Context, key InternalKey) (domain.ProductRef, domain.RawInternalOffer, error) {
	defer m.read(ctx)()
	p, i, err := m.findInternal(key)
	if err != nil {
		return domain.ProductRef{}, domain.RawInternalOffer{}, err
	}
	ref := domain.ProductRef{Brand: p.Brand, ArticleNumber: p.ArticleNumber, Name: p.Name}
	return ref, p.InternalOffers[i], nil
}

// AdjustStock меняет остаток партии; уйти в минус нельзя
func (m *MemoryStore) AdjustStock(ctx context.Context, key InternalKey, delta int64) error {
	defer m.write(ctx)()
	p, i, err := m.findInternal(key)
	if err != nil {
		return err
	}
	current := offers.ParseStock(string(p.InternalOffers[i].Quantity))
	if current == nil {
		return ErrStockUnknown
	}
	next := *current + delta
	if next < 0 {
		return fmt.Errorf("stock of %s would become %d", key, next)
	}
	p.InternalOffers[i].Quantity = domain.RawInt(next)
	return nil
}

// findInternal вызывается под блокировкой. Слайс предложений у товара общий
// с картой, поэтому запись по индексу меняет хранимое значение.
func (m *MemoryStore) findInternal(key InternalKey) (domain.RawProduct, int, error) {
	pk, ok := m.productIndex[key.ProductID]
	if !ok {
		return domain.RawProduct{}, 0, ErrNotFound
	}
	p := m.products[pk]
	i := slices.IndexFunc(p.InternalOffers, func(r domain.RawInternalOffer) bool {
		return internalID(r) == key.ProductID && offers.SamePrice(offers.ParsePrice(string(r.Price)), key.Price)
	})
	if i < 0 {
		return domain.RawProduct{}, 0, ErrNotFound
	}
	return p, i, nil
}

func internalID(r domain.RawInternalOffer) string {
	if id := strings.TrimSpace(r.ProductID); id != "" {
		return id
	}
	return strings.TrimSpace(r.ID)
}

func cloneProduct(p domain.RawProduct) domain.RawProduct {
	p.InternalOffers = slices.Clone(p.InternalOffers)
	p.ExternalOffers = slices.Clone(p.ExternalOffers)
	p.Analogs = slices.Clone(p.Analogs)
	return p
}
