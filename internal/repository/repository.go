package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"autoparts/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ProductKey товар каталога: бренд + артикул в нормализованном виде
type ProductKey struct {
	Brand   string
	Article string
}

// NewProductKey нормализует бренд и артикул: регистр, пробелы и дефисы не важны
func NewProductKey(brand, article string) ProductKey {
	clean := strings.NewReplacer(" ", "", "-", "")
	return ProductKey{
		Brand:   strings.ToUpper(strings.TrimSpace(brand)),
		Article: strings.ToUpper(clean.Replace(strings.TrimSpace(article))),
	}
}

// CatalogFilter параметры фильтрации списка товаров каталога
type CatalogFilter struct {
	Brand         string
	NameSubstring string
}

// InternalKey партия своего склада. Один productId по разной цене это разные партии.
type InternalKey struct {
	ProductID string
	Price     decimal.Decimal
}

func (k InternalKey) String() string {
	return k.ProductID + "@" + k.Price.StringFixed(2)
}

// OfferSource источник сырых предложений по товару
type OfferSource interface {
	ProductOffers(ctx context.Context, brand, article string) (*domain.RawProduct, error)
}

// CatalogRepository локальный каталог: товары с предложениями и остатки своего склада
type CatalogRepository interface {
	OfferSource
	Upsert(ctx context.Context, p *domain.RawProduct) error
	Delete(ctx context.Context, brand, article string) error
	List(ctx context.Context, f CatalogFilter) ([]domain.RawProduct, error)
	// InternalOffer ищет строку своего склада по productId и цене партии
	InternalOffer(ctx context.Context, key InternalKey) (domain.ProductRef, domain.RawInternalOffer, error)
	// AdjustStock меняет остаток партии на delta
	AdjustStock(ctx context.Context, key InternalKey, delta int64) error
}

// CartRepository хранилище корзин. Позиции возвращаются в порядке добавления.
type CartRepository interface {
	Lines(ctx context.Context, cartID string) ([]domain.CartLine, error)
	AddLine(ctx context.Context, cartID string, line *domain.CartLine) error
	UpdateQuantity(ctx context.Context, cartID, lineID string, qty int64) error
	SetSelected(ctx context.Context, cartID, lineID string, selected bool) error
	RemoveLine(ctx context.Context, cartID, lineID string) error
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) error
	Clear(ctx context.Context, cartID string) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
}

// TxManager абстракция транзакции. Для in-memory это глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
