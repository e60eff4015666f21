package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"autoparts/internal/domain"
	"autoparts/internal/offers"
	"autoparts/internal/repository"
	"autoparts/internal/telemetry"
)

// ErrQuantityExceedsStock новое количество позиции больше известного остатка
var ErrQuantityExceedsStock = errors.New("quantity exceeds stock")

// OfferRef выбор покупателя: партия своего склада (productId и цена) или offerKey поставщика
type OfferRef struct {
	ProductID string
	OfferKey  string
	// Price нужна, когда у productId несколько партий по разной цене
	Price *decimal.Decimal
}

// OfferFinder ищет актуальное предложение товара
type OfferFinder interface {
	FindOffer(ctx context.Context, brand, article string, ref OfferRef) (domain.Offer, error)
}

// CartService операции с корзиной покупателя
type CartService struct {
	carts         repository.CartRepository
	offers        OfferFinder
	tx            repository.TxManager
	deliveryPrice decimal.Decimal
	metrics       *telemetry.Metrics
	log           *zap.Logger
	newID         func() string
}

func NewCartService(carts repository.CartRepository, finder OfferFinder, tx repository.TxManager, deliveryPrice decimal.Decimal, metrics *telemetry.Metrics, log *zap.Logger) *CartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartService{
		carts:         carts,
		offers:        finder,
		tx:            tx,
		deliveryPrice: deliveryPrice,
		metrics:       metrics,
		log:           log,
		newID:         uuid.NewString,
	}
}

// AddRequest добавление предложения в корзину. Предложение задаётся
// productId с ценой партии (свой склад) либо offerKey (поставщик).
type AddRequest struct {
	Brand     string           `json:"brand"`
	Article   string           `json:"article"`
	ProductID string           `json:"product_id"`
	OfferKey  string           `json:"offer_key"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Quantity  int64            `json:"quantity"`
	// ClampToMax добавить сколько можно, если запрошено больше остатка
	ClampToMax bool `json:"clamp_to_max"`
}

// AddResult итог добавления. Отказ по остатку или цене это не ошибка:
// Added == false, причина в Reason/Message.
type AddResult struct {
	Added     bool             `json:"added"`
	Quantity  int64            `json:"quantity"`
	Clamped   bool             `json:"clamped,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	Message   string           `json:"message,omitempty"`
	Remaining *int64           `json:"remaining,omitempty"`
	Line      *domain.CartLine `json:"line,omitempty"`
	Kind      offers.ErrorKind `json:"-"`
}

// AddOffer проверяет остаток с учётом корзины и добавляет предложение:
// совпадающая позиция увеличивается, иначе создаётся новая
func (s *CartService) AddOffer(ctx context.Context, cartID string, req AddRequest) (*AddResult, error) {
	if cartID == "" || strings.TrimSpace(req.Brand) == "" || strings.TrimSpace(req.Article) == "" {
		return nil, ErrInvalidInput
	}
	if (req.ProductID == "") == (req.OfferKey == "") {
		return nil, fmt.Errorf("%w: exactly one of product_id and offer_key is required", ErrInvalidInput)
	}

	ref := OfferRef{ProductID: req.ProductID, OfferKey: req.OfferKey, Price: req.Price}
	offer, err := s.offers.FindOffer(ctx, req.Brand, req.Article, ref)
	if err != nil {
		return nil, err
	}

	var res *AddResult
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.carts.Lines(ctx, cartID)
		if err != nil {
			return err
		}
		check := offers.ValidateAdd(offer, lines, req.Quantity)
		res = &AddResult{Remaining: check.Remaining, Kind: check.Kind}
		qty := check.ClampedQty
		switch {
		case check.OK:
		case check.Kind == offers.KindExceedsRemaining && req.ClampToMax && qty > 0:
			res.Clamped = true
		default:
			res.Quantity = qty
			res.Reason = check.Kind.String()
			res.Message = check.Message()
			return nil
		}

		if existing, ok := offers.FindLine(offer, lines); ok {
			existing.Quantity += qty
			if err := s.carts.UpdateQuantity(ctx, cartID, existing.ID, existing.Quantity); err != nil {
				return err
			}
			res.Line = &existing
		} else {
			line := newLine(s.newID(), offer, qty)
			if err := s.carts.AddLine(ctx, cartID, &line); err != nil {
				return err
			}
			res.Line = &line
		}
		res.Added = true
		res.Quantity = qty
		if res.Clamped {
			res.Reason = check.Kind.String()
			res.Message = check.Message()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome := "added"
	if !res.Added {
		outcome = res.Kind.String()
	} else if res.Clamped {
		outcome = "clamped"
	}
	s.metrics.RecordAdd(ctx, outcome)
	s.log.Debug("add to cart",
		zap.String("cart_id", cartID),
		zap.String("offer_id", offer.OfferID()),
		zap.String("outcome", outcome),
		zap.Int64("quantity", res.Quantity))
	return res, nil
}

func newLine(id string, o domain.Offer, qty int64) domain.CartLine {
	l := domain.CartLine{
		ID:         id,
		ProductID:  o.ProductID,
		OfferKey:   o.OfferKey,
		Name:       o.Name,
		Brand:      o.Brand,
		Article:    o.Article,
		Price:      o.Price,
		Currency:   o.Currency,
		Quantity:   qty,
		Delivery:   offers.DeliveryLabel(o.Delivery),
		Warehouse:  o.Warehouse,
		Supplier:   o.Supplier,
		IsExternal: o.Origin == domain.OriginExternal,
		Selected:   true,
	}
	if o.Stock != nil {
		l.Stock = strconv.FormatInt(*o.Stock, 10)
	}
	return l
}

// UpdateQuantity задаёт количество позиции. Известный остаток не превышается.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, lineID string, qty int64) (*domain.CartLine, error) {
	if cartID == "" || lineID == "" || qty < 1 {
		return nil, ErrInvalidInput
	}
	var updated *domain.CartLine
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.carts.Lines(ctx, cartID)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(lines, func(l domain.CartLine) bool { return l.ID == lineID })
		if i < 0 {
			return repository.ErrNotFound
		}
		if stock := offers.ParseStock(lines[i].Stock); stock != nil && qty > *stock {
			return fmt.Errorf("%w: Доступно не более %d шт.", ErrQuantityExceedsStock, *stock)
		}
		if err := s.carts.UpdateQuantity(ctx, cartID, lineID, qty); err != nil {
			return err
		}
		l := lines[i]
		l.Quantity = qty
		updated = &l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CartService) SetSelected(ctx context.Context, cartID, lineID string, selected bool) error {
	if cartID == "" || lineID == "" {
		return ErrInvalidInput
	}
	return s.carts.SetSelected(ctx, cartID, lineID, selected)
}

func (s *CartService) Remove(ctx context.Context, cartID, lineID string) error {
	if cartID == "" || lineID == "" {
		return ErrInvalidInput
	}
	return s.carts.RemoveLine(ctx, cartID, lineID)
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	if cartID == "" {
		return ErrInvalidInput
	}
	return s.carts.Clear(ctx, cartID)
}

// Cart корзина с итогами по выбранным позициям
type Cart struct {
	ID      string             `json:"id"`
	Lines   []domain.CartLine  `json:"lines"`
	Summary domain.CartSummary `json:"summary"`
}

func (s *CartService) Get(ctx context.Context, cartID string) (*Cart, error) {
	if cartID == "" {
		return nil, ErrInvalidInput
	}
	lines, err := s.carts.Lines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return &Cart{ID: cartID, Lines: lines, Summary: Summarize(lines, s.deliveryPrice)}, nil
}

// Summarize считает итоги по выбранным позициям. Доставка добавляется,
// только если выбрано хоть что-то.
func Summarize(lines []domain.CartLine, deliveryPrice decimal.Decimal) domain.CartSummary {
	sum := domain.CartSummary{
		TotalPrice:    decimal.Zero,
		TotalDiscount: decimal.Zero,
		DeliveryPrice: decimal.Zero,
	}
	for _, l := range lines {
		if !l.Selected {
			continue
		}
		sum.TotalItems += l.Quantity
		sum.TotalPrice = sum.TotalPrice.Add(l.Total())
	}
	if sum.TotalItems > 0 {
		sum.DeliveryPrice = deliveryPrice
	}
	sum.FinalPrice = sum.TotalPrice.Sub(sum.TotalDiscount).Add(sum.DeliveryPrice)
	return sum
}
