package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"autoparts/internal/checkout"
	"autoparts/internal/domain"
	"autoparts/internal/offers"
	"autoparts/internal/repository"
)

// OrderService принимает заказы на локальный склад: проверка остатков и цен,
// списание, отмена с возвратом на склад
type OrderService struct {
	catalog   repository.CatalogRepository
	orders    repository.OrderRepository
	tx        repository.TxManager
	log       *zap.Logger
	newNumber func() string
}

var _ checkout.OrderSubmitter = (*OrderService)(nil)

func NewOrderService(catalog repository.CatalogRepository, orders repository.OrderRepository, tx repository.TxManager, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{catalog: catalog, orders: orders, tx: tx, log: log, newNumber: uuid.NewString}
}

var (
	ErrInvalidState = errors.New("invalid state")
	ErrPriceChanged = errors.New("price changed")
)

var validate = validator.New()

// SubmitOrder проверяет наличие и цену позиций своего склада и атомарно
// списывает остатки. Позиции поставщиков принимаются как есть.
// Нехватка товара возвращается как *domain.StockMismatchError.
func (s *OrderService) SubmitOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// сначала проверяем всё, потом списываем: частичного списания быть не должно
		var batches []repository.InternalKey
		demand := make(map[string]int64)
		for _, it := range req.Items {
			if it.ProductID == "" {
				continue
			}
			key := repository.InternalKey{ProductID: it.ProductID, Price: it.Price}
			ref, row, err := s.catalog.InternalOffer(ctx, key)
			if errors.Is(err, repository.ErrNotFound) {
				return s.priceChanged(ctx, it)
			}
			if err != nil {
				return fmt.Errorf("product %s: %w", it.ProductID, err)
			}
			// партия в каталоге хранит свою цену, ею и списываем
			key.Price = offers.ParsePrice(string(row.Price))
			if _, seen := demand[key.String()]; !seen {
				batches = append(batches, key)
			}
			demand[key.String()] += it.Quantity
			stock := offers.ParseStock(string(row.Quantity))
			if stock != nil && *stock < demand[key.String()] {
				name := it.Name
				if name == "" {
					name = ref.Name
				}
				return &domain.StockMismatchError{
					ProductID: it.ProductID,
					Name:      name,
					Available: *stock,
					Requested: demand[key.String()],
				}
			}
		}
		for _, key := range batches {
			err := s.catalog.AdjustStock(ctx, key, -demand[key.String()])
			if err != nil && !errors.Is(err, repository.ErrStockUnknown) {
				return err
			}
		}

		o := newOrder(s.newNumber(), req)
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("order created",
		zap.Int64("order_id", created.ID),
		zap.String("number", created.Number),
		zap.Int("items", len(created.Items)),
		zap.Stringer("total", created.Total))
	return created, nil
}

// priceChanged: партии с такой ценой нет. Если товар ещё продаётся, сообщаем
// его текущую цену, иначе позиция просто не найдена.
func (s *OrderService) priceChanged(ctx context.Context, it domain.OrderRequestItem) error {
	raw, err := s.catalog.ProductOffers(ctx, it.Brand, it.Article)
	if err != nil {
		return fmt.Errorf("product %s: %w", it.ProductID, repository.ErrNotFound)
	}
	for _, o := range offers.NormalizeProduct(*raw, "") {
		if o.Origin == domain.OriginInternal && o.ProductID == it.ProductID {
			return fmt.Errorf("%w: %s стоит %s", ErrPriceChanged, it.Name, o.Price.StringFixed(2))
		}
	}
	return fmt.Errorf("product %s: %w", it.ProductID, repository.ErrNotFound)
}

func validateRequest(req domain.OrderRequest) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidInput)
	}
	if err := validate.Struct(req.Customer); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 || (it.ProductID == "") == (it.ExternalID == "") || !it.Price.IsPositive() {
			return fmt.Errorf("%w: item %q", ErrInvalidInput, it.Name)
		}
	}
	return nil
}

func newOrder(number string, req domain.OrderRequest) domain.Order {
	o := domain.Order{
		Number:   number,
		Customer: req.Customer,
		Status:   domain.OrderStatusConfirmed,
		Total:    decimal.Zero,
		Currency: req.Currency,
		Items:    make([]domain.OrderItem, 0, len(req.Items)),
	}
	if o.Currency == "" {
		o.Currency = domain.DefaultCurrency
	}
	for _, it := range req.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID:  it.ProductID,
			ExternalID: it.ExternalID,
			Name:       it.Name,
			Article:    it.Article,
			Brand:      it.Brand,
			Price:      it.Price,
			Quantity:   it.Quantity,
		})
		o.Total = o.Total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return o
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// CancelOrder если Confirmed, возвращаем товары своего склада и ставим Cancelled
func (s *OrderService) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o.Status != domain.OrderStatusConfirmed {
			return ErrInvalidState
		}
		for _, it := range o.Items {
			if it.ProductID == "" {
				continue
			}
			err := s.catalog.AdjustStock(ctx, repository.InternalKey{ProductID: it.ProductID, Price: it.Price}, it.Quantity)
			switch {
			case errors.Is(err, repository.ErrStockUnknown):
			case errors.Is(err, repository.ErrNotFound):
				s.log.Warn("cancelled item no longer in catalog", zap.String("product_id", it.ProductID))
			case err != nil:
				return err
			}
		}
		o.Status = domain.OrderStatusCancelled
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
