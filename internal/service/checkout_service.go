package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"autoparts/internal/checkout"
	"autoparts/internal/domain"
	"autoparts/internal/offers"
	"autoparts/internal/repository"
	"autoparts/internal/telemetry"
)

// Действия Resolve для оформления, остановленного на нехватке
const (
	ActionOrderAvailable = "order_available"
	ActionReturnToCart   = "return_to_cart"
)

// ErrCheckoutNotFound сессия оформления истекла или не существовала
var ErrCheckoutNotFound = fmt.Errorf("checkout %w", repository.ErrNotFound)

// maxPendingCheckouts сверх этого самые старые сессии с нехваткой вытесняются
const maxPendingCheckouts = 10000

// CheckoutService оформляет выбранные позиции корзины. Сессия, ожидающая
// решения по нехватке товара, живёт в кэше до истечения TTL.
type CheckoutService struct {
	carts     repository.CartRepository
	submitter checkout.OrderSubmitter
	sessions  *expirable.LRU[string, *pendingCheckout]
	currency  string
	metrics   *telemetry.Metrics
	log       *zap.Logger
	newID     func() string
}

type pendingCheckout struct {
	cartID  string
	session *checkout.Session
}

func NewCheckoutService(carts repository.CartRepository, submitter checkout.OrderSubmitter, sessionTTL time.Duration, currency string, metrics *telemetry.Metrics, log *zap.Logger) *CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	if sessionTTL <= 0 {
		sessionTTL = 15 * time.Minute
	}
	return &CheckoutService{
		carts:     carts,
		submitter: submitter,
		sessions:  expirable.NewLRU[string, *pendingCheckout](maxPendingCheckouts, nil, sessionTTL),
		currency:  currency,
		metrics:   metrics,
		log:       log,
		newID:     uuid.NewString,
	}
}

// CheckoutResult состояние оформления после перехода
type CheckoutResult struct {
	CheckoutID string                    `json:"checkout_id,omitempty"`
	State      string                    `json:"state"`
	Reason     string                    `json:"reason,omitempty"`
	Message    string                    `json:"message,omitempty"`
	Shortfall  []domain.StockCheckResult `json:"shortfall,omitempty"`
	Order      *domain.Order             `json:"order,omitempty"`
	// Error текст ошибки источника заказов при неудачной отправке
	Error string `json:"error,omitempty"`
}

// Start оформляет выбранные позиции корзины
func (s *CheckoutService) Start(ctx context.Context, cartID string, customer domain.Customer) (*CheckoutResult, error) {
	if cartID == "" {
		return nil, ErrInvalidInput
	}
	if err := validate.Struct(customer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	lines, err := s.carts.Lines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	selected := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.Selected {
			selected = append(selected, l)
		}
	}
	if len(selected) == 0 {
		return nil, checkout.ErrNothingToOrder
	}

	p := &pendingCheckout{
		cartID:  cartID,
		session: checkout.NewSession(s.submitter, selected, customer, s.currency, s.log),
	}
	out, err := p.session.Confirm(ctx)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, s.newID(), p, out)
}

// Resolve завершает оформление, остановленное на нехватке товара
func (s *CheckoutService) Resolve(ctx context.Context, checkoutID, action string) (*CheckoutResult, error) {
	if action != ActionOrderAvailable && action != ActionReturnToCart {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}
	p, ok := s.sessions.Get(checkoutID)
	if !ok {
		return nil, ErrCheckoutNotFound
	}

	var (
		out checkout.Outcome
		err error
	)
	if action == ActionOrderAvailable {
		out, err = p.session.OrderAvailable(ctx)
	} else {
		out, err = p.session.ReturnToCart()
	}
	switch {
	case errors.Is(err, checkout.ErrInvalidTransition):
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	case errors.Is(err, checkout.ErrNothingToOrder):
		s.sessions.Remove(checkoutID)
		return nil, err
	case err != nil:
		return nil, err
	}
	return s.finish(ctx, checkoutID, p, out)
}

func (s *CheckoutService) finish(ctx context.Context, checkoutID string, p *pendingCheckout, out checkout.Outcome) (*CheckoutResult, error) {
	s.metrics.RecordCheckout(ctx, out.State.String(), len(out.Shortfall))
	res := &CheckoutResult{
		State:     out.State.String(),
		Shortfall: out.Shortfall,
		Order:     out.Order,
	}
	if out.Kind != offers.KindNone {
		res.Reason = out.Kind.String()
		res.Message = out.Kind.Message()
	}

	switch out.State {
	case checkout.StateShortfall:
		s.sessions.Add(checkoutID, p)
		res.CheckoutID = checkoutID
	case checkout.StateSubmitted:
		s.sessions.Remove(checkoutID)
		ids := make([]string, 0, len(out.Ordered))
		for _, l := range out.Ordered {
			ids = append(ids, l.ID)
		}
		if err := s.carts.RemoveLines(ctx, p.cartID, ids); err != nil {
			// заказ уже создан, корзину покупатель почистит сам
			s.log.Error("failed to remove ordered lines", zap.String("cart_id", p.cartID), zap.Error(err))
		}
		if out.Order != nil {
			s.log.Info("checkout submitted",
				zap.String("cart_id", p.cartID),
				zap.String("order_number", out.Order.Number),
				zap.Int("lines", len(ids)))
		}
	case checkout.StateFailed:
		s.sessions.Remove(checkoutID)
		if out.Err != nil {
			res.Error = out.Err.Error()
		}
		s.log.Warn("checkout failed", zap.String("cart_id", p.cartID), zap.Error(out.Err))
	default:
		s.sessions.Remove(checkoutID)
	}
	return res, nil
}
