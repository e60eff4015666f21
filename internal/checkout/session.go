package checkout

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"autoparts/internal/domain"
	"autoparts/internal/offers"
)

//go:generate go tool stringer -type=State -trimprefix=State -output=state_string.go

// State состояние попытки оформления
type State int

const (
	StateIdle State = iota
	StateValidating
	StateShortfall
	StateSubmitting
	StateSubmitted
	StateFailed
)

var (
	ErrInvalidTransition = errors.New("недопустимый переход оформления заказа")
	ErrNothingToOrder    = errors.New("нет позиций для заказа")
)

// OrderSubmitter создаёт заказы. Отказ по остатку приходит как
// *domain.StockMismatchError или хотя бы содержит тройку в тексте ошибки.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
}

// Outcome то, что показывается покупателю после перехода
type Outcome struct {
	State     State
	Kind      offers.ErrorKind
	Shortfall []domain.StockCheckResult
	Order     *domain.Order
	// Ordered позиции, попавшие в Order, с итоговым количеством
	Ordered []domain.CartLine
	Err     error
}

// Session ведёт одну попытку оформления:
//
//	Idle -> Validating -> Shortfall | Submitting
//	Shortfall -> Submitting (заказать доступное) | Idle (вернуться в корзину)
//	Submitting -> Submitted | Failed
//	Failed -> Validating, один раз, автоматически
//
// Переходы сериализуются, Session можно использовать из нескольких горутин.
type Session struct {
	mu sync.Mutex

	submitter OrderSubmitter
	customer  domain.Customer
	currency  string
	log       *zap.Logger

	lines     []domain.CartLine
	state     State
	shortfall []domain.StockCheckResult
	ordered   []domain.CartLine
	order     *domain.Order
	err       error
	retried   bool
}

// NewSession начинает в Idle над снимком выбранных позиций корзины
func NewSession(submitter OrderSubmitter, lines []domain.CartLine, customer domain.Customer, currency string, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &Session{
		submitter: submitter,
		customer:  customer,
		currency:  currency,
		log:       log,
		lines:     slices.Clone(lines),
		state:     StateIdle,
	}
}

// State текущее состояние
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Lines текущий снимок позиций вместе с остатками, узнанными из отказов
func (s *Session) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// Confirm покупатель подтверждает заказ
func (s *Session) Confirm(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return s.outcome(), fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, s.state)
	}
	if len(s.lines) == 0 {
		return s.outcome(), ErrNothingToOrder
	}
	s.retried = false
	s.validate(ctx)
	return s.outcome(), nil
}

// OrderAvailable заказывает то, что есть: помеченные позиции урезаются до
// доступного количества, позиции с нулём выбрасываются.
func (s *Session) OrderAvailable(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateShortfall {
		return s.outcome(), fmt.Errorf("%w: order available from %s", ErrInvalidTransition, s.state)
	}
	clamped := ClampToAvailable(s.lines, s.shortfall)
	if len(clamped) == 0 {
		s.transition(StateIdle)
		return s.outcome(), ErrNothingToOrder
	}
	s.lines = clamped
	s.submit(ctx)
	return s.outcome(), nil
}

// ReturnToCart возвращает покупателя в корзину без изменений
func (s *Session) ReturnToCart() (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateShortfall {
		return s.outcome(), fmt.Errorf("%w: return to cart from %s", ErrInvalidTransition, s.state)
	}
	out := s.outcome()
	s.transition(StateIdle)
	out.State = StateIdle
	return out, nil
}

func (s *Session) validate(ctx context.Context) {
	s.transition(StateValidating)
	s.shortfall = CheckAll(s.lines)
	if len(s.shortfall) > 0 {
		s.transition(StateShortfall)
		return
	}
	s.submit(ctx)
}

func (s *Session) submit(ctx context.Context) {
	s.transition(StateSubmitting)
	order, err := s.submitter.SubmitOrder(ctx, BuildRequest(s.lines, s.customer, s.currency))
	if err == nil {
		s.order = order
		s.ordered = slices.Clone(s.lines)
		s.err = nil
		s.transition(StateSubmitted)
		return
	}

	s.err = err
	s.transition(StateFailed)
	s.log.Warn("order submission failed", zap.Error(err), zap.Bool("retried", s.retried))
	if s.retried {
		return
	}
	s.retried = true

	if m, ok := ParseStockError(err); ok {
		if !applyMismatch(s.lines, m) {
			s.log.Warn("stock mismatch for unknown line", zap.String("name", m.Name))
		}
	}
	s.validate(ctx)
}

func (s *Session) transition(to State) {
	s.log.Debug("checkout transition", zap.Stringer("from", s.state), zap.Stringer("to", to))
	s.state = to
}

func (s *Session) outcome() Outcome {
	out := Outcome{
		State:     s.state,
		Shortfall: slices.Clone(s.shortfall),
		Order:     s.order,
		Ordered:   slices.Clone(s.ordered),
	}
	switch s.state {
	case StateShortfall:
		out.Kind = offers.KindStockShortfall
	case StateFailed:
		out.Kind = offers.KindOrderSubmissionFailed
		if _, ok := ParseStockError(s.err); ok {
			out.Kind = offers.KindStockShortfall
		}
		out.Err = s.err
	}
	return out
}
