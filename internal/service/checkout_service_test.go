package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/checkout"
	"autoparts/internal/domain"
	"autoparts/internal/repository"
)

// shortfallCart кладёт в корзину P1 x1 и P2 x2, затем продаёт одну P2 мимо
// корзины, так что снимок остатка в корзине устаревает
func shortfallCart(t *testing.T, f *fixture, cartID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.carts.AddOffer(ctx, cartID, addP1(1, false))
	require.NoError(t, err)
	_, err = f.carts.AddOffer(ctx, cartID, AddRequest{Brand: "BOSCH", Article: "0986452041", ProductID: "P2", Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, f.store.AdjustStock(ctx, repository.InternalKey{ProductID: "P2", Price: decimal.NewFromInt(1190)}, -1))
}

func TestCheckout_Submitted(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, err := f.carts.AddOffer(ctx, "c1", addP1(2, false))
	require.NoError(t, err)
	keep, err := f.carts.AddOffer(ctx, "c1", AddRequest{Brand: "BOSCH", Article: "0986452041", OfferKey: "K1", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, f.carts.SetSelected(ctx, "c1", keep.Line.ID, false))

	res, err := f.checkout.Start(ctx, "c1", customer())
	require.NoError(t, err)
	assert.Equal(t, "Submitted", res.State)
	require.NotNil(t, res.Order)
	assert.Empty(t, res.CheckoutID)
	assert.Equal(t, domain.RawValue("3"), stockOf(t, f, "P1"))

	cart, _ := f.carts.Get(ctx, "c1")
	require.Len(t, cart.Lines, 1, "only ordered lines leave the cart")
	assert.Equal(t, keep.Line.ID, cart.Lines[0].ID)
	_, err = f.orders.GetByID(ctx, res.Order.ID)
	assert.NoError(t, err)
}

func TestCheckout_ShortfallThenOrderAvailable(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	shortfallCart(t, f, "c1")

	res, err := f.checkout.Start(ctx, "c1", customer())
	require.NoError(t, err)
	assert.Equal(t, "Shortfall", res.State)
	assert.Equal(t, "StockShortfall", res.Reason)
	require.NotEmpty(t, res.CheckoutID)
	require.Len(t, res.Shortfall, 1)
	assert.Equal(t, int64(1), res.Shortfall[0].Available)
	assert.Equal(t, int64(2), res.Shortfall[0].Requested)

	done, err := f.checkout.Resolve(ctx, res.CheckoutID, ActionOrderAvailable)
	require.NoError(t, err)
	assert.Equal(t, "Submitted", done.State)
	require.Len(t, done.Order.Items, 2)
	for _, it := range done.Order.Items {
		if it.ProductID == "P2" {
			assert.Equal(t, int64(1), it.Quantity, "P2 clamped to the available stock")
		}
	}
	assert.Equal(t, domain.RawValue("0"), stockOf(t, f, "P2"))

	cart, _ := f.carts.Get(ctx, "c1")
	assert.Empty(t, cart.Lines)
	_, err = f.checkout.Resolve(ctx, res.CheckoutID, ActionOrderAvailable)
	assert.ErrorIs(t, err, ErrCheckoutNotFound, "finished checkout must be gone")
}

func TestCheckout_ReturnToCart(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	shortfallCart(t, f, "c1")

	res, err := f.checkout.Start(ctx, "c1", customer())
	require.NoError(t, err)
	back, err := f.checkout.Resolve(ctx, res.CheckoutID, ActionReturnToCart)
	require.NoError(t, err)
	assert.Equal(t, "Idle", back.State)
	assert.Len(t, back.Shortfall, 1)

	cart, _ := f.carts.Get(ctx, "c1")
	require.Len(t, cart.Lines, 2, "cart must stay unchanged")
	assert.Equal(t, int64(2), cart.Lines[1].Quantity)
	_, err = f.checkout.Resolve(ctx, res.CheckoutID, ActionReturnToCart)
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
}

func TestCheckout_SessionExpires(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	shortfallCart(t, f, "c1")
	svc := NewCheckoutService(f.store, f.ordering, 20*time.Millisecond, "RUB", nil, nil)

	res, err := svc.Start(ctx, "c1", customer())
	require.NoError(t, err)
	require.Equal(t, "Shortfall", res.State)

	time.Sleep(60 * time.Millisecond)
	_, err = svc.Resolve(ctx, res.CheckoutID, ActionOrderAvailable)
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
	assert.Equal(t, domain.RawValue("1"), stockOf(t, f, "P2"), "expired checkout must not order anything")
}

func TestCheckout_NothingAvailable(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, err := f.carts.AddOffer(ctx, "c1", AddRequest{Brand: "BOSCH", Article: "0986452041", ProductID: "P2", Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, f.store.AdjustStock(ctx, repository.InternalKey{ProductID: "P2", Price: decimal.NewFromInt(1190)}, -2))

	res, err := f.checkout.Start(ctx, "c1", customer())
	require.NoError(t, err)
	require.Equal(t, "Shortfall", res.State)
	_, err = f.checkout.Resolve(ctx, res.CheckoutID, ActionOrderAvailable)
	assert.ErrorIs(t, err, checkout.ErrNothingToOrder)
}

type failingSubmitter struct{ calls int }

func (s *failingSubmitter) SubmitOrder(context.Context, domain.OrderRequest) (*domain.Order, error) {
	s.calls++
	return nil, errors.New("backend unavailable")
}

func TestCheckout_FailedAfterOneRetry(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, err := f.carts.AddOffer(ctx, "c1", addP1(1, false))
	require.NoError(t, err)
	sub := &failingSubmitter{}
	svc := NewCheckoutService(f.store, sub, 0, "RUB", nil, nil)

	res, err := svc.Start(ctx, "c1", customer())
	require.NoError(t, err)
	assert.Equal(t, "Failed", res.State)
	assert.Equal(t, "OrderSubmissionFailed", res.Reason)
	assert.Equal(t, "backend unavailable", res.Error)
	assert.Equal(t, 2, sub.calls, "exactly one retry")

	cart, _ := f.carts.Get(ctx, "c1")
	assert.Len(t, cart.Lines, 1, "failed checkout must not touch the cart")
}

func TestCheckout_InvalidInput(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.checkout.Start(ctx, "c1", domain.Customer{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.checkout.Start(ctx, "empty", customer())
	assert.ErrorIs(t, err, checkout.ErrNothingToOrder)
	_, err = f.checkout.Resolve(ctx, "x", "later")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
