package offers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/domain"
)

func line(productID, offerKey string, price, qty int64) domain.CartLine {
	return domain.CartLine{
		ID:        productID + offerKey,
		ProductID: productID,
		OfferKey:  offerKey,
		Price:     decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func TestMatchesIdentity(t *testing.T) {
	p1 := offer("P1", domain.OriginInternal, 100)
	p1.Brand, p1.Article = "BOSCH", "123"

	assert.True(t, Matches(p1, line("P1", "", 100, 1)))
	assert.True(t, Matches(p1, domain.CartLine{ProductID: "P1", Price: decimal.RequireFromString("100.009")}))
	assert.False(t, Matches(p1, line("P1", "", 101, 1)), "another batch of the same product")
	assert.False(t, Matches(p1, line("P2", "", 100, 1)))

	// same brand and article, different offers
	other := domain.CartLine{OfferKey: "K9", Brand: "BOSCH", Article: "123", Price: decimal.NewFromInt(100)}
	assert.False(t, Matches(p1, other))

	k1 := offer("K1", domain.OriginExternal, 100)
	assert.True(t, Matches(k1, line("", "K1", 999, 1)))
	assert.False(t, Matches(k1, line("", "K2", 100, 1)))
	assert.False(t, Matches(k1, line("P1", "", 100, 1)))
}

func TestExistingQuantitySumsMatches(t *testing.T) {
	o := offer("P1", domain.OriginInternal, 100)
	lines := []domain.CartLine{
		line("P1", "", 100, 2),
		line("P1", "", 100, 3),
		line("P1", "", 150, 7),
		line("", "K1", 100, 9),
	}
	assert.Equal(t, int64(5), ExistingQuantity(o, lines))

	l, ok := FindLine(o, lines)
	require.True(t, ok)
	assert.Equal(t, int64(2), l.Quantity)
}

func TestRemainingConservation(t *testing.T) {
	o := offer("P1", domain.OriginInternal, 100)
	for stock := int64(0); stock <= 6; stock++ {
		for inCart := int64(0); inCart <= 8; inCart++ {
			o.Stock = ptr(stock)
			lines := []domain.CartLine{line("P1", "", 100, inCart)}
			rem := Remaining(o, lines)
			require.NotNil(t, rem)
			if inCart <= stock {
				assert.Equal(t, stock, *rem+ExistingQuantity(o, lines))
			} else {
				assert.Zero(t, *rem)
			}

			for _, req := range []int64{0, 1, 3, 10} {
				c := ValidateAdd(o, lines, req)
				assert.LessOrEqual(t, c.ClampedQty, *rem, "stock=%d cart=%d req=%d", stock, inCart, req)
			}
		}
	}
}

func TestRemainingUnbounded(t *testing.T) {
	o := offer("K1", domain.OriginExternal, 100)
	assert.Nil(t, Remaining(o, []domain.CartLine{line("", "K1", 100, 50)}))
}

func TestValidateAddScenarios(t *testing.T) {
	p1 := offer("P1", domain.OriginInternal, 100)
	p1.Stock = ptr(5)

	t.Run("exceeds remaining clamps", func(t *testing.T) {
		c := ValidateAdd(p1, nil, 7)
		assert.False(t, c.OK)
		assert.Equal(t, KindExceedsRemaining, c.Kind)
		assert.Equal(t, int64(5), c.ClampedQty)
		assert.Equal(t, "Можно добавить не более 5 шт.", c.Message())
	})

	t.Run("cart holds the max", func(t *testing.T) {
		c := ValidateAdd(p1, []domain.CartLine{line("P1", "", 100, 5)}, 1)
		assert.False(t, c.OK)
		assert.Equal(t, KindOutOfStock, c.Kind)
		assert.True(t, c.CartHoldsMax)
		assert.Equal(t, "В корзине уже максимальное количество этого товара", c.Message())
	})

	t.Run("never had stock", func(t *testing.T) {
		empty := p1
		empty.Stock = ptr(0)
		c := ValidateAdd(empty, nil, 1)
		assert.Equal(t, KindOutOfStock, c.Kind)
		assert.False(t, c.CartHoldsMax)
		assert.Equal(t, "Товара нет в наличии", c.Message())
	})

	t.Run("unbounded stock", func(t *testing.T) {
		free := offer("K1", domain.OriginExternal, 100)
		c := ValidateAdd(free, []domain.CartLine{line("", "K1", 100, 3)}, 1000)
		assert.True(t, c.OK)
		assert.Equal(t, int64(1000), c.ClampedQty)
		assert.Nil(t, c.Remaining)
	})

	t.Run("price unavailable wins", func(t *testing.T) {
		free := offer("K1", domain.OriginExternal, 0)
		free.Stock = ptr(0)
		c := ValidateAdd(free, nil, 1)
		assert.Equal(t, KindPriceUnavailable, c.Kind)
		assert.Equal(t, "Цена товара не найдена", c.Message())
	})

	t.Run("fits", func(t *testing.T) {
		c := ValidateAdd(p1, []domain.CartLine{line("P1", "", 100, 2)}, 3)
		assert.True(t, c.OK)
		assert.Equal(t, int64(3), c.ClampedQty)
		assert.Equal(t, KindNone, c.Kind)
	})
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "OutOfStock", KindOutOfStock.String())
	assert.Equal(t, "OrderSubmissionFailed", KindOrderSubmissionFailed.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}

func TestStockLabel(t *testing.T) {
	assert.Equal(t, "12 шт", StockLabel(ptr(12)))
	assert.Equal(t, "0 шт", StockLabel(ptr(-3)))
	assert.Equal(t, "нет данных", StockLabel(nil))
}
