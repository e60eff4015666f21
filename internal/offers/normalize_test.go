package offers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/domain"
)

func ptr(n int64) *int64 { return &n }

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1250", "1250"},
		{"1 250,50 ₽", "1250.5"},
		{"1,250.50", "1250.5"},
		{"1.250,50", "1250.5"},
		{"99.9 RUB", "99.9"},
		{",5", "0.5"},
		{"12.", "12"},
		{"", "0"},
		{"цена по запросу", "0"},
		{"-300", "300"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParsePrice(tt.in)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "ParsePrice(%q) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestParseStock(t *testing.T) {
	assert.Equal(t, ptr(12), ParseStock("12 шт"))
	assert.Equal(t, ptr(0), ParseStock("0"))
	assert.Equal(t, ptr(5), ParseStock("> 5 шт, 10 под заказ"))
	assert.Nil(t, ParseStock("много"))
	assert.Nil(t, ParseStock(""))
}

func TestParseDelivery(t *testing.T) {
	d := ParseDelivery("3")
	require.NotNil(t, d.Days)
	assert.Equal(t, int64(3), *d.Days)
	assert.Empty(t, d.Date)

	d = ParseDelivery("12 марта 2025")
	assert.Nil(t, d.Days)
	assert.Equal(t, "12 марта 2025", d.Date)

	d = ParseDelivery("В день заказа")
	require.NotNil(t, d.Days)
	assert.Zero(t, *d.Days)

	assert.False(t, ParseDelivery("").Known())
	assert.False(t, ParseDelivery("уточняйте").Known())
}

func TestNormalizeProduct(t *testing.T) {
	p := domain.RawProduct{
		Brand:         "BOSCH",
		ArticleNumber: "0986452041",
		Name:          "Фильтр масляный",
		InternalOffers: []domain.RawInternalOffer{
			{ID: "row-1", ProductID: "P1", Price: "1 250,00", Quantity: "4 шт", DeliveryDays: "1", Available: true, Warehouse: "Москва"},
			{ID: "row-2", Price: "0", Quantity: ""},
		},
		ExternalOffers: []domain.RawExternalOffer{
			{OfferKey: "K1", Price: "990.5", Currency: "eur", DeliveryTime: "5", Quantity: "нет данных"},
			{OfferKey: "K2", Brand: "MANN", Code: "W712", Name: "Фильтр MANN", Price: "800", DeliveryTime: "20 мая 2025", Recommended: true},
		},
	}

	got := NormalizeProduct(p, "")
	require.Len(t, got, 4)

	in := got[0]
	assert.Equal(t, domain.OriginInternal, in.Origin)
	assert.Equal(t, "P1", in.ProductID)
	assert.Equal(t, "P1", in.OfferID())
	assert.Empty(t, in.OfferKey)
	assert.True(t, in.Price.Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, ptr(4), in.Stock)
	assert.True(t, in.Preferred)
	assert.Equal(t, "BOSCH", in.Brand)
	assert.Equal(t, domain.DefaultCurrency, in.Currency)

	assert.Equal(t, "row-2", got[1].ProductID, "row id is the fallback product id")
	assert.False(t, got[1].Purchasable())
	assert.Nil(t, got[1].Stock)

	ext := got[2]
	assert.Equal(t, domain.OriginExternal, ext.Origin)
	assert.Equal(t, "K1", ext.OfferID())
	assert.Empty(t, ext.ProductID)
	assert.Equal(t, "EUR", ext.Currency)
	assert.Nil(t, ext.Stock, "no digits means unbounded, never zero")
	assert.Equal(t, "Фильтр масляный", ext.Name)

	assert.Equal(t, "MANN", got[3].Brand)
	assert.Equal(t, "W712", got[3].Article)
	assert.Equal(t, "20 мая 2025", got[3].Delivery.Date)
	assert.True(t, got[3].Preferred)
}

func TestPluralizeDays(t *testing.T) {
	cases := map[int64]string{
		1:   "1 день",
		2:   "2 дня",
		4:   "4 дня",
		5:   "5 дней",
		11:  "11 дней",
		12:  "12 дней",
		14:  "14 дней",
		21:  "21 день",
		22:  "22 дня",
		111: "111 дней",
	}
	for n, want := range cases {
		assert.Equal(t, want, PluralizeDays(n))
	}
}

func TestDeliveryLabelAndDate(t *testing.T) {
	assert.Equal(t, "Уточняйте", DeliveryLabel(domain.Delivery{}))
	assert.Equal(t, "в день заказа", DeliveryLabel(domain.Delivery{Days: ptr(0)}))
	assert.Equal(t, "3 дня", DeliveryLabel(domain.Delivery{Days: ptr(3)}))
	assert.Equal(t, "1 июня 2025", DeliveryLabel(domain.Delivery{Date: "1 июня 2025"}))

	now := time.Date(2025, time.February, 27, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2 марта 2025", DeliveryDate(now, 3))
	assert.True(t, IsDeliveryDate(DeliveryDate(now, 40)))
}
