package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency валюта по умолчанию для предложений и корзины
const DefaultCurrency = "RUB"

// Origin источник предложения
type Origin string

const (
	OriginInternal Origin = "internal"
	OriginExternal Origin = "external"
)

// Delivery срок поставки: либо число дней, либо дата строкой ("12 марта 2025").
// Пустое значение означает «уточняйте».
type Delivery struct {
	Days *int64 `json:"days,omitempty"`
	Date string `json:"date,omitempty"`
}

// Known сообщает, указан ли срок поставки хоть в каком-то виде
func (d Delivery) Known() bool {
	return d.Days != nil || d.Date != ""
}

// Offer предложение товара из одного источника (свой склад или поставщик).
// Идентичность предложения задаёт пара (OfferID(), Origin), бренд и артикул в неё не входят.
type Offer struct {
	ProductID string          `json:"product_id,omitempty"`
	OfferKey  string          `json:"offer_key,omitempty"`
	Origin    Origin          `json:"origin"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	// Stock nil: остаток неизвестен (не ограничен), это не ноль
	Stock     *int64   `json:"stock,omitempty"`
	Delivery  Delivery `json:"delivery"`
	Preferred bool     `json:"preferred"`
	IsAnalog  bool     `json:"is_analog,omitempty"`
	Brand     string   `json:"brand"`
	Article   string   `json:"article"`
	Name      string   `json:"name"`
	Warehouse string   `json:"warehouse,omitempty"`
	Supplier  string   `json:"supplier,omitempty"`
}

// OfferID авторитетный идентификатор: productId для своих, offerKey для внешних
func (o Offer) OfferID() string {
	if o.Origin == OriginExternal {
		return o.OfferKey
	}
	return o.ProductID
}

// Purchasable цена известна и больше нуля
func (o Offer) Purchasable() bool {
	return o.Price.IsPositive()
}

// CartLine позиция корзины. Жизненным циклом владеет хранилище корзины.
type CartLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id,omitempty"`
	OfferKey  string          `json:"offer_key,omitempty"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Article   string          `json:"article"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Quantity  int64           `json:"quantity"`
	// Stock последний известный остаток в исходном текстовом виде ("12 шт")
	Stock      string    `json:"stock,omitempty"`
	Delivery   string    `json:"delivery,omitempty"`
	Warehouse  string    `json:"warehouse,omitempty"`
	Supplier   string    `json:"supplier,omitempty"`
	IsExternal bool      `json:"is_external"`
	Selected   bool      `json:"selected"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Origin источник предложения, из которого пришла позиция
func (l CartLine) Origin() Origin {
	if l.IsExternal {
		return OriginExternal
	}
	return OriginInternal
}

// Total стоимость позиции
func (l CartLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// StockCheckResult позиция, которой не хватает остатка при оформлении
type StockCheckResult struct {
	LineID    string `json:"line_id"`
	Name      string `json:"name"`
	Available int64  `json:"available"`
	Requested int64  `json:"requested"`
}

// CartSummary итоги по выбранным позициям корзины
type CartSummary struct {
	TotalItems    int64           `json:"total_items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	DeliveryPrice decimal.Decimal `json:"delivery_price"`
	FinalPrice    decimal.Decimal `json:"final_price"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Customer данные получателя заказа
type Customer struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// OrderRequestItem позиция, передаваемая в оформление заказа
type OrderRequestItem struct {
	LineID     string          `json:"-"`
	ProductID  string          `json:"product_id,omitempty"`
	ExternalID string          `json:"external_id,omitempty"`
	Name       string          `json:"name"`
	Article    string          `json:"article"`
	Brand      string          `json:"brand"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
}

// OrderRequest запрос на создание заказа
type OrderRequest struct {
	Customer Customer           `json:"customer"`
	Currency string             `json:"currency"`
	Items    []OrderRequestItem `json:"items"`
}

// OrderItem позиция в заказе
type OrderItem struct {
	ProductID  string          `json:"product_id,omitempty"`
	ExternalID string          `json:"external_id,omitempty"`
	Name       string          `json:"name"`
	Article    string          `json:"article"`
	Brand      string          `json:"brand"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
}

// Order сущность заказа
type Order struct {
	ID        int64           `json:"id"`
	Number    string          `json:"number"`
	Customer  Customer        `json:"customer"`
	Items     []OrderItem     `json:"items"`
	Status    OrderStatus     `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
