package graphql

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	gql "github.com/hasura/go-graphql-client"
	"github.com/shopspring/decimal"

	"autoparts/internal/checkout"
	"autoparts/internal/domain"
)

const createOrderMutation = `
mutation CreateOrder($input: CreateOrderInput!) {
  createOrder(input: $input) {
    id
    orderNumber
    status
    totalAmount
    currency
    items {
      productId
      externalId
      name
      article
      brand
      price
      quantity
    }
    createdAt
  }
}`

var _ checkout.OrderSubmitter = (*Client)(nil)

type orderItemInput struct {
	ProductID  string  `json:"productId,omitempty"`
	ExternalID string  `json:"externalId,omitempty"`
	Name       string  `json:"name"`
	Article    string  `json:"article"`
	Brand      string  `json:"brand"`
	Price      float64 `json:"price"`
	Quantity   int64   `json:"quantity"`
}

type createOrderInput struct {
	ClientName      string           `json:"clientName"`
	ClientPhone     string           `json:"clientPhone"`
	ClientEmail     string           `json:"clientEmail,omitempty"`
	DeliveryAddress string           `json:"deliveryAddress,omitempty"`
	Comment         string           `json:"comment,omitempty"`
	Currency        string           `json:"currency,omitempty"`
	Items           []orderItemInput `json:"items"`
}

type orderPayload struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"orderNumber"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
	Items       []struct {
		ProductID  string  `json:"productId"`
		ExternalID string  `json:"externalId"`
		Name       string  `json:"name"`
		Article    string  `json:"article"`
		Brand      string  `json:"brand"`
		Price      float64 `json:"price"`
		Quantity   int64   `json:"quantity"`
	} `json:"items"`
	CreatedAt string `json:"createdAt"`
}

// SubmitOrder оформляет заказ в бэкенде. Отказ, в котором названы товар,
// доступное и запрошенное количество, возвращается как *domain.StockMismatchError.
func (c *Client) SubmitOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	in := createOrderInput{
		ClientName:      req.Customer.Name,
		ClientPhone:     req.Customer.Phone,
		ClientEmail:     req.Customer.Email,
		DeliveryAddress: req.Customer.Address,
		Comment:         req.Customer.Comment,
		Currency:        req.Currency,
		Items:           make([]orderItemInput, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, orderItemInput{
			ProductID:  it.ProductID,
			ExternalID: it.ExternalID,
			Name:       it.Name,
			Article:    it.Article,
			Brand:      it.Brand,
			Price:      it.Price.InexactFloat64(),
			Quantity:   it.Quantity,
		})
	}

	var data struct {
		CreateOrder *orderPayload `json:"createOrder"`
	}
	if err := c.do(ctx, c.createOrder, map[string]any{"input": in}, &data); err != nil {
		var gqlErrs gql.Errors
		if errors.As(err, &gqlErrs) {
			for _, e := range gqlErrs {
				if m, ok := checkout.ParseStockError(errors.New(e.Message)); ok {
					return nil, m
				}
			}
		}
		return nil, err
	}
	if data.CreateOrder == nil {
		return nil, errors.New("graphql CreateOrder: empty result")
	}
	return toOrder(*data.CreateOrder, req), nil
}

func toOrder(p orderPayload, req domain.OrderRequest) *domain.Order {
	o := &domain.Order{
		Number:   p.OrderNumber,
		Customer: req.Customer,
		Status:   orderStatus(p.Status),
		Total:    decimal.NewFromFloat(p.TotalAmount),
		Currency: p.Currency,
	}
	if o.Currency == "" {
		o.Currency = req.Currency
	}
	// id бэкенда не всегда число
	if id, err := strconv.ParseInt(p.ID, 10, 64); err == nil {
		o.ID = id
	}
	if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
		o.CreatedAt = t.UTC()
		o.UpdatedAt = o.CreatedAt
	}
	for _, it := range p.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID:  it.ProductID,
			ExternalID: it.ExternalID,
			Name:       it.Name,
			Article:    it.Article,
			Brand:      it.Brand,
			Price:      decimal.NewFromFloat(it.Price),
			Quantity:   it.Quantity,
		})
	}
	return o
}

func orderStatus(s string) domain.OrderStatus {
	switch strings.ToUpper(s) {
	case "PENDING", "NEW":
		return domain.OrderStatusPending
	case "CANCELED", "CANCELLED":
		return domain.OrderStatusCancelled
	default:
		return domain.OrderStatusConfirmed
	}
}
