package graphql

import (
	"context"

	"autoparts/internal/domain"
	"autoparts/internal/repository"
)

const searchProductOffersQuery = `
query SearchProductOffers($articleNumber: String!, $brand: String!) {
  searchProductOffers(articleNumber: $articleNumber, brand: $brand) {
    articleNumber
    brand
    name
    internalOffers {
      id
      productId
      price
      quantity
      warehouse
      deliveryDays
      available
      supplier
    }
    externalOffers {
      offerKey
      brand
      code
      name
      price
      currency
      deliveryTime
      deliveryTimeMax
      quantity
      warehouse
      supplier
      comment
      canPurchase
    }
    analogs {
      brand
      articleNumber
      name
    }
  }
}`

var _ repository.OfferSource = (*Client)(nil)

// ProductOffers загружает все предложения товара. null в ответе это ErrNotFound.
func (c *Client) ProductOffers(ctx context.Context, brand, article string) (*domain.RawProduct, error) {
	var data struct {
		SearchProductOffers *domain.RawProduct `json:"searchProductOffers"`
	}
	vars := map[string]any{"articleNumber": article, "brand": brand}
	if err := c.do(ctx, c.searchOffers, vars, &data); err != nil {
		return nil, err
	}
	if data.SearchProductOffers == nil {
		return nil, repository.ErrNotFound
	}
	return data.SearchProductOffers, nil
}
