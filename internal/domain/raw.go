package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// RawValue поле, которое бэкенд отдаёт то числом, то строкой ("12 шт", "1 250,50 ₽").
// Разбор значения выполняет нормализатор предложений.
type RawValue string

func (v *RawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = RawValue(s)
		return nil
	}
	*v = RawValue(b)
	return nil
}

func (v *RawValue) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*v = RawValue(s)
	return nil
}

// RawInt строковое представление целого числа для RawValue
func RawInt(n int64) RawValue {
	return RawValue(strconv.FormatInt(n, 10))
}

// RawInternalOffer строка складского остатка своего склада
type RawInternalOffer struct {
	ID           string   `json:"id" yaml:"id"`
	ProductID    string   `json:"productId" yaml:"product_id"`
	Price        RawValue `json:"price" yaml:"price"`
	Quantity     RawValue `json:"quantity" yaml:"quantity"`
	Warehouse    string   `json:"warehouse" yaml:"warehouse"`
	DeliveryDays RawValue `json:"deliveryDays" yaml:"delivery_days"`
	Available    bool     `json:"available" yaml:"available"`
	Supplier     string   `json:"supplier" yaml:"supplier"`
}

// RawExternalOffer предложение стороннего поставщика
type RawExternalOffer struct {
	OfferKey        string   `json:"offerKey" yaml:"offer_key"`
	Brand           string   `json:"brand" yaml:"brand"`
	Code            string   `json:"code" yaml:"code"`
	Name            string   `json:"name" yaml:"name"`
	Price           RawValue `json:"price" yaml:"price"`
	Currency        string   `json:"currency" yaml:"currency"`
	DeliveryTime    RawValue `json:"deliveryTime" yaml:"delivery_time"`
	DeliveryTimeMax RawValue `json:"deliveryTimeMax" yaml:"delivery_time_max"`
	Quantity        RawValue `json:"quantity" yaml:"quantity"`
	Warehouse       string   `json:"warehouse" yaml:"warehouse"`
	Supplier        string   `json:"supplier" yaml:"supplier"`
	Comment         string   `json:"comment" yaml:"comment"`
	CanPurchase     bool     `json:"canPurchase" yaml:"can_purchase"`
	Recommended     bool     `json:"recommended" yaml:"recommended"`
}

// ProductRef ссылка на товар (бренд + артикул), например на аналог
type ProductRef struct {
	Brand         string `json:"brand" yaml:"brand"`
	ArticleNumber string `json:"articleNumber" yaml:"article"`
	Name          string `json:"name" yaml:"name"`
}

// RawProduct товар со всеми предложениями в том виде, как его отдаёт источник
type RawProduct struct {
	Brand          string             `json:"brand" yaml:"brand"`
	ArticleNumber  string             `json:"articleNumber" yaml:"article"`
	Name           string             `json:"name" yaml:"name"`
	InternalOffers []RawInternalOffer `json:"internalOffers" yaml:"internal_offers"`
	ExternalOffers []RawExternalOffer `json:"externalOffers" yaml:"external_offers"`
	Analogs        []ProductRef       `json:"analogs" yaml:"analogs"`
}
