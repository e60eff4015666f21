package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"autoparts/internal/domain"
	"autoparts/internal/offers"
	"autoparts/internal/repository"
	"autoparts/internal/telemetry"
)

var ErrInvalidInput = errors.New("invalid input")

// CatalogService собирает витрину предложений по товару и ведёт локальный каталог
type CatalogService struct {
	catalog  repository.CatalogRepository
	source   repository.OfferSource
	carts    repository.CartRepository
	listings *expirable.LRU[string, productOffers]
	metrics  *telemetry.Metrics
	log      *zap.Logger

	currency           string
	analogsConcurrency int
	now                func() time.Time
}

// CatalogOptions необязательные параметры CatalogService
type CatalogOptions struct {
	Currency           string
	AnalogsConcurrency int
	CacheTTL           time.Duration
	// CacheSize сколько витрин держать в кэше, по умолчанию 1024
	CacheSize int
	Metrics   *telemetry.Metrics
	Log       *zap.Logger
}

// productOffers нормализованные предложения товара (с аналогами или без)
type productOffers struct {
	Name   string
	Offers []domain.Offer
}

// NewCatalogService: source отдаёт предложения для витрины, catalog обслуживает
// администрирование. В режиме memory это одно и то же хранилище.
func NewCatalogService(catalog repository.CatalogRepository, source repository.OfferSource, carts repository.CartRepository, opts CatalogOptions) *CatalogService {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Currency == "" {
		opts.Currency = domain.DefaultCurrency
	}
	if opts.AnalogsConcurrency < 1 {
		opts.AnalogsConcurrency = 1
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1024
	}
	return &CatalogService{
		catalog:            catalog,
		source:             source,
		carts:              carts,
		listings:           expirable.NewLRU[string, productOffers](opts.CacheSize, nil, opts.CacheTTL),
		metrics:            opts.Metrics,
		log:                opts.Log,
		currency:           opts.Currency,
		analogsConcurrency: opts.AnalogsConcurrency,
		now:                time.Now,
	}
}

// Upsert сохраняет товар по бренду и артикулу из адреса
func (s *CatalogService) Upsert(ctx context.Context, brand, article string, p domain.RawProduct) (*domain.RawProduct, error) {
	if strings.TrimSpace(brand) == "" || strings.TrimSpace(article) == "" {
		return nil, ErrInvalidInput
	}
	p.Brand = strings.TrimSpace(brand)
	p.ArticleNumber = strings.TrimSpace(article)
	for _, r := range p.InternalOffers {
		if strings.TrimSpace(r.ID) == "" && strings.TrimSpace(r.ProductID) == "" {
			return nil, fmt.Errorf("%w: internal offer without id", ErrInvalidInput)
		}
	}
	for _, r := range p.ExternalOffers {
		if strings.TrimSpace(r.OfferKey) == "" {
			return nil, fmt.Errorf("%w: external offer without offer key", ErrInvalidInput)
		}
	}
	if err := s.catalog.Upsert(ctx, &p); err != nil {
		return nil, err
	}
	s.invalidate()
	return &p, nil
}

func (s *CatalogService) Get(ctx context.Context, brand, article string) (*domain.RawProduct, error) {
	if strings.TrimSpace(brand) == "" || strings.TrimSpace(article) == "" {
		return nil, ErrInvalidInput
	}
	return s.catalog.ProductOffers(ctx, brand, article)
}

func (s *CatalogService) Delete(ctx context.Context, brand, article string) error {
	if strings.TrimSpace(brand) == "" || strings.TrimSpace(article) == "" {
		return ErrInvalidInput
	}
	if err := s.catalog.Delete(ctx, brand, article); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) List(ctx context.Context, f repository.CatalogFilter) ([]domain.RawProduct, error) {
	return s.catalog.List(ctx, f)
}

// invalidate сбрасывает закэшированные витрины. Товар может входить в чужие
// витрины как аналог, поэтому сбрасывается всё.
func (s *CatalogService) invalidate() {
	s.listings.Purge()
}

func listingKey(brand, article string, withAnalogs bool) string {
	k := repository.NewProductKey(brand, article)
	return fmt.Sprintf("%s/%s?analogs=%t", k.Brand, k.Article, withAnalogs)
}

// ListingQuery параметры витрины предложений
type ListingQuery struct {
	Brand       string
	Article     string
	CartID      string
	Sort        offers.SortKey
	Direction   offers.Direction
	Filter      offers.Filter
	WithAnalogs bool
}

// OfferView предложение с учётом содержимого корзины покупателя
type OfferView struct {
	domain.Offer
	ID            string `json:"id"`
	InCart        int64  `json:"in_cart"`
	Remaining     *int64 `json:"remaining,omitempty"`
	CanAdd        bool   `json:"can_add"`
	Reason        string `json:"reason,omitempty"`
	Message       string `json:"message,omitempty"`
	StockLabel    string `json:"stock_label"`
	DeliveryLabel string `json:"delivery_label"`
	DeliveryDate  string `json:"delivery_date,omitempty"`
}

// Listing витрина предложений товара
type Listing struct {
	Brand   string           `json:"brand"`
	Article string           `json:"article"`
	Name    string           `json:"name"`
	Sort    offers.SortState `json:"sort"`
	Total   int              `json:"total"`
	Offers  []OfferView      `json:"offers"`
	Facets  offers.Facets    `json:"facets"`
	Best    []offers.Best    `json:"best,omitempty"`
}

// ProductOffers строит витрину: нормализация, аналоги, фильтр, сортировка
// и отметки о том, что уже лежит в корзине
func (s *CatalogService) ProductOffers(ctx context.Context, q ListingQuery) (*Listing, error) {
	if strings.TrimSpace(q.Brand) == "" || strings.TrimSpace(q.Article) == "" {
		return nil, ErrInvalidInput
	}
	if q.Sort == "" {
		q.Sort = offers.SortByPrice
	}
	if q.Direction == "" {
		q.Direction = offers.DefaultDirection(q.Sort)
	}

	po, err := s.loadOffers(ctx, q.Brand, q.Article, q.WithAnalogs)
	if err != nil {
		return nil, err
	}

	var lines []domain.CartLine
	if q.CartID != "" {
		if lines, err = s.carts.Lines(ctx, q.CartID); err != nil {
			return nil, err
		}
	}

	filtered := offers.Apply(po.Offers, q.Filter)
	sorted := offers.Sort(filtered, q.Sort, q.Direction)

	now := s.now()
	views := make([]OfferView, 0, len(sorted))
	for _, o := range sorted {
		views = append(views, s.view(o, lines, now))
	}
	return &Listing{
		Brand:   strings.TrimSpace(q.Brand),
		Article: strings.TrimSpace(q.Article),
		Name:    po.Name,
		Sort:    offers.SortState{Key: q.Sort, Direction: q.Direction},
		Total:   len(po.Offers),
		Offers:  views,
		Facets:  offers.BuildFacets(po.Offers),
		Best:    offers.BestOffers(po.Offers),
	}, nil
}

func (s *CatalogService) view(o domain.Offer, lines []domain.CartLine, now time.Time) OfferView {
	check := offers.ValidateAdd(o, lines, 1)
	v := OfferView{
		Offer:         o,
		ID:            o.OfferID(),
		InCart:        offers.ExistingQuantity(o, lines),
		Remaining:     offers.Remaining(o, lines),
		CanAdd:        check.OK,
		StockLabel:    offers.StockLabel(o.Stock),
		DeliveryLabel: offers.DeliveryLabel(o.Delivery),
	}
	if !check.OK {
		v.Reason = check.Kind.String()
		v.Message = check.Message()
	}
	if d := o.Delivery.Days; d != nil && *d > 0 {
		v.DeliveryDate = offers.DeliveryDate(now, *d)
	}
	return v
}

// ErrAmbiguousOffer у productId несколько партий, а цена в запросе не указана
var ErrAmbiguousOffer = fmt.Errorf("%w: several batches of the product, price is required", ErrInvalidInput)

// FindOffer ищет актуальное предложение товара мимо кэша. Партия своего склада
// выбирается по productId и цене, как и при сверке с корзиной.
func (s *CatalogService) FindOffer(ctx context.Context, brand, article string, ref OfferRef) (domain.Offer, error) {
	raw, err := s.source.ProductOffers(ctx, brand, article)
	if err != nil {
		return domain.Offer{}, err
	}
	var batches []domain.Offer
	for _, o := range offers.NormalizeProduct(*raw, s.currency) {
		switch {
		case ref.OfferKey != "" && o.Origin == domain.OriginExternal && o.OfferKey == ref.OfferKey:
			return o, nil
		case ref.ProductID != "" && o.Origin == domain.OriginInternal && o.ProductID == ref.ProductID:
			if ref.Price == nil || offers.SamePrice(o.Price, *ref.Price) {
				batches = append(batches, o)
			}
		}
	}
	switch len(batches) {
	case 0:
		return domain.Offer{}, repository.ErrNotFound
	case 1:
		return batches[0], nil
	default:
		return domain.Offer{}, ErrAmbiguousOffer
	}
}

func (s *CatalogService) loadOffers(ctx context.Context, brand, article string, withAnalogs bool) (productOffers, error) {
	key := listingKey(brand, article, withAnalogs)
	if po, ok := s.listings.Get(key); ok {
		s.metrics.RecordListing(ctx, true, len(po.Offers))
		return po, nil
	}

	raw, err := s.source.ProductOffers(ctx, brand, article)
	if err != nil {
		return productOffers{}, err
	}
	po := productOffers{Name: raw.Name, Offers: offers.NormalizeProduct(*raw, s.currency)}
	if withAnalogs && len(raw.Analogs) > 0 {
		analogs, err := s.loadAnalogs(ctx, raw.Analogs)
		if err != nil {
			return productOffers{}, err
		}
		po.Offers = append(po.Offers, analogs...)
	}

	s.listings.Add(key, po)
	s.metrics.RecordListing(ctx, false, len(po.Offers))
	return po, nil
}

// loadAnalogs загружает предложения аналогов параллельно. Аналог, которого
// нет у источника, пропускается.
func (s *CatalogService) loadAnalogs(ctx context.Context, refs []domain.ProductRef) ([]domain.Offer, error) {
	results := make([][]domain.Offer, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.analogsConcurrency)
	for i, ref := range refs {
		g.Go(func() error {
			raw, err := s.source.ProductOffers(gctx, ref.Brand, ref.ArticleNumber)
			if errors.Is(err, repository.ErrNotFound) {
				s.log.Debug("analog not found",
					zap.String("brand", ref.Brand),
					zap.String("article", ref.ArticleNumber))
				return nil
			}
			if err != nil {
				return fmt.Errorf("load analog %s %s: %w", ref.Brand, ref.ArticleNumber, err)
			}
			list := offers.NormalizeProduct(*raw, s.currency)
			for j := range list {
				list[j].IsAnalog = true
			}
			results[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.Offer
	for _, list := range results {
		out = append(out, list...)
	}
	return out, nil
}
