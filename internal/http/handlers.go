package httpapi

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"autoparts/internal/checkout"
	"autoparts/internal/domain"
	"autoparts/internal/logging"
	"autoparts/internal/offers"
	"autoparts/internal/repository"
	"autoparts/internal/service"
	"autoparts/internal/telemetry"
)

// Services обработчики API. Orders может быть nil, когда заказы ведёт внешний бэкенд.
type Services struct {
	Catalog  *service.CatalogService
	Carts    *service.CartService
	Orders   *service.OrderService
	Checkout *service.CheckoutService
}

type Server struct {
	engine *gin.Engine
	svc    Services
	log    *zap.Logger
}

// NewServer собирает gin-движок. metricsHandler отдаётся на /metrics, если задан.
func NewServer(svc Services, log *zap.Logger, metrics *telemetry.Metrics, metricsHandler http.Handler) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(logging.GinMiddleware(log), gin.Recovery(), metrics.GinMiddleware())
	s := &Server{engine: r, svc: svc, log: log}
	s.registerRoutes(metricsHandler)
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes(metricsHandler http.Handler) {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/health", s.health)
	if metricsHandler != nil {
		s.engine.GET("/metrics", gin.WrapH(metricsHandler))
	}

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":brand/:article/offers", s.productOffers)
		products.PUT(":brand/:article", s.upsertProduct)
		products.GET(":brand/:article", s.getProduct)
		products.DELETE(":brand/:article", s.deleteProduct)

		carts := v1.Group("/carts/:cartID")
		carts.GET("", s.getCart)
		carts.POST("/items", s.addItem)
		carts.DELETE("/items", s.clearCart)
		carts.PATCH("/items/:lineID", s.updateItem)
		carts.DELETE("/items/:lineID", s.removeItem)
		carts.POST("/items/:lineID/select", s.selectItem)
		carts.POST("/checkout", s.startCheckout)

		v1.POST("/checkouts/:checkoutID/resolve", s.resolveCheckout)

		if s.svc.Orders != nil {
			orders := v1.Group("/orders")
			orders.GET(":id", s.getOrder)
			orders.POST(":id/cancel", s.cancelOrder)
		}
	}
}

// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Product handlers

// @Summary List catalog products
// @Tags products
// @Produce json
// @Param q query string false "Name contains"
// @Param brand query string false "Brand"
// @Success 200 {array} domain.RawProduct
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	f := repository.CatalogFilter{Brand: c.Query("brand"), NameSubstring: c.Query("q")}
	list, err := s.svc.Catalog.List(c, f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Offers of a product
// @Description Normalized internal and supplier offers, sorted, filtered and annotated with cart state
// @Tags products
// @Produce json
// @Param brand path string true "Brand"
// @Param article path string true "Article number"
// @Param sort query string false "price | delivery | stock"
// @Param dir query string false "asc | desc"
// @Param cart_id query string false "Cart to annotate offers with"
// @Param brand query []string false "Brand filter" collectionFormat(multi)
// @Param min_price query number false "Min price"
// @Param max_price query number false "Max price"
// @Param min_days query int false "Min delivery days"
// @Param max_days query int false "Max delivery days"
// @Param min_qty query int false "Min stock"
// @Param max_qty query int false "Max stock"
// @Param q query string false "Search in brand, article, name"
// @Param analogs query bool false "Include analogs"
// @Success 200 {object} service.Listing
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{brand}/{article}/offers [get]
func (s *Server) productOffers(c *gin.Context) {
	q, err := parseListingQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := s.svc.Catalog.ProductOffers(c, q)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func parseListingQuery(c *gin.Context) (service.ListingQuery, error) {
	key := offers.ParseSortKey(c.Query("sort"))
	q := service.ListingQuery{
		Brand:     c.Param("brand"),
		Article:   c.Param("article"),
		CartID:    c.Query("cart_id"),
		Sort:      key,
		Direction: offers.ParseDirection(c.Query("dir"), key),
		Filter: offers.Filter{
			Brands: c.QueryArray("brand"),
			Search: c.Query("q"),
		},
	}

	var err error
	if v := c.Query("analogs"); v != "" {
		if q.WithAnalogs, err = strconv.ParseBool(v); err != nil {
			return q, errors.New("invalid analogs")
		}
	}
	if q.Filter.Price, err = priceRange(c.Query("min_price"), c.Query("max_price")); err != nil {
		return q, err
	}
	if q.Filter.Delivery, err = intRange(c.Query("min_days"), c.Query("max_days")); err != nil {
		return q, err
	}
	if q.Filter.Quantity, err = intRange(c.Query("min_qty"), c.Query("max_qty")); err != nil {
		return q, err
	}
	return q, nil
}

func priceRange(lo, hi string) (*offers.PriceRange, error) {
	if lo == "" && hi == "" {
		return nil, nil
	}
	r := &offers.PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(math.MaxInt64)}
	var err error
	if lo != "" {
		if r.Min, err = decimal.NewFromString(lo); err != nil {
			return nil, errors.New("invalid min_price")
		}
	}
	if hi != "" {
		if r.Max, err = decimal.NewFromString(hi); err != nil {
			return nil, errors.New("invalid max_price")
		}
	}
	return r, nil
}

func intRange(lo, hi string) (*offers.IntRange, error) {
	if lo == "" && hi == "" {
		return nil, nil
	}
	r := &offers.IntRange{Min: 0, Max: math.MaxInt64}
	var err error
	if lo != "" {
		if r.Min, err = strconv.ParseInt(lo, 10, 64); err != nil {
			return nil, errors.New("invalid range minimum")
		}
	}
	if hi != "" {
		if r.Max, err = strconv.ParseInt(hi, 10, 64); err != nil {
			return nil, errors.New("invalid range maximum")
		}
	}
	return r, nil
}

// @Summary Create or replace a catalog product
// @Tags products
// @Accept json
// @Produce json
// @Param brand path string true "Brand"
// @Param article path string true "Article number"
// @Param input body domain.RawProduct true "Product with offers"
// @Success 200 {object} domain.RawProduct
// @Failure 400 {object} map[string]string
// @Router /products/{brand}/{article} [put]
func (s *Server) upsertProduct(c *gin.Context) {
	var req domain.RawProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.svc.Catalog.Upsert(c, c.Param("brand"), c.Param("article"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Get catalog product
// @Tags products
// @Produce json
// @Param brand path string true "Brand"
// @Param article path string true "Article number"
// @Success 200 {object} domain.RawProduct
// @Failure 404 {object} map[string]string
// @Router /products/{brand}/{article} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.svc.Catalog.Get(c, c.Param("brand"), c.Param("article"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete catalog product
// @Tags products
// @Param brand path string true "Brand"
// @Param article path string true "Article number"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /products/{brand}/{article} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.svc.Catalog.Delete(c, c.Param("brand"), c.Param("article")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cart handlers

// @Summary Get cart with summary
// @Tags carts
// @Produce json
// @Param cartID path string true "Cart ID"
// @Success 200 {object} service.Cart
// @Router /carts/{cartID} [get]
func (s *Server) getCart(c *gin.Context) {
	cart, err := s.svc.Carts.Get(c, c.Param("cartID"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// @Summary Add offer to cart
// @Description Rejections by stock or price return 409 with reason and message
// @Tags carts
// @Accept json
// @Produce json
// @Param cartID path string true "Cart ID"
// @Param input body service.AddRequest true "Offer"
// @Success 201 {object} service.AddResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} service.AddResult
// @Router /carts/{cartID}/items [post]
func (s *Server) addItem(c *gin.Context) {
	var req service.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res, err := s.svc.Carts.AddOffer(c, c.Param("cartID"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !res.Added {
		c.JSON(http.StatusConflict, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type updateItemReq struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// @Summary Change line quantity
// @Tags carts
// @Accept json
// @Produce json
// @Param cartID path string true "Cart ID"
// @Param lineID path string true "Line ID"
// @Param input body updateItemReq true "Quantity"
// @Success 200 {object} domain.CartLine
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /carts/{cartID}/items/{lineID} [patch]
func (s *Server) updateItem(c *gin.Context) {
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	line, err := s.svc.Carts.UpdateQuantity(c, c.Param("cartID"), c.Param("lineID"), req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

type selectItemReq struct {
	Selected *bool `json:"selected" binding:"required"`
}

// @Summary Select or deselect a line for checkout
// @Tags carts
// @Accept json
// @Param cartID path string true "Cart ID"
// @Param lineID path string true "Line ID"
// @Param input body selectItemReq true "Selection"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /carts/{cartID}/items/{lineID}/select [post]
func (s *Server) selectItem(c *gin.Context) {
	var req selectItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.svc.Carts.SetSelected(c, c.Param("cartID"), c.Param("lineID"), *req.Selected); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove a line
// @Tags carts
// @Param cartID path string true "Cart ID"
// @Param lineID path string true "Line ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /carts/{cartID}/items/{lineID} [delete]
func (s *Server) removeItem(c *gin.Context) {
	if err := s.svc.Carts.Remove(c, c.Param("cartID"), c.Param("lineID")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Clear cart
// @Tags carts
// @Param cartID path string true "Cart ID"
// @Success 204
// @Router /carts/{cartID}/items [delete]
func (s *Server) clearCart(c *gin.Context) {
	if err := s.svc.Carts.Clear(c, c.Param("cartID")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout handlers

// @Summary Check out selected lines
// @Description Submitted returns 201; a stock shortfall returns 200 with checkout_id to resolve; a failed submission returns 502
// @Tags checkout
// @Accept json
// @Produce json
// @Param cartID path string true "Cart ID"
// @Param input body domain.Customer true "Customer"
// @Success 201 {object} service.CheckoutResult
// @Success 200 {object} service.CheckoutResult
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} service.CheckoutResult
// @Router /carts/{cartID}/checkout [post]
func (s *Server) startCheckout(c *gin.Context) {
	var req domain.Customer
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res, err := s.svc.Checkout.Start(c, c.Param("cartID"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(checkoutStatus(res), res)
}

type resolveReq struct {
	Action string `json:"action" binding:"required,oneof=order_available return_to_cart"`
}

// @Summary Resolve a stock shortfall
// @Tags checkout
// @Accept json
// @Produce json
// @Param checkoutID path string true "Checkout ID"
// @Param input body resolveReq true "order_available or return_to_cart"
// @Success 201 {object} service.CheckoutResult
// @Success 200 {object} service.CheckoutResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkouts/{checkoutID}/resolve [post]
func (s *Server) resolveCheckout(c *gin.Context) {
	var req resolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action"})
		return
	}
	res, err := s.svc.Checkout.Resolve(c, c.Param("checkoutID"), req.Action)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(checkoutStatus(res), res)
}

func checkoutStatus(res *service.CheckoutResult) int {
	switch res.State {
	case checkout.StateSubmitted.String():
		return http.StatusCreated
	case checkout.StateFailed.String():
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// Order handlers

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	o, err := s.svc.Orders.GetOrder(c, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Cancel order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (s *Server) cancelOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	o, err := s.svc.Orders.CancelOrder(c, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func mapErrorToStatus(err error) int {
	var mismatch *domain.StockMismatchError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrQuantityExceedsStock),
		errors.Is(err, service.ErrPriceChanged),
		errors.Is(err, repository.ErrConflict),
		errors.As(err, &mismatch):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrNothingToOrder):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
