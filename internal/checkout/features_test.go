package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"autoparts/internal/checkout"
	"autoparts/internal/domain"
	"autoparts/internal/offers"
)

type recordingSubmitter struct {
	requests []domain.OrderRequest
}

func (r *recordingSubmitter) SubmitOrder(_ context.Context, req domain.OrderRequest) (*domain.Order, error) {
	r.requests = append(r.requests, req)
	return &domain.Order{ID: int64(len(r.requests)), Status: domain.OrderStatusPending}, nil
}

type checkoutTestContext struct {
	offers    map[string]domain.Offer
	order     []string
	cart      []domain.CartLine
	check     offers.AddCheck
	sorted    []domain.Offer
	submitter *recordingSubmitter
	session   *checkout.Session
	outcome   checkout.Outcome
}

func (c *checkoutTestContext) reset() {
	c.offers = map[string]domain.Offer{}
	c.order = nil
	c.cart = nil
	c.check = offers.AddCheck{}
	c.sorted = nil
	c.submitter = &recordingSubmitter{}
	c.session = nil
	c.outcome = checkout.Outcome{}
}

func (c *checkoutTestContext) anEmptyCart() error {
	c.cart = nil
	return nil
}

func (c *checkoutTestContext) addOffer(id string, origin domain.Origin, price int64, stock *int64, preferred bool) {
	o := domain.Offer{Origin: origin, Price: decimal.NewFromInt(price), Stock: stock, Preferred: preferred, Name: id}
	if origin == domain.OriginInternal {
		o.ProductID = id
	} else {
		o.OfferKey = id
	}
	c.offers[id] = o
	c.order = append(c.order, id)
}

func (c *checkoutTestContext) anInternalOffer(id string, price, stock int) error {
	s := int64(stock)
	c.addOffer(id, domain.OriginInternal, int64(price), &s, false)
	return nil
}

func (c *checkoutTestContext) anExternalOffer(id string, price, stock int) error {
	s := int64(stock)
	c.addOffer(id, domain.OriginExternal, int64(price), &s, false)
	return nil
}

func (c *checkoutTestContext) aPreferredExternalOffer(id string, price, stock int) error {
	s := int64(stock)
	c.addOffer(id, domain.OriginExternal, int64(price), &s, true)
	return nil
}

func (c *checkoutTestContext) anExternalOfferWithUnknownStock(id string, price int) error {
	c.addOffer(id, domain.OriginExternal, int64(price), nil, false)
	return nil
}

func (c *checkoutTestContext) theCartHolds(qty int, id string) error {
	o, ok := c.offers[id]
	if !ok {
		return fmt.Errorf("unknown offer %q", id)
	}
	c.cart = append(c.cart, domain.CartLine{
		ID:         "line-" + id,
		ProductID:  o.ProductID,
		OfferKey:   o.OfferKey,
		Price:      o.Price,
		Quantity:   int64(qty),
		IsExternal: o.Origin == domain.OriginExternal,
	})
	return nil
}

func (c *checkoutTestContext) iTryToAdd(qty int, id string) error {
	o, ok := c.offers[id]
	if !ok {
		return fmt.Errorf("unknown offer %q", id)
	}
	c.check = offers.ValidateAdd(o, c.cart, int64(qty))
	return nil
}

func (c *checkoutTestContext) theAddIsRejectedAs(kind string) error {
	if c.check.OK {
		return errors.New("expected the add to be rejected")
	}
	if c.check.Kind.String() != kind {
		return fmt.Errorf("expected %s, got %s", kind, c.check.Kind)
	}
	return nil
}

func (c *checkoutTestContext) theClampedQuantityIs(qty int) error {
	if c.check.ClampedQty != int64(qty) {
		return fmt.Errorf("expected clamped quantity %d, got %d", qty, c.check.ClampedQty)
	}
	return nil
}

func (c *checkoutTestContext) theAddIsAcceptedWithQuantity(qty int) error {
	if !c.check.OK {
		return fmt.Errorf("expected the add to be accepted, got %s", c.check.Kind)
	}
	return c.theClampedQuantityIs(qty)
}

func (c *checkoutTestContext) aSelectedInternalCartLine(id, name string, qty int, stock string) error {
	c.cart = append(c.cart, domain.CartLine{
		ID: id, ProductID: "P-" + id, Name: name, Price: decimal.NewFromInt(100),
		Quantity: int64(qty), Stock: stock, Selected: true,
	})
	return nil
}

func (c *checkoutTestContext) aSelectedExternalCartLine(id string, qty int) error {
	c.cart = append(c.cart, domain.CartLine{
		ID: id, OfferKey: "K-" + id, Name: id, Price: decimal.NewFromInt(100),
		Quantity: int64(qty), IsExternal: true, Selected: true,
	})
	return nil
}

func (c *checkoutTestContext) iConfirmTheOrder() error {
	c.session = checkout.NewSession(c.submitter, c.cart, domain.Customer{Name: "Тест", Phone: "+70000000000"}, "RUB", nil)
	out, err := c.session.Confirm(context.Background())
	c.outcome = out
	return err
}

func (c *checkoutTestContext) iChooseToOrderTheAvailableQuantity() error {
	out, err := c.session.OrderAvailable(context.Background())
	c.outcome = out
	return err
}

func (c *checkoutTestContext) iChooseToReturnToTheCart() error {
	out, err := c.session.ReturnToCart()
	c.outcome = out
	return err
}

func (c *checkoutTestContext) theCheckoutStateIs(state string) error {
	if got := c.session.State().String(); got != state {
		return fmt.Errorf("expected state %s, got %s", state, got)
	}
	return nil
}

func (c *checkoutTestContext) theShortfallListsOnlyLine(id string, available, requested int) error {
	want := domain.StockCheckResult{LineID: id, Available: int64(available), Requested: int64(requested)}
	if len(c.outcome.Shortfall) != 1 {
		return fmt.Errorf("expected one shortfall line, got %d", len(c.outcome.Shortfall))
	}
	got := c.outcome.Shortfall[0]
	got.Name = ""
	if got != want {
		return fmt.Errorf("expected %+v, got %+v", want, got)
	}
	return nil
}

func (c *checkoutTestContext) theSubmittedOrderHasLine(id string, qty int) error {
	if len(c.submitter.requests) == 0 {
		return errors.New("no order was submitted")
	}
	last := c.submitter.requests[len(c.submitter.requests)-1]
	for _, item := range last.Items {
		if item.LineID == id {
			if item.Quantity != int64(qty) {
				return fmt.Errorf("line %s: expected quantity %d, got %d", id, qty, item.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("line %s is not in the order", id)
}

func (c *checkoutTestContext) noOrderWasSubmitted() error {
	if n := len(c.submitter.requests); n != 0 {
		return fmt.Errorf("expected no submissions, got %d", n)
	}
	return nil
}

func (c *checkoutTestContext) iSortTheOffersBy(key, dir string) error {
	list := make([]domain.Offer, 0, len(c.order))
	for _, id := range c.order {
		list = append(list, c.offers[id])
	}
	k := offers.ParseSortKey(key)
	c.sorted = offers.Sort(list, k, offers.ParseDirection(dir, k))
	return nil
}

func (c *checkoutTestContext) theOfferOrderIs(want string) error {
	got := make([]string, len(c.sorted))
	for i, o := range c.sorted {
		got[i] = o.OfferID()
	}
	if strings.Join(got, ",") != want {
		return fmt.Errorf("expected %s, got %s", want, strings.Join(got, ","))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^an internal offer "([^"]*)" priced (\d+) with stock (\d+)$`, tc.anInternalOffer)
	ctx.Step(`^an external offer "([^"]*)" priced (\d+) with stock (\d+)$`, tc.anExternalOffer)
	ctx.Step(`^a preferred external offer "([^"]*)" priced (\d+) with stock (\d+)$`, tc.aPreferredExternalOffer)
	ctx.Step(`^an external offer "([^"]*)" priced (\d+) with unknown stock$`, tc.anExternalOfferWithUnknownStock)
	ctx.Step(`^the cart holds (\d+) of offer "([^"]*)"$`, tc.theCartHolds)
	ctx.Step(`^a selected internal cart line "([^"]*)" named "([^"]*)" with (\d+) requested and stock "([^"]*)"$`, tc.aSelectedInternalCartLine)
	ctx.Step(`^a selected external cart line "([^"]*)" with (\d+) requested$`, tc.aSelectedExternalCartLine)

	// When steps
	ctx.Step(`^I try to add (\d+) of offer "([^"]*)"$`, tc.iTryToAdd)
	ctx.Step(`^I confirm the order$`, tc.iConfirmTheOrder)
	ctx.Step(`^I choose to order the available quantity$`, tc.iChooseToOrderTheAvailableQuantity)
	ctx.Step(`^I choose to return to the cart$`, tc.iChooseToReturnToTheCart)
	ctx.Step(`^I sort the offers by "([^"]*)" "([^"]*)"$`, tc.iSortTheOffersBy)

	// Then steps
	ctx.Step(`^the add is rejected as "([^"]*)"$`, tc.theAddIsRejectedAs)
	ctx.Step(`^the clamped quantity is (\d+)$`, tc.theClampedQuantityIs)
	ctx.Step(`^the add is accepted with quantity (\d+)$`, tc.theAddIsAcceptedWithQuantity)
	ctx.Step(`^the checkout state is "([^"]*)"$`, tc.theCheckoutStateIs)
	ctx.Step(`^the shortfall lists only line "([^"]*)" with (\d+) available of (\d+)$`, tc.theShortfallListsOnlyLine)
	ctx.Step(`^the submitted order has line "([^"]*)" with quantity (\d+)$`, tc.theSubmittedOrderHasLine)
	ctx.Step(`^no order was submitted$`, tc.noOrderWasSubmitted)
	ctx.Step(`^the offer order is "([^"]*)"$`, tc.theOfferOrderIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{"../../features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
