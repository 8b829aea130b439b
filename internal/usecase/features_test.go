package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/Victor-armando18/promo-cart/internal/infrastructure"
	"github.com/Victor-armando18/promo-cart/internal/infrastructure/store"
	"github.com/Victor-armando18/promo-cart/internal/interfaces"
)

type cartTestContext struct {
	cart    *CartService
	catalog *store.CatalogStore
	receipt *interfaces.Receipt
	err     error
}

func (c *cartTestContext) reset() {
	c.cart = nil
	c.catalog = nil
	c.receipt = nil
	c.err = nil
}

func (c *cartTestContext) theDemoCatalogAndPromotions() error {
	cart, catalog, err := NewSession(context.Background(), infrastructure.NewSeedLoader(""),
		WithConditions(infrastructure.NewJsonLogicExecutor()))
	if err != nil {
		return err
	}
	c.cart, c.catalog = cart, catalog
	return nil
}

func (c *cartTestContext) iAddOf(qty int, sku string) error {
	for i := 0; i < qty; i++ {
		if err := c.cart.AddItem(sku); err != nil {
			return fmt.Errorf("adding %s: %w", sku, err)
		}
	}
	return nil
}

func (c *cartTestContext) iTryToAddOf(qty int, sku string) error {
	for i := 0; i < qty && c.err == nil; i++ {
		c.err = c.cart.AddItem(sku)
	}
	return nil
}

func (c *cartTestContext) iRemoveOf(qty int, sku string) error {
	for i := 0; i < qty; i++ {
		if err := c.cart.RemoveItem(sku); err != nil {
			return fmt.Errorf("removing %s: %w", sku, err)
		}
	}
	return nil
}

func (c *cartTestContext) iTryToRemoveOf(qty int, sku string) error {
	for i := 0; i < qty && c.err == nil; i++ {
		c.err = c.cart.RemoveItem(sku)
	}
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	c.cart.ClearCart()
	return nil
}

func (c *cartTestContext) iCheckOut() error {
	receipt, err := c.cart.CheckoutReceipt(context.Background())
	c.receipt = receipt
	return err
}

func (c *cartTestContext) theTotalIs(want string) error {
	if c.receipt == nil {
		return errors.New("no checkout has run")
	}
	expected, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !c.receipt.Total.Equal(expected) {
		return fmt.Errorf("expected total %s, got %s", want, c.receipt.Total.StringFixed(2))
	}
	return nil
}

func (c *cartTestContext) promotionWasSkipped(id string) error {
	for _, s := range c.receipt.Skipped {
		if s.PromotionID == id {
			return nil
		}
	}
	return fmt.Errorf("expected promotion %q to be skipped, skipped: %v", id, c.receipt.Skipped)
}

func (c *cartTestContext) theOperationFailsWith(substring string) error {
	if c.err == nil {
		return errors.New("expected the operation to fail but it succeeded")
	}
	if !strings.Contains(c.err.Error(), substring) {
		return fmt.Errorf("expected error to contain %q, got %q", substring, c.err.Error())
	}
	return nil
}

func (c *cartTestContext) theCatalogHasInStock(qty int, sku string) error {
	item, ok := c.catalog.FindBySKU(sku)
	if !ok {
		return fmt.Errorf("sku %s not in catalog", sku)
	}
	if item.StockQty != qty {
		return fmt.Errorf("expected stock %d for %s, got %d", qty, sku, item.StockQty)
	}
	return nil
}

func (c *cartTestContext) theCartHoldsOf(qty int, sku string) error {
	for _, l := range c.cart.Lines() {
		if l.SKU == sku {
			if l.Quantity != qty {
				return fmt.Errorf("expected quantity %d for %s, got %d", qty, sku, l.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("sku %s not in cart", sku)
}

func (c *cartTestContext) theCartIsEmpty() error {
	if n := len(c.cart.Lines()); n != 0 {
		return fmt.Errorf("expected empty cart, got %d lines", n)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the demo catalog and promotions$`, tc.theDemoCatalogAndPromotions)
	ctx.Step(`^I add (\d+) of "([^"]*)"$`, tc.iAddOf)

	// When steps
	ctx.Step(`^I try to add (\d+) of "([^"]*)"$`, tc.iTryToAddOf)
	ctx.Step(`^I remove (\d+) of "([^"]*)"$`, tc.iRemoveOf)
	ctx.Step(`^I try to remove (\d+) of "([^"]*)"$`, tc.iTryToRemoveOf)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^I check out$`, tc.iCheckOut)

	// Then steps
	ctx.Step(`^the total is (\d+(?:\.\d+)?)$`, tc.theTotalIs)
	ctx.Step(`^promotion "([^"]*)" was skipped$`, tc.promotionWasSkipped)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
	ctx.Step(`^the catalog has (\d+) of "([^"]*)" in stock$`, tc.theCatalogHasInStock)
	ctx.Step(`^the cart holds (\d+) of "([^"]*)"$`, tc.theCartHoldsOf)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
