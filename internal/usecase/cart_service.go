package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Victor-armando18/promo-cart/internal/domain"
	"github.com/Victor-armando18/promo-cart/internal/domain/engine"
	"github.com/Victor-armando18/promo-cart/internal/infrastructure/diff"
	"github.com/Victor-armando18/promo-cart/internal/interfaces"
	"github.com/Victor-armando18/promo-cart/internal/usecase/checkout"
)

// CheckoutRecorder receives every completed checkout pass (metrics, audit).
type CheckoutRecorder interface {
	ObserveCheckout(receipt *interfaces.Receipt)
}

// CartService is a single customer's cart. It is not safe for concurrent use;
// the owning caller serializes access.
type CartService struct {
	id         string
	catalog    interfaces.CatalogRepository
	promotions interfaces.PromotionRepository
	conditions engine.ConditionEvaluator
	recorder   CheckoutRecorder
	logger     *zap.Logger

	lines map[string]*domain.CartLine
	order []string
}

type Option func(*CartService)

func WithLogger(l *zap.Logger) Option {
	return func(c *CartService) { c.logger = l }
}

// WithConditions enables promotions that carry a JsonLogic condition.
func WithConditions(e engine.ConditionEvaluator) Option {
	return func(c *CartService) { c.conditions = e }
}

func WithRecorder(r CheckoutRecorder) Option {
	return func(c *CartService) { c.recorder = r }
}

var _ interfaces.CartFacade = (*CartService)(nil)

func NewCartService(catalog interfaces.CatalogRepository, promotions interfaces.PromotionRepository, opts ...Option) *CartService {
	c := &CartService{
		id:         uuid.NewString(),
		catalog:    catalog,
		promotions: promotions,
		logger:     zap.NewNop(),
		lines:      make(map[string]*domain.CartLine),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("cart_id", c.id))
	return c
}

func (c *CartService) ID() string { return c.id }

// AddItem moves one unit of sku from the catalog into the cart.
func (c *CartService) AddItem(sku string) error {
	return c.AddItems(sku, 1)
}

// AddItems moves qty units of sku into the cart. Either every unit moves or
// none does: stock is checked and taken in one catalog modification.
func (c *CartService) AddItems(sku string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}
	if _, ok := c.catalog.FindBySKU(sku); !ok {
		return domain.ItemNotFound(sku)
	}

	var taken domain.CatalogItem
	err := c.catalog.Modify(sku, func(item *domain.CatalogItem) error {
		if item.StockQty < qty {
			return domain.OutOfStock(sku)
		}
		item.StockQty -= qty
		taken = *item
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ItemNotFound(sku)
		}
		return err
	}

	if line, ok := c.lines[sku]; ok {
		line.Quantity += qty
	} else {
		c.lines[sku] = &domain.CartLine{
			SKU:                 sku,
			Name:                taken.Name,
			Price:               taken.Price,
			Quantity:            qty,
			AccumulatedDiscount: decimal.Zero,
		}
		c.order = append(c.order, sku)
	}
	c.logger.Debug("item added", zap.String("sku", sku), zap.Int("quantity", c.lines[sku].Quantity))
	return nil
}

// RemoveItem returns one unit of sku to the catalog. The line's accumulated
// discount is left as is; the next checkout recomputes it.
func (c *CartService) RemoveItem(sku string) error {
	return c.RemoveItems(sku, 1)
}

// RemoveItems returns qty units of sku to the catalog, all or none. Asking for
// more units than the line holds fails with ErrItemNotInCart.
func (c *CartService) RemoveItems(sku string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}
	if _, ok := c.catalog.FindBySKU(sku); !ok {
		return domain.ItemNotFound(sku)
	}
	line, ok := c.lines[sku]
	if !ok {
		return domain.ItemNotInCart(sku)
	}
	if line.Quantity < qty {
		return &domain.Error{Kind: domain.ErrItemNotInCart, SKU: sku, Msg: fmt.Sprintf("cart holds %d, cannot remove %d", line.Quantity, qty)}
	}

	err := c.catalog.Modify(sku, func(item *domain.CatalogItem) error {
		item.StockQty += qty
		return nil
	})
	if err != nil {
		return err
	}

	if line.Quantity == qty {
		c.deleteLine(sku)
	} else {
		line.Quantity -= qty
	}
	c.logger.Debug("item removed", zap.String("sku", sku), zap.Int("units", qty))
	return nil
}

// ClearCart drops every line. Stock is not returned to the catalog.
func (c *CartService) ClearCart() {
	c.lines = make(map[string]*domain.CartLine)
	c.order = nil
	c.logger.Debug("cart cleared")
}

// Lines returns a copy of the cart lines in the order they were first added.
func (c *CartService) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, *c.lines[sku])
	}
	return out
}

// Checkout applies promotions and returns the total rounded to two decimals.
func (c *CartService) Checkout(ctx context.Context) decimal.Decimal {
	receipt, err := c.CheckoutReceipt(ctx)
	if err != nil {
		c.logger.Error("checkout receipt incomplete", zap.Error(err))
	}
	return receipt.Total
}

// CheckoutReceipt is Checkout with the applied and skipped promotions and
// the line delta. The receipt is never nil.
func (c *CartService) CheckoutReceipt(ctx context.Context) (*interfaces.Receipt, error) {
	uc := &checkout.UseCase{
		Engine: &engine.Engine{
			Catalog:    c.catalog,
			Promotions: c.promotions,
			Conditions: c.conditions,
			Logger:     c.logger,
		},
		Differ: &diff.Differ{},
	}

	receipt, err := uc.Run(ctx, c.orderedLines())

	c.logger.Info("checkout",
		zap.String("receipt_id", receipt.ID),
		zap.Int("lines", len(receipt.Lines)),
		zap.Int("promotions_applied", len(receipt.Applied)),
		zap.String("discount", receipt.Discount.StringFixed(2)),
		zap.String("total", receipt.Total.StringFixed(2)),
	)
	if c.recorder != nil {
		c.recorder.ObserveCheckout(receipt)
	}
	return receipt, err
}

func (c *CartService) orderedLines() []*domain.CartLine {
	out := make([]*domain.CartLine, 0, len(c.order))
	for _, sku := range c.order {
		out = append(out, c.lines[sku])
	}
	return out
}

func (c *CartService) deleteLine(sku string) {
	delete(c.lines, sku)
	for i, s := range c.order {
		if s == sku {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
