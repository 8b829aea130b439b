package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Victor-armando18/promo-cart/internal/domain"
	"github.com/Victor-armando18/promo-cart/internal/domain/engine"
)

// Receipt is the detailed outcome of a checkout pass.
type Receipt struct {
	ID       string               `json:"id"`
	Subtotal decimal.Decimal      `json:"subtotal"`
	Discount decimal.Decimal      `json:"discount"`
	Total    decimal.Decimal      `json:"total"`
	Lines    []domain.CartLine    `json:"lines"`
	Applied  []engine.Application `json:"applied"`
	Skipped  []engine.Skip        `json:"skipped"`
	// Delta is an RFC 7386 merge patch from the lines before the pass to the lines after it.
	Delta       map[string]interface{} `json:"delta,omitempty"`
	ServerDelta bool                   `json:"serverDelta"`
}

// CartFacade is what a host program drives.
type CartFacade interface {
	AddItem(sku string) error
	RemoveItem(sku string) error
	// AddItems and RemoveItems move several units at once, all or none.
	AddItems(sku string, qty int) error
	RemoveItems(sku string, qty int) error
	Checkout(ctx context.Context) decimal.Decimal
	CheckoutReceipt(ctx context.Context) (*Receipt, error)
	ClearCart()
	Lines() []domain.CartLine
}
