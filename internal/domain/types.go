package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// --- Catalog ---

// CatalogItem is an inventory record. SKU is its identity and never changes.
type CatalogItem struct {
	SKU      string          `json:"sku" yaml:"sku"`
	Name     string          `json:"name" yaml:"name"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	StockQty int             `json:"stockQty" yaml:"stockQty"`
}

// --- Promotions ---

// ApplicationMode selects how many units of the target a promotion discounts.
type ApplicationMode string

const (
	// ModeAll discounts every unit of the trigger line once the threshold is reached.
	ModeAll ApplicationMode = "ALL"
	// ModeQualifiedGroups discounts one unit per complete group of RequiredQty trigger units.
	ModeQualifiedGroups ApplicationMode = "QUALIFIED_GROUPS"
)

// ParseApplicationMode accepts the canonical names plus the ITEMS_* aliases used by older seed files.
func ParseApplicationMode(s string) (ApplicationMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALL", "ITEMS_ALL":
		return ModeAll, nil
	case "QUALIFIED_GROUPS", "ITEMS_QUALIFIED":
		return ModeQualifiedGroups, nil
	}
	return "", fmt.Errorf("unknown application mode %q", s)
}

func (m *ApplicationMode) UnmarshalText(text []byte) error {
	parsed, err := ParseApplicationMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Promotion is a discount rule keyed by the SKU that triggers it.
// TriggerSKU and TargetSKU may be equal (buy 3 get 1 free on the same item).
type Promotion struct {
	ID              string                 `json:"id,omitempty" yaml:"id,omitempty"`
	TriggerSKU      string                 `json:"triggerSku" yaml:"triggerSku"`
	RequiredQty     int                    `json:"requiredQty" yaml:"requiredQty"`
	TargetSKU       string                 `json:"targetSku" yaml:"targetSku"`
	DiscountPercent decimal.Decimal        `json:"discountPercent" yaml:"discountPercent"`
	Mode            ApplicationMode        `json:"applicationMode" yaml:"applicationMode"`
	Condition       map[string]interface{} `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Label returns the promotion ID, or trigger->target when none was given.
func (p Promotion) Label() string {
	if p.ID != "" {
		return p.ID
	}
	return p.TriggerSKU + "->" + p.TargetSKU
}

var hundred = decimal.NewFromInt(100)

// Validate rejects promotions that can never be applied sensibly.
func (p Promotion) Validate() error {
	if strings.TrimSpace(p.TriggerSKU) == "" || strings.TrimSpace(p.TargetSKU) == "" {
		return invalidPromotionf(p.TriggerSKU, "trigger and target SKU are required")
	}
	if p.RequiredQty <= 0 {
		return invalidPromotionf(p.TriggerSKU, "requiredQty must be positive, got %d", p.RequiredQty)
	}
	if p.DiscountPercent.IsNegative() || p.DiscountPercent.GreaterThan(hundred) {
		return invalidPromotionf(p.TriggerSKU, "discountPercent must be within [0,100], got %s", p.DiscountPercent)
	}
	switch p.Mode {
	case ModeAll, ModeQualifiedGroups:
	default:
		return invalidPromotionf(p.TriggerSKU, "unknown application mode %q", p.Mode)
	}
	return nil
}

// --- Cart ---

// CartLine is one distinct SKU in the cart. Price is snapshotted when the line is created.
type CartLine struct {
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	AccumulatedDiscount decimal.Decimal `json:"accumulatedDiscount"`
}

// Gross is price times quantity before any discount.
func (l CartLine) Gross() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Net is the gross value minus the accumulated discount.
func (l CartLine) Net() decimal.Decimal {
	return l.Gross().Sub(l.AccumulatedDiscount)
}

// Seed is the ordered initial data handed to the stores at construction.
type Seed struct {
	Items      []CatalogItem `json:"items" yaml:"items"`
	Promotions []Promotion   `json:"promotions" yaml:"promotions"`
}
