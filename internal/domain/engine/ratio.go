package engine

import (
	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// RatioFunc maps the trigger line quantity to the number of target units a
// promotion may discount, before clamping.
type RatioFunc func(triggerQty, requiredQty int) int

// ratios is the closed set of application modes. A new mode is a new entry.
var ratios = map[domain.ApplicationMode]RatioFunc{
	domain.ModeQualifiedGroups: qualifiedGroups,
	domain.ModeAll:             allUnits,
}

// qualifiedGroups unlocks one unit per complete group of requiredQty.
func qualifiedGroups(triggerQty, requiredQty int) int {
	if requiredQty <= 0 {
		return 0
	}
	return triggerQty / requiredQty
}

func allUnits(triggerQty, _ int) int {
	return triggerQty
}

// Ratio returns the unclamped discount-unit count for a trigger line.
func Ratio(trigger domain.CartLine, p domain.Promotion) (int, error) {
	fn, ok := ratios[p.Mode]
	if !ok {
		return 0, domain.InvalidPromotionf(p.TriggerSKU, "unknown application mode %q", p.Mode)
	}
	return fn(trigger.Quantity, p.RequiredQty), nil
}

// DiscountedUnits clamps the ratio to the target quantity actually in the cart.
func DiscountedUnits(trigger, target domain.CartLine, p domain.Promotion) (int, error) {
	ratio, err := Ratio(trigger, p)
	if err != nil {
		return 0, err
	}
	return min(ratio, target.Quantity), nil
}

// Eligible reports whether the trigger line meets the promotion threshold.
func Eligible(line domain.CartLine, p domain.Promotion) bool {
	return line.SKU == p.TriggerSKU && line.Quantity >= p.RequiredQty
}
