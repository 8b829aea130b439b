package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Victor-armando18/promo-cart/internal/domain"
	"github.com/Victor-armando18/promo-cart/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// Engine resolves and applies promotions over a set of cart lines.
type Engine struct {
	Catalog    Catalog
	Promotions Promotions
	// Conditions is optional; promotions carrying a condition are skipped without it.
	Conditions ConditionEvaluator
	Logger     *zap.Logger
}

// Apply walks lines in order and adds each applicable promotion's discount to
// its target line. Lines are mutated in place. A failure on one promotion is
// logged and recorded in the result; it never stops the pass.
func (e *Engine) Apply(ctx context.Context, lines []*domain.CartLine) Result {
	log := e.Logger
	if log == nil {
		log = zap.NewNop()
	}

	index := make(map[string]*domain.CartLine, len(lines))
	for _, l := range lines {
		index[l.SKU] = l
	}

	var res Result
	for _, line := range lines {
		p, ok := e.Promotions.FindByTriggerSKU(line.SKU)
		if !ok {
			continue
		}
		fields := []zap.Field{zap.String("promotion", p.Label()), zap.String("trigger_sku", p.TriggerSKU), zap.String("target_sku", p.TargetSKU)}

		if !Eligible(*line, p) {
			res.Skipped = append(res.Skipped, Skip{PromotionID: p.Label(), TriggerSKU: line.SKU, Reason: ReasonBelowThreshold})
			continue
		}

		if len(p.Condition) > 0 {
			met, err := e.evaluateCondition(ctx, *line, p, lines)
			if err != nil {
				log.Error("promotion condition failed", append(fields, zap.Error(err))...)
				res.Skipped = append(res.Skipped, Skip{PromotionID: p.Label(), TriggerSKU: line.SKU, Reason: ReasonConditionFailed, Err: err})
				continue
			}
			if !met {
				res.Skipped = append(res.Skipped, Skip{PromotionID: p.Label(), TriggerSKU: line.SKU, Reason: ReasonConditionFalse})
				continue
			}
		}

		app, err := e.applyPromotion(*line, p, index)
		switch {
		case errors.Is(err, errTargetNotInCart):
			log.Warn("promoted item not found in cart", fields...)
			res.Skipped = append(res.Skipped, Skip{PromotionID: p.Label(), TriggerSKU: line.SKU, Reason: ReasonTargetNotInCart})
		case err != nil:
			log.Error("promotion not applied", append(fields, zap.Error(err))...)
			res.Skipped = append(res.Skipped, Skip{PromotionID: p.Label(), TriggerSKU: line.SKU, Reason: ReasonInvalidConfig, Err: err})
		default:
			log.Debug("promotion applied", append(fields, zap.Int("units", app.Units), zap.String("amount", app.Amount.String()))...)
			res.Applied = append(res.Applied, app)
		}
	}
	return res
}

var errTargetNotInCart = errors.New("target not in cart")

func (e *Engine) applyPromotion(trigger domain.CartLine, p domain.Promotion, index map[string]*domain.CartLine) (Application, error) {
	if _, ok := e.Catalog.FindBySKU(p.TargetSKU); !ok {
		return Application{}, domain.InvalidPromotionf(p.TriggerSKU, "target SKU %s is not in the catalog", p.TargetSKU)
	}
	target, ok := index[p.TargetSKU]
	if !ok {
		return Application{}, errTargetNotInCart
	}

	units, err := DiscountedUnits(trigger, *target, p)
	if err != nil {
		return Application{}, err
	}
	amount := DiscountAmount(*target, p, units)
	target.AccumulatedDiscount = target.AccumulatedDiscount.Add(amount)

	return Application{
		PromotionID: p.Label(),
		TriggerSKU:  p.TriggerSKU,
		TargetSKU:   p.TargetSKU,
		Mode:        p.Mode,
		Units:       units,
		Amount:      amount,
	}, nil
}

// evaluateCondition never lets an evaluator panic escape; it becomes a
// condition failure for this promotion only.
func (e *Engine) evaluateCondition(ctx context.Context, line domain.CartLine, p domain.Promotion, lines []*domain.CartLine) (met bool, err error) {
	if e.Conditions == nil {
		return false, domain.InvalidPromotionf(p.TriggerSKU, "condition present but no evaluator configured")
	}
	defer func() {
		if r := recover(); r != nil {
			met, err = false, fmt.Errorf("%w: %v", domain.ErrRuleExecutionFailed, r)
		}
	}()
	return e.Conditions.Evaluate(ctx, p.Condition, ConditionVars(line, lines))
}

// ConditionVars is the data a promotion condition is evaluated against.
func ConditionVars(line domain.CartLine, lines []*domain.CartLine) map[string]interface{} {
	units := 0
	skus := make([]interface{}, 0, len(lines))
	for _, l := range lines {
		units += l.Quantity
		skus = append(skus, l.SKU)
	}
	price, _ := line.Price.Float64()
	subtotal, _ := Subtotal(lines).Float64()
	return map[string]interface{}{
		"line": map[string]interface{}{
			"sku":      line.SKU,
			"quantity": line.Quantity,
			"price":    price,
		},
		"cart": map[string]interface{}{
			"items":    units,
			"skus":     skus,
			"subtotal": subtotal,
		},
	}
}

// DiscountAmount is discountPercent/100 * price * units.
func DiscountAmount(target domain.CartLine, p domain.Promotion, units int) decimal.Decimal {
	return p.DiscountPercent.Div(hundred).Mul(target.Price).Mul(decimal.NewFromInt(int64(units)))
}

// Subtotal sums the gross value of every line.
func Subtotal(lines []*domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Gross())
	}
	return sum
}

// Discounts sums the accumulated discount of every line.
func Discounts(lines []*domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.AccumulatedDiscount)
	}
	return sum
}

// Total is the sum of (price * quantity - discount) rounded to currency precision.
func Total(lines []*domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Net())
	}
	return money.RoundCurrency(sum)
}
