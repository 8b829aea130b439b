package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

type fakeCatalog map[string]domain.CatalogItem

func (c fakeCatalog) FindBySKU(sku string) (domain.CatalogItem, bool) {
	item, ok := c[sku]
	return item, ok
}

type fakePromotions []domain.Promotion

func (ps fakePromotions) FindByTriggerSKU(sku string) (domain.Promotion, bool) {
	for _, p := range ps {
		if p.TriggerSKU == sku {
			return p, true
		}
	}
	return domain.Promotion{}, false
}

type panickingConditions struct{}

func (panickingConditions) Evaluate(context.Context, map[string]interface{}, map[string]interface{}) (bool, error) {
	var zero int
	_ = 1 / zero
	return true, nil
}

type stubConditions struct {
	met bool
	err error
}

func (s stubConditions) Evaluate(context.Context, map[string]interface{}, map[string]interface{}) (bool, error) {
	return s.met, s.err
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(sku, price string, qty int) *domain.CartLine {
	return &domain.CartLine{SKU: sku, Name: sku, Price: d(price), Quantity: qty}
}

var catalog = fakeCatalog{
	"A": {SKU: "A", Price: d("5399.99")},
	"B": {SKU: "B", Price: d("30")},
	"C": {SKU: "C", Price: d("109.50")},
	"G": {SKU: "G", Price: d("49.99")},
}

func promo(trigger string, required int, target, pct string, mode domain.ApplicationMode) domain.Promotion {
	return domain.Promotion{TriggerSKU: trigger, RequiredQty: required, TargetSKU: target, DiscountPercent: d(pct), Mode: mode}
}

func TestRatio(t *testing.T) {
	groups := promo("G", 3, "G", "100", domain.ModeQualifiedGroups)
	all := promo("C", 3, "C", "10", domain.ModeAll)

	for qty, want := range map[int]int{0: 0, 2: 0, 3: 1, 4: 1, 5: 1, 6: 2, 7: 2} {
		got, err := Ratio(domain.CartLine{Quantity: qty}, groups)
		require.NoError(t, err)
		assert.Equal(t, want, got, "groups qty=%d", qty)
	}
	for _, qty := range []int{1, 3, 6} {
		got, err := Ratio(domain.CartLine{Quantity: qty}, all)
		require.NoError(t, err)
		assert.Equal(t, qty, got)
	}

	_, err := Ratio(domain.CartLine{Quantity: 3}, promo("G", 3, "G", "100", "BOGUS"))
	assert.True(t, errors.Is(err, domain.ErrInvalidPromotionConfig))
}

func TestDiscountedUnits_ClampedByTarget(t *testing.T) {
	p := promo("A", 1, "B", "100", domain.ModeQualifiedGroups)
	units, err := DiscountedUnits(domain.CartLine{Quantity: 2}, domain.CartLine{Quantity: 1}, p)
	require.NoError(t, err)
	assert.Equal(t, 1, units)
}

func TestEngine_Apply(t *testing.T) {
	t.Run("self promotion", func(t *testing.T) {
		g := line("G", "49.99", 6)
		e := &Engine{Catalog: catalog, Promotions: fakePromotions{promo("G", 3, "G", "100", domain.ModeQualifiedGroups)}}
		res := e.Apply(context.Background(), []*domain.CartLine{g})

		require.Len(t, res.Applied, 1)
		assert.Equal(t, 2, res.Applied[0].Units)
		assert.True(t, g.AccumulatedDiscount.Equal(d("99.98")))
		assert.True(t, Total([]*domain.CartLine{g}).Equal(d("199.96")))
	})

	t.Run("cross promotion discounts the target line", func(t *testing.T) {
		a, b := line("A", "5399.99", 1), line("B", "30", 2)
		e := &Engine{Catalog: catalog, Promotions: fakePromotions{promo("A", 1, "B", "100", domain.ModeQualifiedGroups)}}
		e.Apply(context.Background(), []*domain.CartLine{a, b})

		assert.True(t, a.AccumulatedDiscount.IsZero())
		assert.True(t, b.AccumulatedDiscount.Equal(d("30")))
		assert.True(t, Total([]*domain.CartLine{a, b}).Equal(d("5429.99")))
	})

	t.Run("all mode below threshold", func(t *testing.T) {
		c := line("C", "109.50", 2)
		e := &Engine{Catalog: catalog, Promotions: fakePromotions{promo("C", 3, "C", "10", domain.ModeAll)}}
		res := e.Apply(context.Background(), []*domain.CartLine{c})

		assert.Empty(t, res.Applied)
		require.Len(t, res.Skipped, 1)
		assert.Equal(t, ReasonBelowThreshold, res.Skipped[0].Reason)
		assert.True(t, Total([]*domain.CartLine{c}).Equal(d("219")))
	})

	t.Run("all mode at threshold", func(t *testing.T) {
		c := line("C", "109.50", 3)
		e := &Engine{Catalog: catalog, Promotions: fakePromotions{promo("C", 3, "C", "10", domain.ModeAll)}}
		e.Apply(context.Background(), []*domain.CartLine{c})
		assert.True(t, Total([]*domain.CartLine{c}).Equal(d("295.65")))
	})

	t.Run("target not in cart warns and skips", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		a := line("A", "5399.99", 1)
		e := &Engine{Catalog: catalog, Promotions: fakePromotions{promo("A", 1, "B", "100", domain.ModeQualifiedGroups)}, Logger: zap.New(core)}
		res := e.Apply(context.Background(), []*domain.CartLine{a})

		assert.Empty(t, res.Applied)
		require.Len(t, res.Skipped, 1)
		assert.Equal(t, ReasonTargetNotInCart, res.Skipped[0].Reason)
		assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})

	t.Run("unknown target is logged and does not block other lines", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		a, g := line("A", "5399.99", 1), line("G", "49.99", 3)
		e := &Engine{
			Catalog: catalog,
			Promotions: fakePromotions{
				promo("A", 1, "NOPE", "100", domain.ModeQualifiedGroups),
				promo("G", 3, "G", "100", domain.ModeQualifiedGroups),
			},
			Logger: zap.New(core),
		}
		res := e.Apply(context.Background(), []*domain.CartLine{a, g})

		require.Len(t, res.Skipped, 1)
		assert.True(t, errors.Is(res.Skipped[0].Err, domain.ErrInvalidPromotionConfig))
		require.Len(t, res.Applied, 1)
		assert.Equal(t, "G", res.Applied[0].TargetSKU)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("condition gates the promotion", func(t *testing.T) {
		p := promo("G", 3, "G", "100", domain.ModeQualifiedGroups)
		p.Condition = map[string]interface{}{">=": []interface{}{map[string]interface{}{"var": "cart.items"}, 10.0}}

		g := line("G", "49.99", 3)
		e := &Engine{Catalog: catalog, Promotions: fakePromotions{p}, Conditions: stubConditions{met: false}}
		res := e.Apply(context.Background(), []*domain.CartLine{g})
		assert.Empty(t, res.Applied)
		assert.Equal(t, ReasonConditionFalse, res.Skipped[0].Reason)

		e.Conditions = stubConditions{met: true}
		res = e.Apply(context.Background(), []*domain.CartLine{g})
		assert.Len(t, res.Applied, 1)

		g.AccumulatedDiscount = decimal.Zero
		e.Conditions = nil
		res = e.Apply(context.Background(), []*domain.CartLine{g})
		assert.Equal(t, ReasonConditionFailed, res.Skipped[0].Reason)
		assert.True(t, g.AccumulatedDiscount.IsZero())
	})

	t.Run("panicking condition skips only its promotion", func(t *testing.T) {
		p := promo("G", 3, "G", "100", domain.ModeQualifiedGroups)
		p.Condition = map[string]interface{}{"groups": []interface{}{map[string]interface{}{"var": "line.quantity"}, 0.5}}

		core, logs := observer.New(zapcore.ErrorLevel)
		g, c := line("G", "49.99", 3), line("C", "109.50", 3)
		e := &Engine{
			Catalog:    catalog,
			Promotions: fakePromotions{p, promo("C", 3, "C", "10", domain.ModeAll)},
			Conditions: panickingConditions{},
			Logger:     zap.New(core),
		}

		var res Result
		require.NotPanics(t, func() { res = e.Apply(context.Background(), []*domain.CartLine{g, c}) })
		require.Len(t, res.Skipped, 1)
		assert.Equal(t, ReasonConditionFailed, res.Skipped[0].Reason)
		assert.True(t, errors.Is(res.Skipped[0].Err, domain.ErrRuleExecutionFailed))
		require.Len(t, res.Applied, 1)
		assert.Equal(t, "C", res.Applied[0].TargetSKU)
		assert.True(t, Total([]*domain.CartLine{g, c}).Equal(d("445.62")))
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("discount is additive within a pass", func(t *testing.T) {
		g := line("G", "49.99", 3)
		e := &Engine{Catalog: catalog, Promotions: fakePromotions{promo("G", 3, "G", "100", domain.ModeQualifiedGroups)}}
		e.Apply(context.Background(), []*domain.CartLine{g})
		e.Apply(context.Background(), []*domain.CartLine{g})
		assert.True(t, g.AccumulatedDiscount.Equal(d("99.98")))
	})
}

func TestConditionVars(t *testing.T) {
	a, b := line("A", "10", 2), line("B", "2.5", 4)
	vars := ConditionVars(*a, []*domain.CartLine{a, b})

	cart := vars["cart"].(map[string]interface{})
	assert.Equal(t, 6, cart["items"])
	assert.Equal(t, 30.0, cart["subtotal"])
	assert.Equal(t, []interface{}{"A", "B"}, cart["skus"])
	assert.Equal(t, 2, vars["line"].(map[string]interface{})["quantity"])
}

func TestTotal_EmptyIsZero(t *testing.T) {
	assert.True(t, Total(nil).IsZero())
}
