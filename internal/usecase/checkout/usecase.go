package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Victor-armando18/promo-cart/internal/domain"
	"github.com/Victor-armando18/promo-cart/internal/domain/engine"
	"github.com/Victor-armando18/promo-cart/internal/interfaces"
	"github.com/Victor-armando18/promo-cart/pkg/money"
)

// UseCase runs one checkout pass: reset discounts, apply promotions, total, diff.
type UseCase struct {
	Engine *engine.Engine
	Differ Differ
}

type Differ interface {
	Diff(before, after []domain.CartLine) (map[string]interface{}, bool, error)
}

// Run recomputes every line's discount from zero, so repeated passes over an
// unchanged cart produce the same total. The receipt is always returned; a
// non-nil error means only the receipt metadata (ID, Delta) is incomplete.
func (u *UseCase) Run(ctx context.Context, lines []*domain.CartLine) (*interfaces.Receipt, error) {
	before := snapshot(lines)

	for _, l := range lines {
		l.AccumulatedDiscount = decimal.Zero
	}
	res := u.Engine.Apply(ctx, lines)

	after := snapshot(lines)
	receipt := &interfaces.Receipt{
		Subtotal: money.RoundCurrency(engine.Subtotal(lines)),
		Discount: money.RoundCurrency(engine.Discounts(lines)),
		Total:    engine.Total(lines),
		Lines:    after,
		Applied:  res.Applied,
		Skipped:  res.Skipped,
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return receipt, fmt.Errorf("generating receipt id: %w", err)
	}
	receipt.ID = id.String()

	if u.Differ != nil {
		delta, changed, err := u.Differ.Diff(before, after)
		if err != nil {
			return receipt, fmt.Errorf("computing receipt delta: %w", err)
		}
		receipt.Delta = delta
		receipt.ServerDelta = changed
	}
	return receipt, nil
}

func snapshot(lines []*domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	for i, l := range lines {
		out[i] = *l
	}
	return out
}
