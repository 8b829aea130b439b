package engine

import (
	"context"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// Catalog is the read side of the inventory table the engine needs for target validation.
type Catalog interface {
	FindBySKU(sku string) (domain.CatalogItem, bool)
}

// Promotions resolves the rule for a trigger SKU.
type Promotions interface {
	FindByTriggerSKU(sku string) (domain.Promotion, bool)
}

// ConditionEvaluator evaluates a promotion's optional condition against the
// line and cart variables. A non-nil error skips the promotion.
type ConditionEvaluator interface {
	Evaluate(ctx context.Context, rule map[string]interface{}, vars map[string]interface{}) (bool, error)
}
