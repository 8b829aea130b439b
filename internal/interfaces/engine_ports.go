package interfaces

import (
	"context"

	"github.com/Victor-armando18/promo-cart/internal/domain"
	"github.com/Victor-armando18/promo-cart/internal/domain/engine"
)

// ErrRuleExecutionFailed is re-exported so adapters can wrap it without importing domain.
var ErrRuleExecutionFailed = domain.ErrRuleExecutionFailed

// CatalogRepository is the inventory table the cart moves stock through.
type CatalogRepository interface {
	engine.Catalog
	Add(item domain.CatalogItem) error
	Update(item domain.CatalogItem) error
	// Modify performs a read-modify-write inside the table's critical section.
	Modify(sku string, fn func(item *domain.CatalogItem) error) error
	List() []domain.CatalogItem
}

// PromotionRepository is the promotion table.
type PromotionRepository interface {
	engine.Promotions
	Add(p domain.Promotion) error
	List() []domain.Promotion
}

// SeedLoader supplies the initial catalog and promotions (from disk, embedded data, etc.).
type SeedLoader interface {
	Load(ctx context.Context) (*domain.Seed, error)
}

// RuleExecutor runs a JsonLogic rule with custom operators.
type RuleExecutor interface {
	engine.ConditionEvaluator
	Execute(ctx context.Context, ruleData map[string]interface{}, contextVars map[string]interface{}) (interface{}, error)
	RegisterCustomOperator(name string, logic func(args ...interface{}) interface{})
}
