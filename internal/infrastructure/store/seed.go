package store

import (
	"fmt"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// NewFromSeed builds both stores and loads the seed in order. The first
// failing record aborts construction.
func NewFromSeed(seed *domain.Seed) (*CatalogStore, *PromotionStore, error) {
	catalog := NewCatalogStore()
	promotions := NewPromotionStore()
	if seed == nil {
		return catalog, promotions, nil
	}
	for _, item := range seed.Items {
		if err := catalog.Add(item); err != nil {
			return nil, nil, fmt.Errorf("seeding catalog: %w", err)
		}
	}
	for _, p := range seed.Promotions {
		if err := promotions.Add(p); err != nil {
			return nil, nil, fmt.Errorf("seeding promotions: %w", err)
		}
	}
	return catalog, promotions, nil
}
