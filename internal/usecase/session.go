package usecase

import (
	"context"

	"github.com/Victor-armando18/promo-cart/internal/infrastructure/store"
	"github.com/Victor-armando18/promo-cart/internal/interfaces"
)

// NewSession loads the seed, builds fresh stores from it and returns a cart
// bound to them. Every session owns its own stores.
func NewSession(ctx context.Context, loader interfaces.SeedLoader, opts ...Option) (*CartService, *store.CatalogStore, error) {
	seed, err := loader.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	catalog, promotions, err := store.NewFromSeed(seed)
	if err != nil {
		return nil, nil, err
	}
	return NewCartService(catalog, promotions, opts...), catalog, nil
}
