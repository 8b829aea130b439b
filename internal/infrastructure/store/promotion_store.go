package store

import (
	"sync"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// PromotionStore holds promotion rules in registration order.
type PromotionStore struct {
	guard tableGuard

	rw         sync.RWMutex
	promotions []domain.Promotion
}

func NewPromotionStore() *PromotionStore {
	return &PromotionStore{guard: tableGuard{table: TablePromotion}}
}

// FindByTriggerSKU returns the first registered promotion for sku. Later
// registrations for the same trigger are never returned.
func (s *PromotionStore) FindByTriggerSKU(sku string) (domain.Promotion, bool) {
	s.rw.RLock()
	defer s.rw.RUnlock()
	for _, p := range s.promotions {
		if p.TriggerSKU == sku {
			return p, true
		}
	}
	return domain.Promotion{}, false
}

// Add validates and registers a promotion.
func (s *PromotionStore) Add(p domain.Promotion) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.guard.with(func() error {
		s.rw.Lock()
		defer s.rw.Unlock()
		s.promotions = append(s.promotions, p)
		return nil
	})
}

func (s *PromotionStore) List() []domain.Promotion {
	s.rw.RLock()
	defer s.rw.RUnlock()
	out := make([]domain.Promotion, len(s.promotions))
	copy(out, s.promotions)
	return out
}
