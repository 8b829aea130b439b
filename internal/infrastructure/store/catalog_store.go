package store

import (
	"sync"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// CatalogStore holds inventory records keyed by SKU, in insertion order.
type CatalogStore struct {
	guard tableGuard

	// rw protects the slice and index for readers. Mutations additionally hold
	// guard, so an index read under guard stays valid until it is released.
	rw    sync.RWMutex
	items []domain.CatalogItem
	index map[string]int
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		guard: tableGuard{table: TableInventory},
		index: make(map[string]int),
	}
}

// FindBySKU is a pure read.
func (s *CatalogStore) FindBySKU(sku string) (domain.CatalogItem, bool) {
	s.rw.RLock()
	defer s.rw.RUnlock()
	i, ok := s.index[sku]
	if !ok {
		return domain.CatalogItem{}, false
	}
	return s.items[i], true
}

// Add inserts a new record. It fails if the SKU already exists or the
// inventory table is locked.
func (s *CatalogStore) Add(item domain.CatalogItem) error {
	return s.guard.with(func() error {
		s.rw.Lock()
		defer s.rw.Unlock()
		if _, ok := s.index[item.SKU]; ok {
			return domain.DuplicateSku(item.SKU)
		}
		s.index[item.SKU] = len(s.items)
		s.items = append(s.items, item)
		return nil
	})
}

// Update replaces the record for item.SKU. Negative stock is refused as in Modify.
func (s *CatalogStore) Update(item domain.CatalogItem) error {
	return s.Modify(item.SKU, func(cur *domain.CatalogItem) error {
		*cur = item
		return nil
	})
}

// Modify runs fn against a copy of the record for sku inside the inventory
// critical section and stores the result only when fn returns nil. Readers
// see the previous record until the result is stored.
func (s *CatalogStore) Modify(sku string, fn func(item *domain.CatalogItem) error) error {
	return s.guard.with(func() error {
		s.rw.RLock()
		i, ok := s.index[sku]
		var next domain.CatalogItem
		if ok {
			next = s.items[i]
		}
		s.rw.RUnlock()
		if !ok {
			return domain.NotFound(sku)
		}

		if err := fn(&next); err != nil {
			return err
		}
		if next.StockQty < 0 {
			return domain.OutOfStock(sku)
		}
		next.SKU = sku

		s.rw.Lock()
		s.items[i] = next
		s.rw.Unlock()
		return nil
	})
}

// List returns a snapshot of all records in insertion order.
func (s *CatalogStore) List() []domain.CatalogItem {
	s.rw.RLock()
	defer s.rw.RUnlock()
	out := make([]domain.CatalogItem, len(s.items))
	copy(out, s.items)
	return out
}
