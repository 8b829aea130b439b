package store

import (
	"sync"

	"github.com/Victor-armando18/promo-cart/internal/domain"
)

// Table names a lockable resource. Inventory and promotion mutations use
// separate tables so they never contend with each other.
type Table string

const (
	TableInventory Table = "INVENTORY"
	TablePromotion Table = "PROMOTION"
)

// tableGuard is an exclusive guard around one table. Acquisition never blocks:
// a held guard is reported as a lock contention error. TryLock is atomic, so two
// callers cannot both observe the guard as free.
type tableGuard struct {
	table Table
	mu    sync.Mutex
}

func (g *tableGuard) acquire() error {
	if !g.mu.TryLock() {
		return domain.LockContention(string(g.table))
	}
	return nil
}

func (g *tableGuard) release() {
	g.mu.Unlock()
}

// with runs fn while holding the guard. Everything fn checks and mutates stays
// inside the critical section.
func (g *tableGuard) with(fn func() error) error {
	if err := g.acquire(); err != nil {
		return err
	}
	defer g.release()
	return fn()
}
