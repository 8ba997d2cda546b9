package app

import (
	"context"

	"github.com/shahedul-alam/the-hotel-server/internal/domain"
)

// ConsistencyStrategy decides how the coordinator's paired mutations (a
// booking write plus the room's booked-dates update) are applied. Selected
// once at startup via CONSISTENCY_MODE.
type ConsistencyStrategy interface {
	Name() string
	Run(ctx context.Context, fn func(domain.Store) error) error
}

// Transactional runs fn inside one store transaction. The room row is locked
// before the duplicate check, so concurrent creates for the same room
// serialize and the check-then-append sequence is atomic.
type Transactional struct{ store domain.TxStore }

func NewTransactional(s domain.TxStore) Transactional { return Transactional{store: s} }

func (t Transactional) Name() string { return "transactional" }

func (t Transactional) Run(ctx context.Context, fn func(domain.Store) error) error {
	return t.store.InTx(ctx, fn)
}

// BestEffort is the legacy two-step path: the writes execute independently
// with no atomicity. A failure after the first write reports an error but
// leaves the dangling state for out-of-band reconciliation.
type BestEffort struct{ store domain.Store }

func NewBestEffort(s domain.Store) BestEffort { return BestEffort{store: s} }

func (b BestEffort) Name() string { return "best-effort" }

func (b BestEffort) Run(ctx context.Context, fn func(domain.Store) error) error {
	return fn(b.store)
}
