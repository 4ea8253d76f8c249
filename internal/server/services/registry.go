// Package services contains the lease registry: lease lifecycle, asset
// registration and the read-only query surface, all written through a
// store.Store.
//
// Every public method runs as exactly one store transaction. The registry
// keeps no record state between calls; mutating calls are additionally
// serialized in-process.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/landlease/internal/clock"
	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/dmitrijs2005/landlease/internal/logging"
	"github.com/dmitrijs2005/landlease/internal/server/models"
	"github.com/dmitrijs2005/landlease/internal/server/store"
)

// Registry implements the lease and asset registries over a record store.
type Registry struct {
	store store.Store
	clock clock.Clock
	log   logging.Logger
	authz Authorizer

	mu sync.Mutex
}

type Option func(*Registry)

func WithClock(c clock.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

func WithLogger(l logging.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithAuthorizer installs the capability check consulted before mutations.
func WithAuthorizer(a Authorizer) Option {
	return func(r *Registry) { r.authz = a }
}

func NewRegistry(st store.Store, opts ...Option) *Registry {
	r := &Registry{
		store: st,
		clock: clock.NewSystem(),
		log:   logging.Nop(),
		authz: AllowAll{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("module", "registry")
	return r
}

// update runs fn in one serialized write transaction.
func (r *Registry) update(ctx context.Context, fn store.TxFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Update(ctx, fn)
}

func getLease(ctx context.Context, tx store.Txn, id uint64) (models.Lease, error) {
	var l models.Lease
	if err := store.GetRecord(ctx, tx, store.LeaseKey(id), &l); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Lease{}, fmt.Errorf("lease %d: %w", id, common.ErrNotFound)
		}
		return models.Lease{}, err
	}
	return l, nil
}

func getAsset(ctx context.Context, tx store.Txn, id uint64) (models.Asset, error) {
	var a models.Asset
	if err := store.GetRecord(ctx, tx, store.AssetKey(id), &a); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Asset{}, fmt.Errorf("asset %d: %w", id, common.ErrNotFound)
		}
		return models.Asset{}, err
	}
	return a, nil
}

// getStatus returns the aggregate counters, all zero if never written.
// Stored counters that do not add up are an invariant violation.
func getStatus(ctx context.Context, tx store.Txn) (models.LeaseStatus, error) {
	var s models.LeaseStatus
	err := store.GetRecord(ctx, tx, store.StatusKey, &s)
	if errors.Is(err, common.ErrNotFound) {
		return models.LeaseStatus{}, nil
	}
	if err != nil {
		return models.LeaseStatus{}, err
	}
	if err := s.Check(); err != nil {
		return models.LeaseStatus{}, fmt.Errorf("%w: %v", common.ErrInvariantViolation, err)
	}
	return s, nil
}

// getCounter returns the last assigned lease ID, 0 when absent.
func getCounter(ctx context.Context, tx store.Txn) (uint64, error) {
	var n uint64
	err := store.GetRecord(ctx, tx, store.CounterKey, &n)
	if errors.Is(err, common.ErrNotFound) {
		return 0, nil
	}
	return n, err
}
