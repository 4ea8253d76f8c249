package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/landlease/internal/server/models"
	"github.com/dmitrijs2005/landlease/internal/server/store"
)

// ViewLease returns the stored lease or an error wrapping common.ErrNotFound.
func (r *Registry) ViewLease(ctx context.Context, leaseID uint64) (models.Lease, error) {
	var l models.Lease
	err := r.store.View(ctx, func(ctx context.Context, tx store.Txn) error {
		var err error
		l, err = getLease(ctx, tx, leaseID)
		return err
	})
	return l, err
}

// ViewAsset returns the stored asset or an error wrapping common.ErrNotFound.
func (r *Registry) ViewAsset(ctx context.Context, assetID uint64) (models.Asset, error) {
	var a models.Asset
	err := r.store.View(ctx, func(ctx context.Context, tx store.Txn) error {
		var err error
		a, err = getAsset(ctx, tx, assetID)
		return err
	})
	return a, err
}

// ViewAllLeaseStatus returns the aggregate counters, all zero before the
// first lease is created.
func (r *Registry) ViewAllLeaseStatus(ctx context.Context) (models.LeaseStatus, error) {
	var s models.LeaseStatus
	err := r.store.View(ctx, func(ctx context.Context, tx store.Txn) error {
		var err error
		s, err = getStatus(ctx, tx)
		return err
	})
	return s, err
}

// ListLeases returns every lease in ID order.
func (r *Registry) ListLeases(ctx context.Context) ([]models.Lease, error) {
	leases := []models.Lease{}
	err := r.store.View(ctx, func(ctx context.Context, tx store.Txn) error {
		return store.ScanRecords(ctx, tx, store.KindLease, func(l models.Lease) error {
			leases = append(leases, l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return leases, nil
}

// ListAssets returns every asset in ID order.
func (r *Registry) ListAssets(ctx context.Context) ([]models.Asset, error) {
	assets := []models.Asset{}
	err := r.store.View(ctx, func(ctx context.Context, tx store.Txn) error {
		return store.ScanRecords(ctx, tx, store.KindAsset, func(a models.Asset) error {
			assets = append(assets, a)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// Snapshot is a consistent copy of the whole registry.
type Snapshot struct {
	TakenAt time.Time          `json:"taken_at"`
	Status  models.LeaseStatus `json:"status"`
	Assets  []models.Asset     `json:"assets"`
	Leases  []models.Lease     `json:"leases"`
}

// Snapshot reads all records in a single read transaction.
func (r *Registry) Snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		TakenAt: r.clock.Now(),
		Assets:  []models.Asset{},
		Leases:  []models.Lease{},
	}

	err := r.store.View(ctx, func(ctx context.Context, tx store.Txn) error {
		var err error
		if snap.Status, err = getStatus(ctx, tx); err != nil {
			return err
		}
		if err := store.ScanRecords(ctx, tx, store.KindAsset, func(a models.Asset) error {
			snap.Assets = append(snap.Assets, a)
			return nil
		}); err != nil {
			return err
		}
		return store.ScanRecords(ctx, tx, store.KindLease, func(l models.Lease) error {
			snap.Leases = append(snap.Leases, l)
			return nil
		})
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
