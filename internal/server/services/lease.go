package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/dmitrijs2005/landlease/internal/server/models"
	"github.com/dmitrijs2005/landlease/internal/server/store"
)

type CreateLeaseInput struct {
	AssetID       uint64
	Owner         string
	Lessee        string
	StartTime     uint64
	EndTime       uint64
	PaymentAmount uint64
}

// Transition is the outcome of CompleteLease or ExpireLease. Applied is
// false when the lease was already terminal and nothing was written.
type Transition struct {
	Lease   models.Lease
	Applied bool
}

// Err returns common.ErrAlreadyTerminal for a no-op transition.
func (t Transition) Err() error {
	if t.Applied {
		return nil
	}
	return fmt.Errorf("lease %d is %s: %w", t.Lease.ID, t.Lease.State, common.ErrAlreadyTerminal)
}

// CreateLease leases an available asset and returns the new lease ID.
// Lease IDs start at 1 and grow by one per successful call. On any error the
// returned ID is 0 and nothing is written: a missing asset yields
// common.ErrNotFound, a leased one common.ErrAssetUnavailable.
//
// The lessor is always the asset owner. An empty in.Owner defaults to it and
// any other value, like an empty lessee, is common.ErrInvalidArgument.
func (r *Registry) CreateLease(ctx context.Context, in CreateLeaseInput) (uint64, error) {
	var lease models.Lease

	err := r.update(ctx, func(ctx context.Context, tx store.Txn) error {
		if in.Lessee == "" {
			return fmt.Errorf("%w: lessee is required", common.ErrInvalidArgument)
		}

		asset, err := getAsset(ctx, tx, in.AssetID)
		if err != nil {
			return err
		}
		if in.Owner != "" && in.Owner != asset.Owner {
			return fmt.Errorf("%w: lease owner %q is not the owner of asset %d", common.ErrInvalidArgument, in.Owner, asset.ID)
		}

		res := Resource{AssetID: asset.ID, Owner: asset.Owner, Lessee: in.Lessee}
		if err := r.authz.Authorize(ctx, ActionCreateLease, res); err != nil {
			return err
		}

		if !asset.IsAvailable {
			return fmt.Errorf("asset %d: %w", asset.ID, common.ErrAssetUnavailable)
		}

		last, err := getCounter(ctx, tx)
		if err != nil {
			return err
		}
		if last == ^uint64(0) {
			return fmt.Errorf("%w: lease counter exhausted", common.ErrInvariantViolation)
		}

		status, err := getStatus(ctx, tx)
		if err != nil {
			return err
		}

		lease = models.Lease{
			ID:            last + 1,
			AssetID:       asset.ID,
			Owner:         asset.Owner,
			Lessee:        in.Lessee,
			StartTime:     in.StartTime,
			EndTime:       in.EndTime,
			PaymentAmount: in.PaymentAmount,
			IsActive:      true,
			State:         models.LeaseStateActive,
			CreatedAt:     r.clock.Now(),
		}
		status.Opened()
		asset.IsAvailable = false

		if err := store.PutRecord(ctx, tx, store.LeaseKey(lease.ID), lease); err != nil {
			return err
		}
		if err := store.PutRecord(ctx, tx, store.StatusKey, status); err != nil {
			return err
		}
		if err := store.PutRecord(ctx, tx, store.AssetKey(asset.ID), asset); err != nil {
			return err
		}
		return store.PutRecord(ctx, tx, store.CounterKey, lease.ID)
	})
	if err != nil {
		r.log.Warn(ctx, "lease creation rejected", "asset_id", in.AssetID, "lessee", in.Lessee, "error", err)
		return 0, err
	}

	r.log.Info(ctx, "lease created",
		"lease_id", lease.ID,
		"asset_id", lease.AssetID,
		"owner", lease.Owner,
		"lessee", lease.Lessee,
		"start_time", lease.StartTime,
		"end_time", lease.EndTime,
		"payment_amount", lease.PaymentAmount,
	)
	return lease.ID, nil
}

// CompleteLease moves an active lease to completed and frees its asset.
func (r *Registry) CompleteLease(ctx context.Context, leaseID uint64) (Transition, error) {
	return r.closeLease(ctx, leaseID, models.LeaseStateCompleted, ActionCompleteLease)
}

// ExpireLease moves an active lease to expired and frees its asset.
func (r *Registry) ExpireLease(ctx context.Context, leaseID uint64) (Transition, error) {
	return r.closeLease(ctx, leaseID, models.LeaseStateExpired, ActionExpireLease)
}

func (r *Registry) closeLease(ctx context.Context, leaseID uint64, target models.LeaseState, action Action) (Transition, error) {
	var out Transition

	err := r.update(ctx, func(ctx context.Context, tx store.Txn) error {
		lease, err := getLease(ctx, tx, leaseID)
		if err != nil {
			return err
		}

		res := Resource{AssetID: lease.AssetID, LeaseID: lease.ID, Owner: lease.Owner, Lessee: lease.Lessee}
		if err := r.authz.Authorize(ctx, action, res); err != nil {
			return err
		}

		if !lease.IsActive {
			// already terminal: report, write nothing
			out = Transition{Lease: lease, Applied: false}
			return nil
		}

		status, err := getStatus(ctx, tx)
		if err != nil {
			return err
		}
		if err := status.Closed(target); err != nil {
			return fmt.Errorf("%w: %v", common.ErrInvariantViolation, err)
		}
		if err := lease.Close(target, r.clock.Now()); err != nil {
			return fmt.Errorf("%w: %v", common.ErrInvariantViolation, err)
		}

		if err := store.PutRecord(ctx, tx, store.LeaseKey(lease.ID), lease); err != nil {
			return err
		}
		if err := store.PutRecord(ctx, tx, store.StatusKey, status); err != nil {
			return err
		}
		if err := setAvailability(ctx, tx, lease.AssetID, true); err != nil {
			return err
		}

		out = Transition{Lease: lease, Applied: true}
		return nil
	})
	if err != nil {
		r.log.Warn(ctx, "lease transition rejected", "lease_id", leaseID, "target", target, "error", err)
		return Transition{}, err
	}

	if !out.Applied {
		r.log.Info(ctx, "lease already terminal, nothing to do",
			"lease_id", out.Lease.ID, "state", out.Lease.State, "requested", target)
		return out, nil
	}

	r.log.Info(ctx, "lease "+string(target),
		"lease_id", out.Lease.ID, "asset_id", out.Lease.AssetID, "lessee", out.Lease.Lessee)
	return out, nil
}
