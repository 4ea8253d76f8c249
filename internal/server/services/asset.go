package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/dmitrijs2005/landlease/internal/server/models"
	"github.com/dmitrijs2005/landlease/internal/server/store"
)

type CreateAssetInput struct {
	ID          uint64
	Owner       string
	Type        string
	Description string
}

// CreateAsset registers a new, available asset. Asset IDs are assigned by
// the caller; 0 is reserved and an existing ID is rejected with
// common.ErrAlreadyExists.
func (r *Registry) CreateAsset(ctx context.Context, in CreateAssetInput) (models.Asset, error) {
	if in.ID == 0 {
		return models.Asset{}, fmt.Errorf("%w: asset id must be positive", common.ErrInvalidArgument)
	}
	if in.Owner == "" {
		return models.Asset{}, fmt.Errorf("%w: asset owner is required", common.ErrInvalidArgument)
	}

	res := Resource{AssetID: in.ID, Owner: in.Owner}
	if err := r.authz.Authorize(ctx, ActionCreateAsset, res); err != nil {
		return models.Asset{}, err
	}

	asset := models.Asset{
		ID:           in.ID,
		Owner:        in.Owner,
		Type:         in.Type,
		Description:  in.Description,
		IsAvailable:  true,
		RegisteredAt: r.clock.Now(),
	}

	err := r.update(ctx, func(ctx context.Context, tx store.Txn) error {
		_, err := getAsset(ctx, tx, in.ID)
		switch {
		case err == nil:
			return fmt.Errorf("asset %d: %w", in.ID, common.ErrAlreadyExists)
		case !errors.Is(err, common.ErrNotFound):
			return err
		}
		return store.PutRecord(ctx, tx, store.AssetKey(in.ID), asset)
	})
	if err != nil {
		r.log.Warn(ctx, "asset registration rejected", "asset_id", in.ID, "error", err)
		return models.Asset{}, err
	}

	r.log.Info(ctx, "asset registered", "asset_id", asset.ID, "owner", asset.Owner, "type", asset.Type)
	return asset, nil
}

// setAvailability flips the availability flag of an existing asset inside
// the caller's transaction.
func setAvailability(ctx context.Context, tx store.Txn, assetID uint64, available bool) error {
	asset, err := getAsset(ctx, tx, assetID)
	if err != nil {
		return err
	}
	asset.IsAvailable = available
	return store.PutRecord(ctx, tx, store.AssetKey(assetID), asset)
}
