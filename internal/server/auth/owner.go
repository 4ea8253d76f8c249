package auth

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/dmitrijs2005/landlease/internal/server/services"
)

// OwnerAuthorizer lets only the parties of a record mutate it:
//   - create_asset: the caller must be the new asset's owner
//   - create_lease: the caller must own the asset
//   - complete_lease, expire_lease: the caller must be the lessor or lessee
type OwnerAuthorizer struct{}

func (OwnerAuthorizer) Authorize(ctx context.Context, action services.Action, res services.Resource) error {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return fmt.Errorf("%s: %w: %w", action, common.ErrUnauthorized, common.ErrMissingCaller)
	}

	switch action {
	case services.ActionCreateAsset, services.ActionCreateLease:
		if caller == res.Owner {
			return nil
		}
	case services.ActionCompleteLease, services.ActionExpireLease:
		if caller == res.Owner || caller == res.Lessee {
			return nil
		}
	}

	return fmt.Errorf("%s by %q: %w", action, caller, common.ErrUnauthorized)
}
