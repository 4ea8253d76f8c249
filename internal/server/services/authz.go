package services

import "context"

type Action string

const (
	ActionCreateAsset   Action = "create_asset"
	ActionCreateLease   Action = "create_lease"
	ActionCompleteLease Action = "complete_lease"
	ActionExpireLease   Action = "expire_lease"
)

// Resource describes what a mutation touches. Owner is the asset owner for
// asset and lease creation and the lessor for lease transitions.
type Resource struct {
	AssetID uint64
	LeaseID uint64
	Owner   string
	Lessee  string
}

// Authorizer is asked before every mutation and returns an error wrapping
// common.ErrUnauthorized to deny it.
type Authorizer interface {
	Authorize(ctx context.Context, action Action, res Resource) error
}

// AllowAll performs no caller check at all.
type AllowAll struct{}

func (AllowAll) Authorize(context.Context, Action, Resource) error { return nil }

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, action Action, res Resource) error

func (f AuthorizerFunc) Authorize(ctx context.Context, action Action, res Resource) error {
	return f(ctx, action, res)
}
