package auth

import "context"

type callerKey struct{}

// WithCaller stores the authenticated account in ctx.
func WithCaller(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, callerKey{}, account)
}

// CallerFromContext returns the account set by WithCaller.
func CallerFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(callerKey{}).(string)
	return v, ok && v != ""
}
