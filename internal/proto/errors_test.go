package proto

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("lease 9: %w", common.ErrNotFound), codes.NotFound},
		{fmt.Errorf("asset 1: %w", common.ErrAssetUnavailable), codes.FailedPrecondition},
		{fmt.Errorf("asset 1: %w", common.ErrAlreadyExists), codes.AlreadyExists},
		{fmt.Errorf("%w: digest", common.ErrInvariantViolation), codes.DataLoss},
		{fmt.Errorf("x: %w: %w", common.ErrUnauthorized, common.ErrMissingCaller), codes.PermissionDenied},
		{common.ErrTokenExpired, codes.Unauthenticated},
		{fmt.Errorf("%w: id", common.ErrInvalidArgument), codes.InvalidArgument},
		{fmt.Errorf("%w: redis", common.ErrConflict), codes.Aborted},
		{common.ErrSnapshotDisabled, codes.Unavailable},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("disk on fire"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(ToStatus(tt.err)))
		})
	}

	assert.NoError(t, ToStatus(nil))
	assert.Equal(t, "internal error", status.Convert(ToStatus(errors.New("secret detail"))).Message())

	st := status.Error(codes.ResourceExhausted, "slow down")
	assert.Equal(t, st, ToStatus(st))
}

func TestFromStatus(t *testing.T) {
	for _, sentinel := range []error{
		common.ErrNotFound,
		common.ErrAssetUnavailable,
		common.ErrAlreadyExists,
		common.ErrInvariantViolation,
		common.ErrUnauthorized,
		common.ErrInvalidArgument,
		common.ErrConflict,
		common.ErrSnapshotDisabled,
	} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			got := FromStatus(ToStatus(fmt.Errorf("wrapped: %w", sentinel)))
			assert.ErrorIs(t, got, sentinel)
		})
	}

	assert.ErrorIs(t, FromStatus(status.Error(codes.Unauthenticated, "missing token")), common.ErrInvalidToken)

	unreachable := status.Error(codes.Unavailable, "connection refused")
	assert.Equal(t, unreachable, FromStatus(unreachable))

	plain := errors.New("plain")
	assert.Equal(t, plain, FromStatus(plain))
}
