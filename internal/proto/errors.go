package proto

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/landlease/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrNotFound, codes.NotFound},
	{common.ErrAssetUnavailable, codes.FailedPrecondition},
	{common.ErrAlreadyExists, codes.AlreadyExists},
	{common.ErrInvariantViolation, codes.DataLoss},
	{common.ErrUnauthorized, codes.PermissionDenied},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrInvalidArgument, codes.InvalidArgument},
	{common.ErrConflict, codes.Aborted},
	{common.ErrSnapshotDisabled, codes.Unavailable},
	{context.Canceled, codes.Canceled},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
}

// ToStatus converts a registry error into a gRPC status error. Errors that
// match no sentinel become codes.Internal without leaking their text.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return status.Error(ec.code, err.Error())
		}
	}
	return status.Error(codes.Internal, "internal error")
}

// FromStatus turns a status error received by a client back into an error
// wrapping the matching sentinel, so callers can use errors.Is.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.OK {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", common.ErrInvalidToken, st.Message())
	case codes.Unavailable:
		// Unavailable also means the server is unreachable
		if strings.Contains(st.Message(), common.ErrSnapshotDisabled.Error()) {
			return fmt.Errorf("%w: %s", common.ErrSnapshotDisabled, st.Message())
		}
		return err
	}
	for _, ec := range errorCodes {
		if ec.code == st.Code() {
			return fmt.Errorf("%w: %s", ec.err, st.Message())
		}
	}
	return err
}
