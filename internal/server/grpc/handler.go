package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/landlease/internal/common"
	pb "github.com/dmitrijs2005/landlease/internal/proto"
	"github.com/dmitrijs2005/landlease/internal/server/services"
)

// fail logs unexpected errors and converts err to a status error.
func (s *GRPCServer) fail(ctx context.Context, method string, err error) error {
	st := pb.ToStatus(err)
	if !isExpected(err) {
		s.logger.Error(ctx, "request failed", "method", method, "error", err)
	}
	return st
}

func isExpected(err error) bool {
	for _, e := range []error{
		common.ErrNotFound, common.ErrAssetUnavailable, common.ErrAlreadyExists,
		common.ErrUnauthorized, common.ErrInvalidArgument, common.ErrSnapshotDisabled,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func (s *GRPCServer) CreateAsset(ctx context.Context, req *pb.CreateAssetRequest) (*pb.CreateAssetResponse, error) {
	asset, err := s.registry.CreateAsset(ctx, services.CreateAssetInput{
		ID:          req.AssetID,
		Owner:       req.Owner,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return nil, s.fail(ctx, "CreateAsset", err)
	}
	return &pb.CreateAssetResponse{Asset: asset}, nil
}

func (s *GRPCServer) CreateLease(ctx context.Context, req *pb.CreateLeaseRequest) (*pb.CreateLeaseResponse, error) {
	id, err := s.registry.CreateLease(ctx, services.CreateLeaseInput{
		AssetID:       req.AssetID,
		Owner:         req.Owner,
		Lessee:        req.Lessee,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PaymentAmount: req.PaymentAmount,
	})
	if err != nil {
		return nil, s.fail(ctx, "CreateLease", err)
	}
	return &pb.CreateLeaseResponse{LeaseID: id}, nil
}

func transitionResponse(tr services.Transition) *pb.LeaseTransitionResponse {
	out := &pb.LeaseTransitionResponse{Lease: tr.Lease, Applied: tr.Applied, Outcome: pb.OutcomeApplied}
	if !tr.Applied {
		out.Outcome = pb.OutcomeAlreadyTerminal
	}
	return out
}

func (s *GRPCServer) CompleteLease(ctx context.Context, req *pb.LeaseTransitionRequest) (*pb.LeaseTransitionResponse, error) {
	tr, err := s.registry.CompleteLease(ctx, req.LeaseID)
	if err != nil {
		return nil, s.fail(ctx, "CompleteLease", err)
	}
	return transitionResponse(tr), nil
}

func (s *GRPCServer) ExpireLease(ctx context.Context, req *pb.LeaseTransitionRequest) (*pb.LeaseTransitionResponse, error) {
	tr, err := s.registry.ExpireLease(ctx, req.LeaseID)
	if err != nil {
		return nil, s.fail(ctx, "ExpireLease", err)
	}
	return transitionResponse(tr), nil
}

func (s *GRPCServer) ViewLease(ctx context.Context, req *pb.ViewLeaseRequest) (*pb.ViewLeaseResponse, error) {
	l, err := s.registry.ViewLease(ctx, req.LeaseID)
	if err != nil {
		return nil, s.fail(ctx, "ViewLease", err)
	}
	return &pb.ViewLeaseResponse{Lease: l}, nil
}

func (s *GRPCServer) ViewAsset(ctx context.Context, req *pb.ViewAssetRequest) (*pb.ViewAssetResponse, error) {
	a, err := s.registry.ViewAsset(ctx, req.AssetID)
	if err != nil {
		return nil, s.fail(ctx, "ViewAsset", err)
	}
	return &pb.ViewAssetResponse{Asset: a}, nil
}

func (s *GRPCServer) ViewAllLeaseStatus(ctx context.Context, _ *pb.ViewAllLeaseStatusRequest) (*pb.ViewAllLeaseStatusResponse, error) {
	st, err := s.registry.ViewAllLeaseStatus(ctx)
	if err != nil {
		return nil, s.fail(ctx, "ViewAllLeaseStatus", err)
	}
	return &pb.ViewAllLeaseStatusResponse{Status: st}, nil
}

func (s *GRPCServer) ListLeases(ctx context.Context, _ *pb.ListLeasesRequest) (*pb.ListLeasesResponse, error) {
	leases, err := s.registry.ListLeases(ctx)
	if err != nil {
		return nil, s.fail(ctx, "ListLeases", err)
	}
	return &pb.ListLeasesResponse{Leases: leases}, nil
}

func (s *GRPCServer) ListAssets(ctx context.Context, _ *pb.ListAssetsRequest) (*pb.ListAssetsResponse, error) {
	assets, err := s.registry.ListAssets(ctx)
	if err != nil {
		return nil, s.fail(ctx, "ListAssets", err)
	}
	return &pb.ListAssetsResponse{Assets: assets}, nil
}

func (s *GRPCServer) ExportSnapshot(ctx context.Context, _ *pb.ExportSnapshotRequest) (*pb.ExportSnapshotResponse, error) {
	if s.exporter == nil {
		return nil, s.fail(ctx, "ExportSnapshot", common.ErrSnapshotDisabled)
	}
	res, err := s.exporter.Export(ctx)
	if err != nil {
		return nil, s.fail(ctx, "ExportSnapshot", err)
	}
	return &pb.ExportSnapshotResponse{
		Key:       res.Key,
		URL:       res.URL,
		ExpiresAt: res.ExpiresAt,
		Assets:    res.Assets,
		Leases:    res.Leases,
	}, nil
}
