// Package client is the gRPC client of the lease registry used by leasectl.
package client

import (
	"context"

	"github.com/dmitrijs2005/landlease/internal/common"
	pb "github.com/dmitrijs2005/landlease/internal/proto"
	"github.com/dmitrijs2005/landlease/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.LeaseRegistryClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return pb.FromStatus(invoker(ctx, method, req, reply, cc, opts...))
}

// New connects lazily to endpointURL. accessToken may be empty; extra
// dial options are appended after the defaults.
func New(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewLeaseRegistryClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) CreateAsset(ctx context.Context, req *pb.CreateAssetRequest) (models.Asset, error) {
	resp, err := s.client.CreateAsset(ctx, req)
	if err != nil {
		return models.Asset{}, err
	}
	return resp.Asset, nil
}

func (s *GRPCClient) ViewAsset(ctx context.Context, assetID uint64) (models.Asset, error) {
	resp, err := s.client.ViewAsset(ctx, &pb.ViewAssetRequest{AssetID: assetID})
	if err != nil {
		return models.Asset{}, err
	}
	return resp.Asset, nil
}

func (s *GRPCClient) ListAssets(ctx context.Context) ([]models.Asset, error) {
	resp, err := s.client.ListAssets(ctx, &pb.ListAssetsRequest{})
	if err != nil {
		return nil, err
	}
	return resp.Assets, nil
}

func (s *GRPCClient) CreateLease(ctx context.Context, req *pb.CreateLeaseRequest) (uint64, error) {
	resp, err := s.client.CreateLease(ctx, req)
	if err != nil {
		return 0, err
	}
	return resp.LeaseID, nil
}

func (s *GRPCClient) ViewLease(ctx context.Context, leaseID uint64) (models.Lease, error) {
	resp, err := s.client.ViewLease(ctx, &pb.ViewLeaseRequest{LeaseID: leaseID})
	if err != nil {
		return models.Lease{}, err
	}
	return resp.Lease, nil
}

func (s *GRPCClient) ListLeases(ctx context.Context) ([]models.Lease, error) {
	resp, err := s.client.ListLeases(ctx, &pb.ListLeasesRequest{})
	if err != nil {
		return nil, err
	}
	return resp.Leases, nil
}

func (s *GRPCClient) CompleteLease(ctx context.Context, leaseID uint64) (*pb.LeaseTransitionResponse, error) {
	return s.client.CompleteLease(ctx, &pb.LeaseTransitionRequest{LeaseID: leaseID})
}

func (s *GRPCClient) ExpireLease(ctx context.Context, leaseID uint64) (*pb.LeaseTransitionResponse, error) {
	return s.client.ExpireLease(ctx, &pb.LeaseTransitionRequest{LeaseID: leaseID})
}

func (s *GRPCClient) Status(ctx context.Context) (models.LeaseStatus, error) {
	resp, err := s.client.ViewAllLeaseStatus(ctx, &pb.ViewAllLeaseStatusRequest{})
	if err != nil {
		return models.LeaseStatus{}, err
	}
	return resp.Status, nil
}

func (s *GRPCClient) ExportSnapshot(ctx context.Context) (*pb.ExportSnapshotResponse, error) {
	return s.client.ExportSnapshot(ctx, &pb.ExportSnapshotRequest{})
}
