package proto

import (
	"context"

	"google.golang.org/grpc"
)

// LeaseRegistryClient is the client API of the registry service.
type LeaseRegistryClient interface {
	CreateAsset(ctx context.Context, in *CreateAssetRequest, opts ...grpc.CallOption) (*CreateAssetResponse, error)
	CreateLease(ctx context.Context, in *CreateLeaseRequest, opts ...grpc.CallOption) (*CreateLeaseResponse, error)
	CompleteLease(ctx context.Context, in *LeaseTransitionRequest, opts ...grpc.CallOption) (*LeaseTransitionResponse, error)
	ExpireLease(ctx context.Context, in *LeaseTransitionRequest, opts ...grpc.CallOption) (*LeaseTransitionResponse, error)
	ViewLease(ctx context.Context, in *ViewLeaseRequest, opts ...grpc.CallOption) (*ViewLeaseResponse, error)
	ViewAsset(ctx context.Context, in *ViewAssetRequest, opts ...grpc.CallOption) (*ViewAssetResponse, error)
	ViewAllLeaseStatus(ctx context.Context, in *ViewAllLeaseStatusRequest, opts ...grpc.CallOption) (*ViewAllLeaseStatusResponse, error)
	ListLeases(ctx context.Context, in *ListLeasesRequest, opts ...grpc.CallOption) (*ListLeasesResponse, error)
	ListAssets(ctx context.Context, in *ListAssetsRequest, opts ...grpc.CallOption) (*ListAssetsResponse, error)
	ExportSnapshot(ctx context.Context, in *ExportSnapshotRequest, opts ...grpc.CallOption) (*ExportSnapshotResponse, error)
}

type leaseRegistryClient struct {
	cc grpc.ClientConnInterface
}

func NewLeaseRegistryClient(cc grpc.ClientConnInterface) LeaseRegistryClient {
	return &leaseRegistryClient{cc: cc}
}

// invoke performs a unary call with the JSON content-subtype.
func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *leaseRegistryClient) CreateAsset(ctx context.Context, in *CreateAssetRequest, opts ...grpc.CallOption) (*CreateAssetResponse, error) {
	return invoke[CreateAssetResponse](ctx, c.cc, CreateAssetMethod, in, opts)
}

func (c *leaseRegistryClient) CreateLease(ctx context.Context, in *CreateLeaseRequest, opts ...grpc.CallOption) (*CreateLeaseResponse, error) {
	return invoke[CreateLeaseResponse](ctx, c.cc, CreateLeaseMethod, in, opts)
}

func (c *leaseRegistryClient) CompleteLease(ctx context.Context, in *LeaseTransitionRequest, opts ...grpc.CallOption) (*LeaseTransitionResponse, error) {
	return invoke[LeaseTransitionResponse](ctx, c.cc, CompleteLeaseMethod, in, opts)
}

func (c *leaseRegistryClient) ExpireLease(ctx context.Context, in *LeaseTransitionRequest, opts ...grpc.CallOption) (*LeaseTransitionResponse, error) {
	return invoke[LeaseTransitionResponse](ctx, c.cc, ExpireLeaseMethod, in, opts)
}

func (c *leaseRegistryClient) ViewLease(ctx context.Context, in *ViewLeaseRequest, opts ...grpc.CallOption) (*ViewLeaseResponse, error) {
	return invoke[ViewLeaseResponse](ctx, c.cc, ViewLeaseMethod, in, opts)
}

func (c *leaseRegistryClient) ViewAsset(ctx context.Context, in *ViewAssetRequest, opts ...grpc.CallOption) (*ViewAssetResponse, error) {
	return invoke[ViewAssetResponse](ctx, c.cc, ViewAssetMethod, in, opts)
}

func (c *leaseRegistryClient) ViewAllLeaseStatus(ctx context.Context, in *ViewAllLeaseStatusRequest, opts ...grpc.CallOption) (*ViewAllLeaseStatusResponse, error) {
	return invoke[ViewAllLeaseStatusResponse](ctx, c.cc, ViewAllLeaseStatusMethod, in, opts)
}

func (c *leaseRegistryClient) ListLeases(ctx context.Context, in *ListLeasesRequest, opts ...grpc.CallOption) (*ListLeasesResponse, error) {
	return invoke[ListLeasesResponse](ctx, c.cc, ListLeasesMethod, in, opts)
}

func (c *leaseRegistryClient) ListAssets(ctx context.Context, in *ListAssetsRequest, opts ...grpc.CallOption) (*ListAssetsResponse, error) {
	return invoke[ListAssetsResponse](ctx, c.cc, ListAssetsMethod, in, opts)
}

func (c *leaseRegistryClient) ExportSnapshot(ctx context.Context, in *ExportSnapshotRequest, opts ...grpc.CallOption) (*ExportSnapshotResponse, error) {
	return invoke[ExportSnapshotResponse](ctx, c.cc, ExportSnapshotMethod, in, opts)
}
