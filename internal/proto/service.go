package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "landlease.v1.LeaseRegistry"

// Full method names.
const (
	CreateAssetMethod        = "/" + ServiceName + "/CreateAsset"
	CreateLeaseMethod        = "/" + ServiceName + "/CreateLease"
	CompleteLeaseMethod      = "/" + ServiceName + "/CompleteLease"
	ExpireLeaseMethod        = "/" + ServiceName + "/ExpireLease"
	ViewLeaseMethod          = "/" + ServiceName + "/ViewLease"
	ViewAssetMethod          = "/" + ServiceName + "/ViewAsset"
	ViewAllLeaseStatusMethod = "/" + ServiceName + "/ViewAllLeaseStatus"
	ListLeasesMethod         = "/" + ServiceName + "/ListLeases"
	ListAssetsMethod         = "/" + ServiceName + "/ListAssets"
	ExportSnapshotMethod     = "/" + ServiceName + "/ExportSnapshot"
)

// MutatingMethods are the methods that change registry state.
var MutatingMethods = map[string]struct{}{
	CreateAssetMethod:   {},
	CreateLeaseMethod:   {},
	CompleteLeaseMethod: {},
	ExpireLeaseMethod:   {},
}

// LeaseRegistryServer is implemented by the registry gRPC server.
type LeaseRegistryServer interface {
	CreateAsset(context.Context, *CreateAssetRequest) (*CreateAssetResponse, error)
	CreateLease(context.Context, *CreateLeaseRequest) (*CreateLeaseResponse, error)
	CompleteLease(context.Context, *LeaseTransitionRequest) (*LeaseTransitionResponse, error)
	ExpireLease(context.Context, *LeaseTransitionRequest) (*LeaseTransitionResponse, error)
	ViewLease(context.Context, *ViewLeaseRequest) (*ViewLeaseResponse, error)
	ViewAsset(context.Context, *ViewAssetRequest) (*ViewAssetResponse, error)
	ViewAllLeaseStatus(context.Context, *ViewAllLeaseStatusRequest) (*ViewAllLeaseStatusResponse, error)
	ListLeases(context.Context, *ListLeasesRequest) (*ListLeasesResponse, error)
	ListAssets(context.Context, *ListAssetsRequest) (*ListAssetsResponse, error)
	ExportSnapshot(context.Context, *ExportSnapshotRequest) (*ExportSnapshotResponse, error)
}

// UnimplementedLeaseRegistryServer can be embedded for forward compatibility.
type UnimplementedLeaseRegistryServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedLeaseRegistryServer) CreateAsset(context.Context, *CreateAssetRequest) (*CreateAssetResponse, error) {
	return nil, unimplemented("CreateAsset")
}
func (UnimplementedLeaseRegistryServer) CreateLease(context.Context, *CreateLeaseRequest) (*CreateLeaseResponse, error) {
	return nil, unimplemented("CreateLease")
}
func (UnimplementedLeaseRegistryServer) CompleteLease(context.Context, *LeaseTransitionRequest) (*LeaseTransitionResponse, error) {
	return nil, unimplemented("CompleteLease")
}
func (UnimplementedLeaseRegistryServer) ExpireLease(context.Context, *LeaseTransitionRequest) (*LeaseTransitionResponse, error) {
	return nil, unimplemented("ExpireLease")
}
func (UnimplementedLeaseRegistryServer) ViewLease(context.Context, *ViewLeaseRequest) (*ViewLeaseResponse, error) {
	return nil, unimplemented("ViewLease")
}
func (UnimplementedLeaseRegistryServer) ViewAsset(context.Context, *ViewAssetRequest) (*ViewAssetResponse, error) {
	return nil, unimplemented("ViewAsset")
}
func (UnimplementedLeaseRegistryServer) ViewAllLeaseStatus(context.Context, *ViewAllLeaseStatusRequest) (*ViewAllLeaseStatusResponse, error) {
	return nil, unimplemented("ViewAllLeaseStatus")
}
func (UnimplementedLeaseRegistryServer) ListLeases(context.Context, *ListLeasesRequest) (*ListLeasesResponse, error) {
	return nil, unimplemented("ListLeases")
}
func (UnimplementedLeaseRegistryServer) ListAssets(context.Context, *ListAssetsRequest) (*ListAssetsResponse, error) {
	return nil, unimplemented("ListAssets")
}
func (UnimplementedLeaseRegistryServer) ExportSnapshot(context.Context, *ExportSnapshotRequest) (*ExportSnapshotResponse, error) {
	return nil, unimplemented("ExportSnapshot")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(LeaseRegistryServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LeaseRegistryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LeaseRegistryServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LeaseRegistryServiceDesc describes the service for grpc.Server.RegisterService.
var LeaseRegistryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LeaseRegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateAsset", Handler: unaryHandler(CreateAssetMethod, LeaseRegistryServer.CreateAsset)},
		{MethodName: "CreateLease", Handler: unaryHandler(CreateLeaseMethod, LeaseRegistryServer.CreateLease)},
		{MethodName: "CompleteLease", Handler: unaryHandler(CompleteLeaseMethod, LeaseRegistryServer.CompleteLease)},
		{MethodName: "ExpireLease", Handler: unaryHandler(ExpireLeaseMethod, LeaseRegistryServer.ExpireLease)},
		{MethodName: "ViewLease", Handler: unaryHandler(ViewLeaseMethod, LeaseRegistryServer.ViewLease)},
		{MethodName: "ViewAsset", Handler: unaryHandler(ViewAssetMethod, LeaseRegistryServer.ViewAsset)},
		{MethodName: "ViewAllLeaseStatus", Handler: unaryHandler(ViewAllLeaseStatusMethod, LeaseRegistryServer.ViewAllLeaseStatus)},
		{MethodName: "ListLeases", Handler: unaryHandler(ListLeasesMethod, LeaseRegistryServer.ListLeases)},
		{MethodName: "ListAssets", Handler: unaryHandler(ListAssetsMethod, LeaseRegistryServer.ListAssets)},
		{MethodName: "ExportSnapshot", Handler: unaryHandler(ExportSnapshotMethod, LeaseRegistryServer.ExportSnapshot)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "landlease/v1/lease_registry",
}

func RegisterLeaseRegistryServer(s grpc.ServiceRegistrar, srv LeaseRegistryServer) {
	s.RegisterService(&LeaseRegistryServiceDesc, srv)
}
