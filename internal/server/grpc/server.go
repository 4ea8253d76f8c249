// Package grpc exposes the lease registry as the landlease.v1.LeaseRegistry
// gRPC service together with the standard health service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/landlease/internal/logging"
	pb "github.com/dmitrijs2005/landlease/internal/proto"
	"github.com/dmitrijs2005/landlease/internal/server/models"
	"github.com/dmitrijs2005/landlease/internal/server/services"
	"github.com/dmitrijs2005/landlease/internal/server/snapshot"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Registry is the part of *services.Registry served over gRPC.
type Registry interface {
	CreateAsset(ctx context.Context, in services.CreateAssetInput) (models.Asset, error)
	CreateLease(ctx context.Context, in services.CreateLeaseInput) (uint64, error)
	CompleteLease(ctx context.Context, leaseID uint64) (services.Transition, error)
	ExpireLease(ctx context.Context, leaseID uint64) (services.Transition, error)
	ViewLease(ctx context.Context, leaseID uint64) (models.Lease, error)
	ViewAsset(ctx context.Context, assetID uint64) (models.Asset, error)
	ViewAllLeaseStatus(ctx context.Context) (models.LeaseStatus, error)
	ListLeases(ctx context.Context) ([]models.Lease, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)
}

// Exporter uploads registry snapshots.
type Exporter interface {
	Export(ctx context.Context) (snapshot.Result, error)
}

type GRPCServer struct {
	pb.UnimplementedLeaseRegistryServer
	address     string
	registry    Registry
	exporter    Exporter
	logger      logging.Logger
	jwtSecret   []byte
	requireAuth bool
	health      *health.Server
}

// NewGRPCServer builds the server. With requireAuth set, mutating calls
// must carry a valid access token.
func NewGRPCServer(a string, l logging.Logger, reg Registry, exp Exporter, secretKey string, requireAuth bool) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		registry:    reg,
		exporter:    exp,
		jwtSecret:   []byte(secretKey),
		requireAuth: requireAuth,
		health:      health.NewServer(),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.accessTokenInterceptor))

	pb.RegisterLeaseRegistryServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis and stops gracefully when ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
