// Package httpapi is the HTTP/JSON gateway of the lease registry.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/landlease/internal/logging"
	"github.com/dmitrijs2005/landlease/internal/server/models"
	"github.com/dmitrijs2005/landlease/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Registry is the part of *services.Registry served over HTTP.
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

type Server struct {
	Router      *chi.Mux
	address     string
	registry    Registry
	logger      logging.Logger
	jwtSecret   []byte
	requireAuth bool
}

func NewServer(address string, l logging.Logger, reg Registry, secretKey string, requireAuth bool) *Server {
	s := &Server{
		Router:      chi.NewRouter(),
		address:     address,
		registry:    reg,
		logger:      l.With("module", "http_server"),
		jwtSecret:   []byte(secretKey),
		requireAuth: requireAuth,
	}
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) initRoutes() {
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(s.requestLogger)
	s.Router.Use(s.accessToken)

	s.Router.Get("/health", s.health)

	s.Router.Route("/api/assets", func(r chi.Router) {
		r.Get("/", s.listAssets)
		r.Post("/", s.createAsset)
		r.Get("/{id}", s.viewAsset)
	})

	s.Router.Route("/api/leases", func(r chi.Router) {
		r.Get("/", s.listLeases)
		r.Post("/", s.createLease)
		r.Get("/{id}", s.viewLease)
		r.Post("/{id}/complete", s.completeLease)
		r.Post("/{id}/expire", s.expireLease)
	})

	s.Router.Get("/api/status", s.viewStatus)
}

// Run serves on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	httpServer := &http.Server{
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
