// Package server wires the configured store, registry and transports
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/landlease/internal/clock"
	"github.com/dmitrijs2005/landlease/internal/logging"
	"github.com/dmitrijs2005/landlease/internal/server/auth"
	"github.com/dmitrijs2005/landlease/internal/server/config"
	"github.com/dmitrijs2005/landlease/internal/server/httpapi"
	"github.com/dmitrijs2005/landlease/internal/server/services"
	"github.com/dmitrijs2005/landlease/internal/server/snapshot"
	"github.com/dmitrijs2005/landlease/internal/server/store"

	gs "github.com/dmitrijs2005/landlease/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	store    store.Store
	registry *services.Registry
	exporter gs.Exporter
}

// NewApp opens the store and builds the registry. Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.New(w, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	st, err := store.Open(ctx, store.Options{
		Driver: c.StoreDriver,
		DSN:    c.StoreDSN,
		Redis: store.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		},
		Logger: logger.With("module", "store"),
	})
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	var authz services.Authorizer = services.AllowAll{}
	if c.AuthMode == config.AuthOwner {
		authz = auth.OwnerAuthorizer{}
	}

	clk := clock.NewSystem()
	reg := services.NewRegistry(st,
		services.WithClock(clk),
		services.WithLogger(logger),
		services.WithAuthorizer(authz),
	)

	app := &App{config: c, logger: logger, store: st, registry: reg}

	if c.S3Bucket != "" {
		client, presigner, err := snapshot.NewS3Clients(ctx, snapshot.S3Config{
			Region:       c.S3Region,
			User:         c.S3User,
			Password:     c.S3Password,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
		})
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		app.exporter = snapshot.NewExporter(reg, client, presigner, c.S3Bucket, clk, logger)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddress, app.logger, app.registry, app.exporter,
		app.config.SecretKey, app.config.AuthMode == config.AuthOwner)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.HTTPAddress, app.logger, app.registry,
		app.config.SecretKey, app.config.AuthMode == config.AuthOwner)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves gRPC and, when configured, the HTTP gateway until ctx is
// done, a signal arrives or one of the servers fails. The store is closed
// on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreDriver, "auth", app.config.AuthMode)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.HTTPAddress != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	return app.store.Close()
}
