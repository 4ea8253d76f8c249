// Package cli implements leasectl, the command-line client of the lease
// registry.
package cli

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/landlease/internal/client/client"
	"github.com/dmitrijs2005/landlease/internal/client/config"
	pb "github.com/dmitrijs2005/landlease/internal/proto"
	"github.com/dmitrijs2005/landlease/internal/server/models"
	"github.com/spf13/cobra"
)

// Client is the registry API used by the commands.
type Client interface {
	CreateAsset(ctx context.Context, req *pb.CreateAssetRequest) (models.Asset, error)
	ViewAsset(ctx context.Context, assetID uint64) (models.Asset, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)
	CreateLease(ctx context.Context, req *pb.CreateLeaseRequest) (uint64, error)
	ViewLease(ctx context.Context, leaseID uint64) (models.Lease, error)
	ListLeases(ctx context.Context) ([]models.Lease, error)
	CompleteLease(ctx context.Context, leaseID uint64) (*pb.LeaseTransitionResponse, error)
	ExpireLease(ctx context.Context, leaseID uint64) (*pb.LeaseTransitionResponse, error)
	Status(ctx context.Context) (models.LeaseStatus, error)
	ExportSnapshot(ctx context.Context) (*pb.ExportSnapshotResponse, error)
	Close() error
}

type App struct {
	in         io.Reader
	out        io.Writer
	cfg        *config.Config
	dial       func(cfg *config.Config) (Client, error)
	httpClient *http.Client
}

func dialGRPC(cfg *config.Config) (Client, error) {
	return client.New(cfg.ServerEndpointAddr, cfg.AccessToken)
}

// NewRootCommand returns the leasectl command tree talking to a real server.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	return newRootCommand(&App{in: in, out: out, dial: dialGRPC, httpClient: http.DefaultClient})
}

func newRootCommand(a *App) *cobra.Command {
	var (
		configFile string
		server     string
		token      string
		output     string
		timeout    time.Duration
	)

	root := &cobra.Command{
		Use:           "leasectl",
		Short:         "Command-line client for the landlease registry",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(a.out)

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVarP(&server, "server", "a", "", "registry gRPC address (host:port)")
	root.PersistentFlags().StringVar(&token, "token", "", "access token")
	root.PersistentFlags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("server") {
			cfg.ServerEndpointAddr = server
		}
		if flags.Changed("token") {
			cfg.AccessToken = token
		}
		if flags.Changed("output") {
			cfg.Output = output
		}
		if flags.Changed("timeout") {
			cfg.Timeout = timeout
		}
		if _, err := a.format(cfg.Output); err != nil {
			return err
		}
		a.cfg = cfg
		return nil
	}

	root.AddCommand(
		a.newAssetCommand(),
		a.newLeaseCommand(),
		a.newStatusCommand(),
		a.newExportCommand(),
		a.newTokenCommand(),
	)
	return root
}

// withClient dials the server, applies the configured timeout and runs fn.
func (a *App) withClient(cmd *cobra.Command, fn func(ctx context.Context, c Client) error) error {
	c, err := a.dial(a.cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}
	return fn(ctx, c)
}
