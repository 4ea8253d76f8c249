package cli

import (
	"context"
	"fmt"
	"io"

	pb "github.com/dmitrijs2005/landlease/internal/proto"
	"github.com/spf13/cobra"
)

func (a *App) newLeaseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lease",
		Short: "Create, inspect and close leases",
	}
	cmd.AddCommand(
		a.newLeaseCreateCommand(),
		a.newLeaseGetCommand(),
		a.newLeaseListCommand(),
		a.newLeaseTransitionCommand("complete", "Mark a lease completed", Client.CompleteLease),
		a.newLeaseTransitionCommand("expire", "Mark a lease expired", Client.ExpireLease),
	)
	return cmd
}

type createdLease struct {
	LeaseID uint64 `json:"lease_id" yaml:"lease_id"`
}

func (a *App) newLeaseCreateCommand() *cobra.Command {
	var req pb.CreateLeaseRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Lease an available asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Client) error {
				id, err := c.CreateLease(ctx, &req)
				if err != nil {
					return err
				}
				return a.render(createdLease{LeaseID: id}, func(w io.Writer) {
					fmt.Fprintf(w, "lease %d created\n", id)
				})
			})
		},
	}

	cmd.Flags().Uint64Var(&req.AssetID, "asset", 0, "asset ID")
	cmd.Flags().StringVar(&req.Owner, "owner", "", "lessor (defaults to asset owner)")
	cmd.Flags().StringVar(&req.Lessee, "lessee", "", "lessee")
	cmd.Flags().Uint64Var(&req.StartTime, "start", 0, "start time")
	cmd.Flags().Uint64Var(&req.EndTime, "end", 0, "end time")
	cmd.Flags().Uint64Var(&req.PaymentAmount, "payment", 0, "payment amount")
	_ = cmd.MarkFlagRequired("asset")
	_ = cmd.MarkFlagRequired("lessee")

	return cmd
}

func (a *App) newLeaseGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <lease-id>",
		Short: "Show one lease",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c Client) error {
				lease, err := c.ViewLease(ctx, id)
				if err != nil {
					return err
				}
				return a.render(lease, leaseTable(lease))
			})
		},
	}
}

func (a *App) newLeaseListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all leases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Client) error {
				leases, err := c.ListLeases(ctx)
				if err != nil {
					return err
				}
				return a.render(leases, leaseTable(leases...))
			})
		},
	}
}

type transitionFunc func(c Client, ctx context.Context, leaseID uint64) (*pb.LeaseTransitionResponse, error)

func (a *App) newLeaseTransitionCommand(use, short string, apply transitionFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <lease-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c Client) error {
				resp, err := apply(c, ctx, id)
				if err != nil {
					return err
				}
				return a.render(resp, func(w io.Writer) {
					if resp.Applied {
						fmt.Fprintf(w, "lease %d %s\n", id, resp.Lease.State)
					} else {
						fmt.Fprintf(w, "lease %d already %s, nothing to do\n", id, resp.Lease.State)
					}
				})
			})
		},
	}
}
