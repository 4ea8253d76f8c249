package cli

import (
	"context"
	"fmt"
	"strconv"

	pb "github.com/dmitrijs2005/landlease/internal/proto"
	"github.com/spf13/cobra"
)

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad id %q: %w", s, err)
	}
	return id, nil
}

func (a *App) newAssetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Register and inspect assets",
	}
	cmd.AddCommand(a.newAssetCreateCommand(), a.newAssetGetCommand(), a.newAssetListCommand())
	return cmd
}

func (a *App) newAssetCreateCommand() *cobra.Command {
	var req pb.CreateAssetRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Client) error {
				asset, err := c.CreateAsset(ctx, &req)
				if err != nil {
					return err
				}
				return a.render(asset, assetTable(asset))
			})
		},
	}

	cmd.Flags().Uint64Var(&req.AssetID, "id", 0, "asset ID (positive)")
	cmd.Flags().StringVar(&req.Owner, "owner", "", "asset owner")
	cmd.Flags().StringVar(&req.Type, "type", "", "asset type")
	cmd.Flags().StringVar(&req.Description, "description", "", "free-form description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func (a *App) newAssetGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <asset-id>",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c Client) error {
				asset, err := c.ViewAsset(ctx, id)
				if err != nil {
					return err
				}
				return a.render(asset, assetTable(asset))
			})
		},
	}
}

func (a *App) newAssetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Client) error {
				assets, err := c.ListAssets(ctx)
				if err != nil {
					return err
				}
				return a.render(assets, assetTable(assets...))
			})
		},
	}
}
