package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/landlease/internal/filex"
	"github.com/dmitrijs2005/landlease/internal/netx"
	"github.com/spf13/cobra"
)

func (a *App) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show aggregate lease counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Client) error {
				st, err := c.Status(ctx)
				if err != nil {
					return err
				}
				return a.render(st, statusTable(st))
			})
		},
	}
}

func (a *App) newExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a registry snapshot and print its download link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c Client) error {
				resp, err := c.ExportSnapshot(ctx)
				if err != nil {
					return err
				}

				if out != "" {
					if err := a.download(ctx, resp.URL, out); err != nil {
						return err
					}
				}

				return a.render(resp, func(w io.Writer) {
					fmt.Fprintf(w, "key:\t%s\n", resp.Key)
					fmt.Fprintf(w, "assets:\t%d\n", resp.Assets)
					fmt.Fprintf(w, "leases:\t%d\n", resp.Leases)
					fmt.Fprintf(w, "expires:\t%s\n", resp.ExpiresAt.Format("2006-01-02 15:04:05Z07:00"))
					fmt.Fprintf(w, "url:\t%s\n", resp.URL)
					if out != "" {
						fmt.Fprintf(w, "saved:\t%s\n", out)
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "also download the snapshot to this file")
	return cmd
}

func (a *App) download(ctx context.Context, url, path string) error {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := netx.DownloadPresignedURL(ctx, a.httpClient, url, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
