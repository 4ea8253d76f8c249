package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/landlease/internal/server/models"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// format resolves the output format. Empty means table on a terminal and
// json otherwise.
func (a *App) format(name string) (string, error) {
	switch name {
	case formatTable, formatJSON, formatYAML:
		return name, nil
	case "":
		if f, ok := a.out.(*os.File); ok && isTerminal(int(f.Fd())) {
			return formatTable, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q", name)
	}
}

// render writes v in the configured format. table fills a tabwriter for
// the table format.
func (a *App) render(v any, table func(w io.Writer)) error {
	f, err := a.format(a.cfg.Output)
	if err != nil {
		return err
	}

	switch f {
	case formatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

func assetTable(assets ...models.Asset) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintln(w, "ID\tOWNER\tTYPE\tAVAILABLE\tDESCRIPTION")
		for _, a := range assets {
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", a.ID, a.Owner, a.Type, a.IsAvailable, a.Description)
		}
	}
}

func leaseTable(leases ...models.Lease) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintln(w, "ID\tASSET\tOWNER\tLESSEE\tSTART\tEND\tPAYMENT\tSTATE\tCLOSED")
		for _, l := range leases {
			closed := "-"
			if l.ClosedAt != nil {
				closed = l.ClosedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
				l.ID, l.AssetID, l.Owner, l.Lessee, l.StartTime, l.EndTime, l.PaymentAmount, l.State, closed)
		}
	}
}

func statusTable(st models.LeaseStatus) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintln(w, "ACTIVE\tCOMPLETED\tEXPIRED\tTOTAL")
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", st.Active, st.Completed, st.Expired, st.Total)
	}
}
