// Package cli adds operator commands to the PocketBase root command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"orcamentos/collections"
	"orcamentos/services"
)

// NewQuoteCommand prints the valuation of one stored budget as the given
// tier would see it. The privileged tier is the default.
func NewQuoteCommand(app core.App) *cobra.Command {
	var (
		tier       int
		commission float64
	)

	cmd := &cobra.Command{
		Use:   "quote <budget-id>",
		Short: "Print the valuation of a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collections.Setup(app)

			b, catalog, err := services.LoadBudget(app, args[0])
			if err != nil {
				if errors.Is(err, services.ErrBudgetNotFound) {
					return fmt.Errorf("budget %q not found", args[0])
				}
				return err
			}

			s := services.Session{Tier: tier, Commission: commission}
			v := services.Valuate(b, catalog, s)
			return writeQuote(cmd.OutOrStdout(), services.BuildExportData(v, services.VariantFull, "", ""))
		},
	}

	cmd.Flags().IntVar(&tier, "pv", services.PrivilegedTier, "pv tier of the viewer")
	cmd.Flags().Float64Var(&commission, "commission", 0, "session commission as a fraction, used by standard tiers")
	return cmd
}

func writeQuote(out io.Writer, data services.ExportData) error {
	fmt.Fprintf(out, "%s  %s\n\n", data.Title, data.CustomerName)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	if data.Full {
		fmt.Fprintln(tw, "#\tFunção\tQtd.\tUnidade\tDedicação\tCusto base\tMargem\tTotal\t")
	} else {
		fmt.Fprintln(tw, "#\tFunção\tQtd.\tUnidade\tDedicação\tTotal\t")
	}
	for _, r := range data.Rows {
		if data.Full {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				r.Index, r.Function, services.FormatAmount(r.Amount), r.UnitLabel,
				services.FormatPercent(r.Dedication), services.FormatBRL(r.UnitCost),
				services.FormatPercent(r.ProfitMargin), services.FormatBRL(r.Total))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Index, r.Function, services.FormatAmount(r.Amount), r.UnitLabel,
			services.FormatPercent(r.Dedication), services.FormatBRL(r.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, l := range services.SummaryLines(data) {
		fmt.Fprintf(tw, "%s\t%s\t\n", l.Label, services.FormatBRL(l.Value))
	}
	return tw.Flush()
}
