package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/htn0810/Bill-Sharing/internal/format"
)

func newSummaryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <bill-id>",
		Short: "Show balances, settlement transfers and spending breakdowns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.Ledger.Summary(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s), %d expenses, total %s\n\n",
				s.Bill.Name, s.Bill.Status, len(s.Expenses), format.Currency(s.GrandTotal))

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "MEMBER\tPAID\tBALANCE\t")
			paid := make(map[string]decimal.Decimal, len(s.Members))
			for _, m := range s.Members {
				paid[m.MemberName] = m.Total
			}
			for _, b := range s.Balances {
				fmt.Fprintf(w, "%s\t%s\t%s\t\n", b.MemberName, format.Currency(paid[b.MemberName]), format.Currency(b.NetBalance))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(out)
			if len(s.Transfers) == 0 {
				fmt.Fprintln(out, "Nothing to settle.")
			}
			for _, t := range s.Transfers {
				fmt.Fprintf(out, "%s -> %s: %s\n", t.From, t.To, format.Currency(t.Amount))
			}

			if len(s.Categories) > 0 {
				fmt.Fprintln(out)
				w = tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
				fmt.Fprintln(w, "CATEGORY\tTOTAL\tSHARE\t")
				for _, ct := range s.Categories {
					fmt.Fprintf(w, "%s\t%s\t%.1f%%\t\n", ct.Category, format.Currency(ct.Total), ct.Percent)
				}
				return w.Flush()
			}
			return nil
		},
	}
}
