package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/htn0810/Bill-Sharing/internal/ledger"
)

func newBillsCmd(c *cli) *cobra.Command {
	billsCmd := &cobra.Command{
		Use:   "bills",
		Short: "List, create and complete bills",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all bills, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			bills, err := a.Ledger.ListBills(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tMEMBERS\tCREATED")
			for _, b := range bills {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					b.ID, b.Name, b.Status, strings.Join(b.Members, ", "), a.Formatter.DateTime(b.CreatedAt))
			}
			return w.Flush()
		},
	}

	var (
		name    string
		members []string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new bill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			bill, err := a.Ledger.CreateBill(cmd.Context(), ledger.BillInput{Name: name, Members: members})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created bill %s\n", bill.ID)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Bill name")
	createCmd.Flags().StringSliceVarP(&members, "member", "m", nil, "Member name (repeat or comma-separate)")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("member")

	completeCmd := &cobra.Command{
		Use:   "complete <bill-id>",
		Short: "Mark a bill as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			bill, err := a.Ledger.CompleteBill(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed bill %s at %s\n", bill.ID, a.Formatter.DateTime(*bill.CompletedAt))
			return nil
		},
	}

	billsCmd.AddCommand(listCmd, createCmd, completeCmd)
	return billsCmd
}
