package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
	"github.com/htn0810/Bill-Sharing/internal/format"
	"github.com/htn0810/Bill-Sharing/internal/ledger"
)

func newExpensesCmd(c *cli) *cobra.Command {
	expensesCmd := &cobra.Command{
		Use:   "expenses",
		Short: "List and record expenses of a bill",
	}

	listCmd := &cobra.Command{
		Use:   "list <bill-id>",
		Short: "List expenses of a bill by date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			expenses, err := a.Ledger.ListExpenses(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tCATEGORY\tPAID BY\tAMOUNT")
			for _, e := range expenses {
				amount, err := calculator.ParseAmount(e.Amount)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, a.Formatter.CalendarDate(e.Date), e.Description, e.Category, e.PaidBy, format.Currency(amount))
			}
			return w.Flush()
		},
	}

	var in ledger.ExpenseInput
	addCmd := &cobra.Command{
		Use:   "add <bill-id>",
		Short: "Record an expense paid by one member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if in.Date == "" {
				in.Date = time.Now().In(a.Formatter.Location()).Format(time.DateOnly)
			}
			e, err := a.Ledger.AddExpense(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added expense %s\n", e.ID)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&in.Description, "description", "d", "", "What was bought")
	addCmd.Flags().StringVarP(&in.Amount, "amount", "a", "", "Amount in VND, e.g. 120000.5")
	addCmd.Flags().StringVarP(&in.PaidBy, "paid-by", "p", "", "Member who paid")
	addCmd.Flags().StringVarP(&in.Category, "category", "c", "Other", "Expense category")
	addCmd.Flags().StringVar(&in.Date, "date", "", "Expense date as YYYY-MM-DD (default today)")
	addCmd.MarkFlagRequired("description")
	addCmd.MarkFlagRequired("amount")
	addCmd.MarkFlagRequired("paid-by")

	deleteCmd := &cobra.Command{
		Use:   "delete <bill-id> <expense-id>",
		Short: "Delete an expense from an active bill",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Ledger.DeleteExpense(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %s\n", args[1])
			return nil
		},
	}

	expensesCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return expensesCmd
}
