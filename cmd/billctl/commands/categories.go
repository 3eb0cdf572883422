package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(c *cli) *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the expense category lookup set",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			categories, err := a.Ledger.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, cat := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), cat.Name)
			}
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			cat, err := a.Ledger.AddCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s\n", cat.Name)
			return nil
		},
	}

	categoriesCmd.AddCommand(listCmd, addCmd)
	return categoriesCmd
}
