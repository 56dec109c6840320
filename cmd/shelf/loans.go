// Lending commands: borrow, return, loans and reconcile.
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/library"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow <isbn>",
	Short: "Borrow a book as the logged-in user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			if err := lib.Borrow(args[0]); err != nil {
				return err
			}
			return printBook(cmd, lib, args[0], "Borrowed")
		})
	},
}

var returnCmd = &cobra.Command{
	Use:   "return <isbn>",
	Short: "Return a book borrowed by the logged-in user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			if err := lib.Return(args[0]); err != nil {
				return err
			}
			return printBook(cmd, lib, args[0], "Returned")
		})
	},
}

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List active loans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			loans, err := lib.Ledger.ListActive()
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), loans)
			}
			if len(loans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No active loans")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ISBN\tUSER\tDATE")
			for _, l := range loans {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ISBN, l.User, l.Date)
			}
			return tw.Flush()
		})
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute availability from the active loans",
	Long: `Reconcile sets each book's availability from the loan ledger and
reports the books it corrected. Imports can leave the two out of step.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			changed, err := lib.Ledger.Reconcile()
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), changed)
			}
			for _, b := range changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): now %s\n", b.Title, b.ISBN, b.Status())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d book(s) corrected\n", len(changed))
			return nil
		})
	},
}
