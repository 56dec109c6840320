// Stats command for the shelf CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/library"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog totals and the acting user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			st, err := lib.Stats()
			if err != nil {
				return err
			}
			text := fmt.Sprintf("Total books: %d\nBorrowed:    %d\nUser:        %s",
				st.TotalBooks, st.BorrowedBooks, st.User)
			return printResult(cmd, st, text)
		})
	},
}
