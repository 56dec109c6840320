// Catalog commands: add, list and delete-all.
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/library"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

var (
	addTitle  string
	addAuthor string
	addISBN   string
	addGenre  string

	listSearch string

	deleteAllYes bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Long: `Add appends an available book to the catalog.

Example:
  shelf add --title Dune --author "Frank Herbert" --isbn 9780441013593 --genre SF`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := types.BookInput{Title: addTitle, Author: addAuthor, ISBN: addISBN, Genre: addGenre}
		return withLibrary(func(lib *library.Library) error {
			if err := lib.Catalog.Add(in); err != nil {
				return err
			}
			book := in.Book(true)
			return printResult(cmd, book, fmt.Sprintf("Added: %s (%s)", book.Title, book.ISBN))
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List books, optionally filtered",
	Long: `List prints the catalog in insertion order.

--search keeps books whose title or author contains the query ignoring
case, or whose ISBN contains it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			books, err := lib.Catalog.Search(listSearch)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), books)
			}
			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No books found")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TITLE\tAUTHOR\tISBN\tGENRE\tSTATUS")
			for _, b := range books {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.Title, b.Author, b.ISBN, b.Genre, b.Status())
			}
			return tw.Flush()
		})
	},
}

var deleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every book and loan",
	Long:  `Delete-all empties the catalog and the loan ledger. It cannot be undone and requires --yes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deleteAllYes {
			return usageError("delete-all is irreversible; pass --yes to confirm")
		}
		return withLibrary(func(lib *library.Library) error {
			if err := lib.Catalog.DeleteAll(); err != nil {
				return err
			}
			return printResult(cmd, map[string]bool{"deleted": true}, "All books deleted")
		})
	},
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "book title (required)")
	addCmd.Flags().StringVar(&addAuthor, "author", "", "book author (required)")
	addCmd.Flags().StringVar(&addISBN, "isbn", "", "book ISBN (required)")
	addCmd.Flags().StringVar(&addGenre, "genre", "", "book genre")

	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter by title, author or ISBN")

	deleteAllCmd.Flags().BoolVar(&deleteAllYes, "yes", false, "confirm deletion")
}
