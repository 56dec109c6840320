// Shared helpers for shelf CLI commands.
package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/library"
	"github.com/mesh-intelligence/shelf/pkg/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// openLibrary attaches the configured backend and opens a library on it.
// The caller must call the returned close function.
func openLibrary() (*library.Library, func(), error) {
	sc, err := storeConfig()
	if err != nil {
		return nil, nil, err
	}
	backend, err := store.Open(sc)
	if err != nil {
		return nil, nil, fmt.Errorf("attach backend: %w", err)
	}
	closeFn := func() {
		if err := backend.Detach(); err != nil {
			logger.Warn("detach backend", "err", err)
		}
	}

	lib, err := library.Open(backend,
		library.WithLogger(logger),
		library.WithUniqueISBN(cfg.GetBool(cfgKeyUniqueISBN)),
	)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return lib, closeFn, nil
}

// withLibrary runs fn against an open library and closes it afterwards.
func withLibrary(fn func(lib *library.Library) error) error {
	lib, closeFn, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(lib)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printResult writes v as JSON under --json, otherwise the text line.
func printResult(cmd *cobra.Command, v any, text string) error {
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), v)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

// printBook reports the current state of the book with isbn.
func printBook(cmd *cobra.Command, lib *library.Library, isbn, verb string) error {
	book, err := lib.Catalog.Find(isbn)
	if err != nil {
		return err
	}
	return printResult(cmd, book, fmt.Sprintf("%s: %s (%s)", verb, book.Title, book.ISBN))
}

// usageError wraps a command-line mistake for exit code 1.
func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

