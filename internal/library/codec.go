package library

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// load decodes the JSON array stored under key. An absent or empty key
// yields an empty, non-nil slice.
func load[T any](store types.Store, key string) ([]T, error) {
	raw, ok, err := store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	items := []T{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.UnmarshalFromString(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// encode renders items as a write of the full collection under key.
func encode[T any](key string, items []T) (types.Write, error) {
	if items == nil {
		items = []T{}
	}
	s, err := json.MarshalToString(items)
	if err != nil {
		return types.Write{}, fmt.Errorf("encoding %s: %w", key, err)
	}
	return types.Write{Key: key, Value: s}, nil
}

// commitBooksAndLoans writes both collections in one Store.Commit.
func commitBooksAndLoans(store types.Store, books []types.Book, loans []types.Loan) error {
	bw, err := encode(types.KeyBooks, books)
	if err != nil {
		return err
	}
	lw, err := encode(types.KeyBorrowed, loans)
	if err != nil {
		return err
	}
	if err := store.Commit([]types.Write{bw, lw}); err != nil {
		return fmt.Errorf("committing books and loans: %w", err)
	}
	return nil
}
