// Package storetest provides a conformance suite for types.Backend
// implementations. Each backend package runs it from its own tests.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// BackendFactory returns a new, unattached backend instance.
type BackendFactory func() types.Backend

// ConfigFactory returns the config a test attaches with. Calls within one
// test must return configs addressing the same storage.
type ConfigFactory func(t *testing.T) types.Config

// keys used by the suite; removed before each case so shared databases
// start clean.
var suiteKeys = []string{types.KeyUser, types.KeyBooks, types.KeyBorrowed}

// RunStoreTests runs the conformance suite against a backend.
func RunStoreTests(t *testing.T, name string, newBackend BackendFactory, config ConfigFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("SetGet", func(t *testing.T) {
			testSetGet(t, attach(t, newBackend, config(t)))
		})
		t.Run("MissingKey", func(t *testing.T) {
			testMissingKey(t, attach(t, newBackend, config(t)))
		})
		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, attach(t, newBackend, config(t)))
		})
		t.Run("Remove", func(t *testing.T) {
			testRemove(t, attach(t, newBackend, config(t)))
		})
		t.Run("Commit", func(t *testing.T) {
			testCommit(t, attach(t, newBackend, config(t)))
		})
		t.Run("RejectedCommit", func(t *testing.T) {
			testRejectedCommit(t, attach(t, newBackend, config(t)))
		})
		t.Run("InvalidKey", func(t *testing.T) {
			testInvalidKey(t, attach(t, newBackend, config(t)))
		})
		t.Run("Lifecycle", func(t *testing.T) {
			testLifecycle(t, newBackend, config(t))
		})
		t.Run("Reopen", func(t *testing.T) {
			testReopen(t, newBackend, config(t))
		})
	})
}

// attach returns an attached backend with the suite keys cleared. Detach
// runs at cleanup.
func attach(t *testing.T, newBackend BackendFactory, cfg types.Config) types.Backend {
	t.Helper()
	b := newBackend()
	require.NoError(t, b.Attach(cfg))
	t.Cleanup(func() { b.Detach() })
	for _, k := range suiteKeys {
		require.NoError(t, b.Remove(k))
	}
	return b
}

func testSetGet(t *testing.T, b types.Backend) {
	require.NoError(t, b.Set(types.KeyBooks, `[{"title":"Dune"}]`))

	got, ok, err := b.Get(types.KeyBooks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"title":"Dune"}]`, got)
}

func testMissingKey(t *testing.T, b types.Backend) {
	got, ok, err := b.Get(types.KeyBorrowed)
	require.NoError(t, err, "absent key is not an error")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func testOverwrite(t *testing.T, b types.Backend) {
	require.NoError(t, b.Set(types.KeyUser, "alice"))
	require.NoError(t, b.Set(types.KeyUser, "bob"))

	got, ok, err := b.Get(types.KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bob", got)
}

func testRemove(t *testing.T, b types.Backend) {
	require.NoError(t, b.Set(types.KeyUser, "alice"))
	require.NoError(t, b.Remove(types.KeyUser))

	_, ok, err := b.Get(types.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, b.Remove(types.KeyUser), "removing an absent key succeeds")
}

func testCommit(t *testing.T, b types.Backend) {
	require.NoError(t, b.Set(types.KeyUser, "alice"))

	err := b.Commit([]types.Write{
		{Key: types.KeyBooks, Value: "[1]"},
		{Key: types.KeyBorrowed, Value: "[2]"},
		{Key: types.KeyUser, Remove: true},
	})
	require.NoError(t, err)

	books, ok, err := b.Get(types.KeyBooks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1]", books)

	loans, ok, err := b.Get(types.KeyBorrowed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", loans)

	_, ok, err = b.Get(types.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, b.Commit(nil), "empty commit is a no-op")
}

// testRejectedCommit checks that a commit refused for one bad write
// applies none of its writes.
func testRejectedCommit(t *testing.T, b types.Backend) {
	require.NoError(t, b.Set(types.KeyBooks, "[old]"))

	err := b.Commit([]types.Write{
		{Key: types.KeyBooks, Value: "[new]"},
		{Key: "", Value: "[x]"},
	})
	require.ErrorIs(t, err, types.ErrInvalidKey)

	books, ok, err := b.Get(types.KeyBooks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[old]", books)
}

// RejectFunc makes the backend fail any later attempt to store key.
type RejectFunc func(t *testing.T, key string)

// RunRollbackTest checks that a transactional backend discards every write
// of a commit when a later write fails inside the database. b must be
// attached; reject installs the failure.
func RunRollbackTest(t *testing.T, b types.Backend, reject RejectFunc) {
	t.Helper()
	for _, k := range suiteKeys {
		require.NoError(t, b.Remove(k))
	}
	require.NoError(t, b.Set(types.KeyBooks, "[old]"))
	reject(t, types.KeyBorrowed)

	err := b.Commit([]types.Write{
		{Key: types.KeyBooks, Value: "[new]"},
		{Key: types.KeyBorrowed, Value: "[loan]"},
	})
	require.Error(t, err)

	books, ok, err := b.Get(types.KeyBooks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[old]", books, "first write must roll back")

	_, ok, err = b.Get(types.KeyBorrowed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testInvalidKey(t *testing.T, b types.Backend) {
	assert.ErrorIs(t, b.Set("", "x"), types.ErrInvalidKey)
	_, _, err := b.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidKey)
}

func testLifecycle(t *testing.T, newBackend BackendFactory, cfg types.Config) {
	b := newBackend()

	_, _, err := b.Get(types.KeyBooks)
	assert.ErrorIs(t, err, types.ErrNotAttached, "unattached backend refuses reads")

	require.NoError(t, b.Attach(cfg))
	assert.ErrorIs(t, b.Attach(cfg), types.ErrAlreadyAttached)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "detach is idempotent")

	assert.ErrorIs(t, b.Set(types.KeyBooks, "[]"), types.ErrNotAttached)
}

func testReopen(t *testing.T, newBackend BackendFactory, cfg types.Config) {
	first := newBackend()
	require.NoError(t, first.Attach(cfg))
	require.NoError(t, first.Set(types.KeyUser, "carol"))
	require.NoError(t, first.Detach())

	second := newBackend()
	require.NoError(t, second.Attach(cfg))
	defer second.Detach()

	got, ok, err := second.Get(types.KeyUser)
	require.NoError(t, err)
	assert.True(t, ok, "value survives detach and reattach")
	assert.Equal(t, "carol", got)

	require.NoError(t, second.Remove(types.KeyUser))
}
