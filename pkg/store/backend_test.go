package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestNewBackend(t *testing.T) {
	for _, name := range []string{types.BackendSQLite, types.BackendFiles, types.BackendPostgres} {
		b, err := NewBackend(name)
		require.NoError(t, err, name)
		assert.NotNil(t, b, name)
	}

	_, err := NewBackend("")
	assert.ErrorIs(t, err, types.ErrBackendEmpty)

	_, err = NewBackend("redis")
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestOpenAttaches(t *testing.T) {
	b, err := Open(types.Config{Backend: types.BackendFiles, DataDir: t.TempDir()})
	require.NoError(t, err)
	defer b.Detach()

	require.NoError(t, b.Set(types.KeyUser, "alice"))
	got, ok, err := b.Get(types.KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", got)
}
