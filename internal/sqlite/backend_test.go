package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/storetest"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestBackend(t *testing.T) {
	storetest.RunStoreTests(t, "SQLite",
		func() types.Backend { return NewBackend() },
		func(t *testing.T) types.Config {
			return types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
		},
	)
}

func TestAttachCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(dataDir, dbFileName))
	assert.NoError(t, err, "database file should be created")
}

func TestAttachValidatesConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendEmpty)
}

func TestCommitRollsBack(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer b.Detach()

	storetest.RunRollbackTest(t, b, func(t *testing.T, key string) {
		_, err := b.db.Exec(fmt.Sprintf(
			`CREATE TRIGGER reject_key BEFORE INSERT ON %s WHEN NEW.blob_key = '%s' BEGIN SELECT RAISE(ABORT, 'rejected'); END`,
			tableName, key))
		require.NoError(t, err)
	})
}
