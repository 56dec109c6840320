package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/storetest"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// envTestDSN names a disposable database; the suite is skipped without it.
const envTestDSN = "SHELF_TEST_POSTGRES_DSN"

func TestBackend(t *testing.T) {
	dsn := os.Getenv(envTestDSN)
	if dsn == "" {
		t.Skipf("%s not set", envTestDSN)
	}

	storetest.RunStoreTests(t, "Postgres",
		func() types.Backend { return NewBackend() },
		func(t *testing.T) types.Config {
			return types.Config{Backend: types.BackendPostgres, PostgresDSN: dsn}
		},
	)
}

func TestCommitRollsBack(t *testing.T) {
	dsn := os.Getenv(envTestDSN)
	if dsn == "" {
		t.Skipf("%s not set", envTestDSN)
	}

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendPostgres, PostgresDSN: dsn}))
	t.Cleanup(func() { b.Detach() })

	storetest.RunRollbackTest(t, b, func(t *testing.T, key string) {
		ctx := context.Background()
		_, err := b.pool.Exec(ctx, `CREATE OR REPLACE FUNCTION shelf_reject_key() RETURNS trigger
			AS $$ BEGIN RAISE EXCEPTION 'rejected'; END; $$ LANGUAGE plpgsql`)
		require.NoError(t, err)
		_, err = b.pool.Exec(ctx, fmt.Sprintf(
			`CREATE TRIGGER shelf_reject_key BEFORE INSERT ON %s FOR EACH ROW
			WHEN (NEW.blob_key = '%s') EXECUTE FUNCTION shelf_reject_key()`, tableName, key))
		require.NoError(t, err)
		t.Cleanup(func() {
			b.pool.Exec(context.Background(), fmt.Sprintf(`DROP TRIGGER IF EXISTS shelf_reject_key ON %s`, tableName))
		})
	})
}

func TestAttachRequiresDSN(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendPostgres}), types.ErrDSNEmpty)
}

func TestUnattachedBackendRefusesWork(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Set(types.KeyUser, "alice"), types.ErrNotAttached)
	assert.NoError(t, b.Detach())
}
