package kvsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestPlanExpandsWrites(t *testing.T) {
	s := New(DialectSQLite, "kv")

	stmts, err := s.Plan([]types.Write{
		{Key: types.KeyBooks, Value: "[]"},
		{Key: types.KeyBorrowed, Remove: true},
	})
	require.NoError(t, err)
	require.Len(t, stmts, 3, "set is delete+insert, remove is delete only")

	assert.Contains(t, stmts[0].SQL, "DELETE")
	assert.Equal(t, []any{types.KeyBooks}, stmts[0].Args)
	assert.Contains(t, stmts[1].SQL, "INSERT")
	assert.ElementsMatch(t, []any{types.KeyBooks, "[]"}, stmts[1].Args)
	assert.Contains(t, stmts[2].SQL, "DELETE")
	assert.Equal(t, []any{types.KeyBorrowed}, stmts[2].Args)
}

func TestPlanRejectsEmptyKey(t *testing.T) {
	_, err := New(DialectSQLite, "kv").Plan([]types.Write{{Key: "", Value: "x"}})
	assert.ErrorIs(t, err, types.ErrInvalidKey)
}

func TestPlaceholdersFollowDialect(t *testing.T) {
	lite, err := New(DialectSQLite, "kv").SelectValue("books")
	require.NoError(t, err)
	assert.Contains(t, lite.SQL, "?")

	pg, err := New(DialectPostgres, "shelf_kv").SelectValue("books")
	require.NoError(t, err)
	assert.Contains(t, pg.SQL, "$1")
	assert.Equal(t, []any{"books"}, pg.Args)
}

func TestCreateTableNamesTable(t *testing.T) {
	assert.Contains(t, New(DialectPostgres, "shelf_kv").CreateTable(), "CREATE TABLE IF NOT EXISTS shelf_kv")
}
