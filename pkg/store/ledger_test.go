package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLedgerGetAbsent(t *testing.T) {
	ledger := NewLedger(openTestDB(t))

	day, ok := ledger.Get()
	assert.False(t, ok)
	assert.Empty(t, day)
}

func TestLedgerSetThenGet(t *testing.T) {
	ledger := NewLedger(openTestDB(t))

	require.NoError(t, ledger.Set("2024-03-04"))

	day, ok := ledger.Get()
	assert.True(t, ok)
	assert.Equal(t, "2024-03-04", day)
}

func TestLedgerSetIsIdempotent(t *testing.T) {
	ledger := NewLedger(openTestDB(t))

	require.NoError(t, ledger.Set("2024-03-04"))
	require.NoError(t, ledger.Set("2024-03-04"))

	day, ok := ledger.Get()
	assert.True(t, ok)
	assert.Equal(t, "2024-03-04", day)
}

func TestLedgerKeepsOnlyMostRecentDay(t *testing.T) {
	ledger := NewLedger(openTestDB(t))

	require.NoError(t, ledger.Set("2024-03-04"))
	require.NoError(t, ledger.Set("2024-03-05"))

	day, ok := ledger.Get()
	assert.True(t, ok)
	assert.Equal(t, "2024-03-05", day)
}

func TestLedgerTakenOn(t *testing.T) {
	ledger := NewLedger(openTestDB(t))

	assert.False(t, ledger.TakenOn("2024-03-04"))

	require.NoError(t, ledger.Set("2024-03-04"))
	assert.True(t, ledger.TakenOn("2024-03-04"))
	assert.False(t, ledger.TakenOn("2024-03-05"))
}

func TestDBListByPrefixAndDelete(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SetBytes("asset/v1/a", []byte("1")))
	require.NoError(t, db.SetBytes("asset/v1/b", []byte("2")))
	require.NoError(t, db.SetBytes("asset/v2/a", []byte("3")))

	keys, err := db.ListByPrefix("asset/v1/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"asset/v1/a", "asset/v1/b"}, keys)

	require.NoError(t, db.Delete("asset/v1/a"))
	_, err = db.GetBytes("asset/v1/a")
	assert.True(t, IsErrKeyNotFound(err))
}
