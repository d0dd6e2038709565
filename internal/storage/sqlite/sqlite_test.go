package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/storage"
	"expensetracker/internal/storage/storagetest"
)

func TestRepositoryContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.BlobStore {
		r, err := New(filepath.Join(t.TempDir(), "ledger.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = r.Close() })
		return r
	})
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	r, err := New(path)
	require.NoError(t, err)
	require.NoError(t, r.Put(context.Background(), "expenses", []byte(`[]`)))
	require.NoError(t, r.Close())

	// second open runs migrations again against an up-to-date schema
	r, err = New(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.Get(context.Background(), "expenses")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
	assert.NoError(t, r.Ping(context.Background()))
}
