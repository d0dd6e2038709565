package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/storage"
	"expensetracker/internal/storage/storagetest"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.BlobStore {
		s, err := New(t.TempDir())
		require.NoError(t, err)
		return s
	})
}

func TestPutWritesJSONFileAndNoTempLeftovers(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), "expenses", []byte(`[]`)))

	data, err := os.ReadFile(filepath.Join(dir, "expenses.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "expenses", []byte(`[{"id":7}]`)))

	reopened, err := New(dir)
	require.NoError(t, err)
	got, err := reopened.Get(context.Background(), "expenses")

	require.NoError(t, err)
	assert.Equal(t, `[{"id":7}]`, string(got))
}

func TestCancelledContext(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Put(ctx, "expenses", []byte(`[]`)), context.Canceled)
}
