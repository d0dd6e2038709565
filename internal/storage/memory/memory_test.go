package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/storage"
	"expensetracker/internal/storage/storagetest"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.BlobStore { return New() })
}

func TestNewWithSeed(t *testing.T) {
	seed := map[string][]byte{"expenses": []byte(`[]`)}
	s := NewWithSeed(seed)
	seed["expenses"][0] = '{'

	got, err := s.Get(context.Background(), "expenses")

	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}
