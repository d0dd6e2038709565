// Package storagetest holds the behaviour every storage.BlobStore must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/storage"
)

// Run exercises store against the BlobStore contract. newStore must return a
// fresh, empty store for each call.
func Run(t *testing.T, newStore func(t *testing.T) storage.BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Get(ctx, "expenses")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("put then get returns the value", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "expenses", []byte(`[{"id":1}]`)))
		got, err := s.Get(ctx, "expenses")

		require.NoError(t, err)
		assert.Equal(t, `[{"id":1}]`, string(got))
	})

	t.Run("put replaces the prior value", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "expenses", []byte(`[1,2,3]`)))
		require.NoError(t, s.Put(ctx, "expenses", []byte(`[]`)))
		got, err := s.Get(ctx, "expenses")

		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "a", []byte("1")))
		require.NoError(t, s.Put(ctx, "b", []byte("2")))
		a, err := s.Get(ctx, "a")
		require.NoError(t, err)
		b, err := s.Get(ctx, "b")
		require.NoError(t, err)

		assert.Equal(t, "1", string(a))
		assert.Equal(t, "2", string(b))
	})

	t.Run("delete removes the key and tolerates missing keys", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "expenses", []byte(`[]`)))
		require.NoError(t, s.Delete(ctx, "expenses"))
		_, err := s.Get(ctx, "expenses")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		assert.NoError(t, s.Delete(ctx, "never-written"))
	})

	t.Run("returned bytes are not aliased", func(t *testing.T) {
		s := newStore(t)
		in := []byte("abc")

		require.NoError(t, s.Put(ctx, "k", in))
		in[0] = 'x'
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		got[1] = 'y'
		again, err := s.Get(ctx, "k")
		require.NoError(t, err)

		assert.Equal(t, "abc", string(again))
	})

	t.Run("invalid keys are rejected", func(t *testing.T) {
		s := newStore(t)

		for _, key := range []string{"", "../escape", "a/b"} {
			assert.ErrorIs(t, s.Put(ctx, key, []byte("x")), storage.ErrInvalidKey, "key %q", key)
			_, err := s.Get(ctx, key)
			assert.ErrorIs(t, err, storage.ErrInvalidKey, "key %q", key)
		}
	})
}
