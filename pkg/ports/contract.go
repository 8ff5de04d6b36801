package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPageCacheContract runs a suite of tests to verify that a PageCache implementation
// adheres to the defined interface contract.
func RunPageCacheContract(t *testing.T, cache PageCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		err := cache.Set(ctx, key, []byte("<p>hello</p>"))
		require.NoError(t, err, "Set should not return error")

		data, ok, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.True(t, ok)
		assert.Equal(t, "<p>hello</p>", string(data))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, []byte("first")))
		require.NoError(t, cache.Set(ctx, key, []byte("second")))

		data, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", string(data))
	})

	t.Run("Get Missing", func(t *testing.T) {
		data, ok, err := cache.Get(ctx, "missing-"+key)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, []byte("x")))
		require.NoError(t, cache.Delete(ctx, key))

		_, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "key should be gone after Delete")

		assert.NoError(t, cache.Delete(ctx, key), "deleting a missing key is not an error")
	})
}
