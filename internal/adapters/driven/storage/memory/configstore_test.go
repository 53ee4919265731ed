package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Empty(t, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetGetUnset(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("api.key", "original"))
	require.NoError(t, store.Set("api.key", "updated"))

	val, ok := store.Get("api.key")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
	assert.Equal(t, []string{"api.key"}, store.Keys())

	require.NoError(t, store.Unset("api.key"))
	_, ok = store.Get("api.key")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("i", 42))
	require.NoError(t, store.Set("i64", int64(7)))
	require.NoError(t, store.Set("f", 1.5))
	require.NoError(t, store.Set("fs", "2.5"))
	require.NoError(t, store.Set("b", true))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("s"), "text"},
		{"string mismatch", store.GetString("i"), ""},
		{"int", store.GetInt("i"), 42},
		{"int64", store.GetInt("i64"), 7},
		{"int mismatch", store.GetInt("s"), 0},
		{"float", store.GetFloat("f"), 1.5},
		{"float from int", store.GetFloat("i"), 42.0},
		{"float from string", store.GetFloat("fs"), 2.5},
		{"float bad string", store.GetFloat("s"), 0.0},
		{"bool", store.GetBool("b"), true},
		{"bool missing", store.GetBool("missing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("relay.url", "http://localhost:3001")
			_ = store.GetString("relay.url")
		}()
	}
	wg.Wait()

	assert.Equal(t, "http://localhost:3001", store.GetString("relay.url"))
}
