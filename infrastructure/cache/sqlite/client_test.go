package sqlite

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"textforge-api/core/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_RoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	values := map[string][]byte{
		"format:json:1": []byte(`{"content": "{}"}`),
		"diff:binary":   {0x00, 0x01, 0xFF, 0xFE},
		"tree:unicode":  []byte("café ☕ 日本語"),
		"convert:large": bytes.Repeat([]byte("x"), 1<<20),
	}
	for key, value := range values {
		require.NoError(t, client.Set(ctx, key, value, time.Hour))
	}
	for key, value := range values {
		got, err := client.Get(ctx, key)
		require.NoError(t, err, key)
		assert.True(t, bytes.Equal(value, got), key)
	}
}

func TestClient_Miss(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Get(context.Background(), "absent")
	assert.True(t, errors.Is(err, interfaces.ErrCacheMiss))
}

func TestClient_Expiry(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "short", []byte("v"), 10*time.Millisecond))
	require.NoError(t, client.Set(ctx, "forever", []byte("v"), 0))
	time.Sleep(30 * time.Millisecond)

	_, err := client.Get(ctx, "short")
	assert.True(t, errors.Is(err, interfaces.ErrCacheMiss))

	got, err := client.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	removed, err := client.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats["total_entries"])
	assert.Equal(t, 0, stats["expired_entries"])
}

func TestClient_DeleteAndClear(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, client.Set(ctx, "b", []byte("2"), time.Hour))

	require.NoError(t, client.Delete(ctx, "a"))
	_, err := client.Get(ctx, "a")
	assert.Error(t, err)

	require.NoError(t, client.Clear(ctx))
	_, err = client.Get(ctx, "b")
	assert.Error(t, err)
}

func TestClient_InjectionLookingKeysAreData(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := "'; DROP TABLE cache; --"
	require.NoError(t, client.Set(ctx, key, []byte("safe"), time.Hour))
	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "safe", string(got))
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("format:abc"))
	assert.Error(t, ValidateKey(""))
	assert.Error(t, ValidateKey(strings.Repeat("k", maxKeyLength+1)))
	assert.Error(t, ValidateKey("a\x00b"))
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue([]byte("x")))
	assert.Error(t, ValidateValue(nil))
	assert.Error(t, ValidateValue(make([]byte, MaxValueBytes+1)))
}

func TestClient_RejectsInvalidInput(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.Error(t, client.Set(ctx, "", []byte("v"), 0))
	assert.Error(t, client.Set(ctx, "k", nil, 0))
	_, err := client.Get(ctx, "")
	assert.Error(t, err)
	assert.Error(t, client.Delete(ctx, ""))
}
