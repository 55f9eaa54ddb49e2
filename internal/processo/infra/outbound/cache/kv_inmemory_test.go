package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryStore_SetGetDelete(t *testing.T) {
	store := NewInMemoryStore(time.Minute, time.Minute)
	defer store.Stop()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "chave", map[string]int{"a": 1}, 0))

	var lido map[string]int
	ok, err := store.Get(ctx, "chave", &lido)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, lido["a"])

	assert.NoError(t, store.Delete(ctx, "chave"))
	ok, err = store.Get(ctx, "chave", &lido)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryStore_TTLExpira(t *testing.T) {
	store := NewInMemoryStore(10*time.Millisecond, time.Minute)
	defer store.Stop()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "curta", "x", 0)) // usa o TTL padrão

	var dest string
	ok, _ := store.Get(ctx, "curta", &dest)
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	ok, err := store.Get(ctx, "curta", &dest)
	assert.NoError(t, err)
	assert.False(t, ok, "chave expirada é tratada como miss")
}

func TestInMemoryStore_TTLExplicitoVenceOPadrao(t *testing.T) {
	store := NewInMemoryStore(10*time.Millisecond, time.Minute)
	defer store.Stop()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "longa", "x", 60))

	time.Sleep(30 * time.Millisecond)
	var dest string
	ok, err := store.Get(ctx, "longa", &dest)
	assert.NoError(t, err)
	assert.True(t, ok)
}
