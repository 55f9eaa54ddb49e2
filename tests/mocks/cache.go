package mocks

import (
	"context"
	"encoding/json"
	"sync"

	processoDomain "github.com/docgo/processos-console/internal/processo/domain"
	sharedCache "github.com/docgo/processos-console/internal/shared/infra/platform/cache"
)

// DummyCache é um armazém chave-valor em memória para os testes, seguro para
// concorrência. Guarda qualquer valor serializável em JSON.
type DummyCache struct {
	store map[string][]byte // bytes (JSON), não um tipo concreto
	mu    sync.RWMutex
}

// Verificação estática contra os dois contratos.
var _ sharedCache.Cache = (*DummyCache)(nil)
var _ processoDomain.KeyValueStore = (*DummyCache)(nil)

func NewDummyCache() *DummyCache {
	return &DummyCache{
		store: make(map[string][]byte),
	}
}

func (c *DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.store[key]
	if !ok {
		return false, nil // miss
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil // hit
}

func (c *DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	c.store[key] = data
	return nil
}

func (c *DummyCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// Tem informa se a chave está presente, sem deserializar.
func (c *DummyCache) Tem(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.store[key]
	return ok
}
