package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/docgo/processos-console/internal/processo/domain"
	sharedCache "github.com/docgo/processos-console/internal/shared/infra/platform/cache"
)

// slot guarda o valor serializado e o instante de expiração.
type slot struct {
	value     []byte // bytes para simular a serialização, igual ao Redis
	expiresAt time.Time
}

// InMemoryStore implementa o armazém chave-valor com um mapa em memória. É o
// último degrau da cadeia de fallback: sem Redis e sem SQLite, o console
// ainda funciona, apenas sem persistência entre execuções.
type InMemoryStore struct {
	store      map[string]slot
	mu         sync.RWMutex
	defaultTTL time.Duration
	stopChan   chan struct{}
}

// Verificação estática: o adapter serve tanto ao port do contexto quanto ao
// contrato genérico compartilhado.
var _ domain.KeyValueStore = (*InMemoryStore)(nil)
var _ sharedCache.Cache = (*InMemoryStore)(nil)

// NewInMemoryStore cria o armazém em memória.
// - defaultTTL: tempo de vida das chaves quando o Set não especifica outro.
// - cleanupInterval: de quanto em quanto tempo as chaves expiradas são varridas.
func NewInMemoryStore(defaultTTL, cleanupInterval time.Duration) *InMemoryStore {
	c := &InMemoryStore{
		store:      make(map[string]slot),
		defaultTTL: defaultTTL,
		stopChan:   make(chan struct{}),
	}

	go c.cleanupLoop(cleanupInterval)

	return c
}

// Get recupera um valor. Seguro para uso concorrente.
func (c *InMemoryStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.store[key]
	if !ok {
		return false, nil // miss: a chave não existe
	}

	if time.Now().UTC().After(item.expiresAt) {
		return false, nil // expirada, tratada como miss
	}

	if err := json.Unmarshal(item.value, dest); err != nil {
		return false, err
	}

	return true, nil
}

// Set grava um valor. Seguro para uso concorrente.
func (c *InMemoryStore) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ttl := c.defaultTTL
	if ttlSecs > 0 {
		ttl = time.Duration(ttlSecs) * time.Second
	}

	c.store[key] = slot{
		value:     data,
		expiresAt: time.Now().UTC().Add(ttl),
	}

	return nil
}

// Delete remove um valor. Seguro para uso concorrente.
func (c *InMemoryStore) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, key)
	return nil
}

// Stop encerra a goroutine de limpeza. Chame no shutdown da aplicação.
func (c *InMemoryStore) Stop() {
	close(c.stopChan)
}

// cleanupLoop varre periodicamente as chaves expiradas.
func (c *InMemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, item := range c.store {
				if time.Now().UTC().After(item.expiresAt) {
					delete(c.store, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopChan:
			return
		}
	}
}
