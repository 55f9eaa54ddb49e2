package cache

import (
	"context"
)

// Cache define a interface para um armazém chave-valor genérico.
type Cache interface {
	// Get tenta povoar 'dest' (que deve ser um ponteiro) com o valor associado à 'key'.
	// Devolve (true, nil) em caso de 'hit', com 'dest' preenchido.
	// Devolve (false, nil) em caso de 'miss'.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set serializa e grava o valor com um TTL (Time To Live) em segundos.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	// Delete remove a 'key' do armazém.
	Delete(ctx context.Context, key string) error
}
