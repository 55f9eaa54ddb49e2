package session

import (
	"context"

	"github.com/docgo/processos-console/internal/processo/domain"
)

// KVSessionStore guarda a sessão autenticada no mesmo armazém chave-valor dos
// snapshots, em um slot único. A troca de backend (Redis, SQLite, memória)
// vale automaticamente para a sessão.
type KVSessionStore struct {
	store domain.KeyValueStore
}

func NewKVSessionStore(store domain.KeyValueStore) *KVSessionStore {
	return &KVSessionStore{store: store}
}

func (s *KVSessionStore) Salvar(ctx context.Context, sessao domain.Sessao) error {
	return s.store.Set(ctx, domain.ChaveSessao, sessao, 0)
}

func (s *KVSessionStore) Atual(ctx context.Context) (domain.Sessao, bool, error) {
	var sessao domain.Sessao
	ok, err := s.store.Get(ctx, domain.ChaveSessao, &sessao)
	if err != nil || !ok {
		return domain.Sessao{}, false, err
	}
	return sessao, true, nil
}

func (s *KVSessionStore) Limpar(ctx context.Context) error {
	return s.store.Delete(ctx, domain.ChaveSessao)
}

// Verificação estática
var _ domain.SessionStore = (*KVSessionStore)(nil)
