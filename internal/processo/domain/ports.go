package domain

import (
	"context"
	"errors"
	"time"
)

// ---------------- Erros de domínio ----------------

var (
	// ErrSessaoExpirada marca uma falha de autenticação remota: fatal para a
	// sessão, nunca reexecutada, propagada ao colaborador de auth.
	ErrSessaoExpirada = errors.New("sessão expirada")

	// ErrFormatoResposta indica um envelope de resposta fora dos três
	// formatos conhecidos.
	ErrFormatoResposta = errors.New("formato de resposta desconhecido")

	ErrProcessoNaoEncontrado = errors.New("processo não encontrado")
)

// ---------------- Interfaces (Ports) ----------------

// ListFetcher emite exatamente uma chamada remota por FilterSet commitado e
// devolve o envelope já normalizado. Adapter puro: sem retry, sem cache, sem
// debounce — isso é responsabilidade do QueryController.
type ListFetcher interface {
	Listar(ctx context.Context, f FilterSet) (*QueryResult, error)
}

// Tramitador aplica a mutação de setor no registro remoto
// (PATCH com setor_atual + data_tramitacao).
type Tramitador interface {
	Tramitar(ctx context.Context, processoID int64, novoSetor string, dataTramitacao time.Time) error
}

// KeyValueStore é o armazenamento local de slots opacos (snapshot da última
// consulta, preferência de itens por página, sessão).
type KeyValueStore interface {
	// Get tenta popular dest (ponteiro) com o valor associado à key.
	// Devolve (true, nil) em caso de hit, (false, nil) em caso de miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set serializa e grava o valor com TTL em segundos (0 = padrão do adapter).
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	// Delete remove a key.
	Delete(ctx context.Context, key string) error
}

// Sessao são as credenciais e a identidade armazenadas localmente.
type Sessao struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Usuario string `json:"usuario"`
}

// SessionStore tem ciclo de vida explícito (gravar / ler / limpar); é
// injetado no controller em vez de acessado de forma ambiente.
type SessionStore interface {
	Salvar(ctx context.Context, s Sessao) error
	Atual(ctx context.Context) (Sessao, bool, error)
	Limpar(ctx context.Context) error
}

// NivelAviso classifica avisos destinados ao usuário.
type NivelAviso string

const (
	AvisoInfo NivelAviso = "info"
	AvisoErro NivelAviso = "error"
)

// Notifier recebe avisos que a UI deve exibir (toast). O controller nunca
// devolve erro pela fronteira pública: tudo vira aviso ou sinal.
type Notifier interface {
	Notificar(nivel NivelAviso, msg string)
}

// AuthGate é acionado quando a sessão remota deixa de ser válida; o
// colaborador externo decide o redirecionamento para o login.
type AuthGate interface {
	SessaoExpirada()
}

// ---------------- Chaves do armazenamento local ----------------

const (
	ChaveSnapshot  = "processos:ultimo_resultado"
	ChavePorPagina = "processos:por_pagina"
	ChaveSessao    = "sessao:atual"
)
