package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/docgo/processos-console/internal/processo/domain"
	sharedBus "github.com/docgo/processos-console/internal/shared/infra/platform/bus"
)

// ---------------- Fetcher roteirizado ----------------

// FetchResposta é um passo do roteiro do ScriptedFetcher.
type FetchResposta struct {
	Res *domain.QueryResult
	Err error
}

// ScriptedFetcher simula a API remota de listagem: devolve as respostas na
// ordem enfileirada (a última se repete) e registra cada FilterSet recebido.
// Um gate opcional por chamada segura a resposta até o teste liberar,
// permitindo controlar a ordem de chegada.
type ScriptedFetcher struct {
	mu        sync.Mutex
	chamadas  []domain.FilterSet
	respostas []FetchResposta
	gates     map[int]chan struct{}
}

var _ domain.ListFetcher = (*ScriptedFetcher)(nil)

func NewScriptedFetcher(respostas ...FetchResposta) *ScriptedFetcher {
	return &ScriptedFetcher{
		respostas: respostas,
		gates:     make(map[int]chan struct{}),
	}
}

// Enfileirar acrescenta uma resposta ao roteiro.
func (f *ScriptedFetcher) Enfileirar(res *domain.QueryResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.respostas = append(f.respostas, FetchResposta{Res: res, Err: err})
}

// Gate faz a chamada de índice i (base zero) esperar o canal fechar antes de
// responder.
func (f *ScriptedFetcher) Gate(i int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[i] = ch
	return ch
}

// Chamadas devolve uma cópia dos FilterSets recebidos até aqui.
func (f *ScriptedFetcher) Chamadas() []domain.FilterSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.FilterSet, len(f.chamadas))
	copy(out, f.chamadas)
	return out
}

func (f *ScriptedFetcher) Listar(ctx context.Context, fs domain.FilterSet) (*domain.QueryResult, error) {
	f.mu.Lock()
	idx := len(f.chamadas)
	f.chamadas = append(f.chamadas, fs)
	var resp FetchResposta
	if len(f.respostas) > 0 {
		if idx < len(f.respostas) {
			resp = f.respostas[idx]
		} else {
			resp = f.respostas[len(f.respostas)-1]
		}
	}
	gate := f.gates[idx]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.Res != nil {
		r := *resp.Res
		return &r, nil
	}
	vazio := domain.Vazio(fs.PorPagina)
	return &vazio, nil
}

// GerarPagina sintetiza a página pedida de uma lista com totalItems
// registros, com IDs e números de processo sequenciais.
func GerarPagina(totalItems, pagina, porPagina int) *domain.QueryResult {
	inicio := (pagina-1)*porPagina + 1
	fim := pagina * porPagina
	if fim > totalItems {
		fim = totalItems
	}
	itens := []domain.Processo{}
	for i := inicio; i <= fim; i++ {
		itens = append(itens, domain.Processo{
			ID:             int64(i),
			NumeroProcesso: fmt.Sprintf("%04d/2026", i),
			SetorAtual:     "Protocolo",
			Status:         domain.StatusEmAndamento,
		})
	}
	return &domain.QueryResult{
		Processos:  itens,
		Pagination: domain.NewPaginationInfo(totalItems, pagina, porPagina),
	}
}

// ---------------- Tramitador roteirizado ----------------

type ChamadaTramitar struct {
	ProcessoID int64
	Setor      string
	Data       time.Time
}

type ScriptedTramitador struct {
	mu       sync.Mutex
	Err      error
	chamadas []ChamadaTramitar
}

var _ domain.Tramitador = (*ScriptedTramitador)(nil)

func (t *ScriptedTramitador) Tramitar(ctx context.Context, processoID int64, novoSetor string, dataTramitacao time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chamadas = append(t.chamadas, ChamadaTramitar{ProcessoID: processoID, Setor: novoSetor, Data: dataTramitacao})
	return t.Err
}

func (t *ScriptedTramitador) Chamadas() []ChamadaTramitar {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ChamadaTramitar, len(t.chamadas))
	copy(out, t.chamadas)
	return out
}

// ---------------- Bus gravador ----------------

// RecordingBus guarda os eventos publicados, para inspeção nos testes.
type RecordingBus struct {
	mu      sync.Mutex
	eventos []interface{}

	// Falhas força erro nas primeiras N publicações.
	Falhas int
}

var _ sharedBus.EventBus = (*RecordingBus)(nil)

func (b *RecordingBus) Publish(ctx context.Context, event interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Falhas > 0 {
		b.Falhas--
		return fmt.Errorf("broker indisponível")
	}
	b.eventos = append(b.eventos, event)
	return nil
}

func (b *RecordingBus) Eventos() []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]interface{}, len(b.eventos))
	copy(out, b.eventos)
	return out
}

// ---------------- Notifier e gate gravadores ----------------

type RecordingNotifier struct {
	mu     sync.Mutex
	avisos []string
	niveis []domain.NivelAviso
}

var _ domain.Notifier = (*RecordingNotifier)(nil)

func (n *RecordingNotifier) Notificar(nivel domain.NivelAviso, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.niveis = append(n.niveis, nivel)
	n.avisos = append(n.avisos, msg)
}

func (n *RecordingNotifier) Avisos() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.avisos))
	copy(out, n.avisos)
	return out
}

type DummyGate struct {
	mu        sync.Mutex
	expiradas int
}

var _ domain.AuthGate = (*DummyGate)(nil)

func (g *DummyGate) SessaoExpirada() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.expiradas++
}

func (g *DummyGate) Expiradas() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.expiradas
}

// ---------------- Refetcher contador ----------------

type CountingRefetcher struct {
	mu sync.Mutex
	n  int
}

func (r *CountingRefetcher) Refetch() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
}

func (r *CountingRefetcher) Contagem() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}
