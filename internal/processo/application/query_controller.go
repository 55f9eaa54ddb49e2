package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/docgo/processos-console/internal/processo/domain"
	"github.com/docgo/processos-console/internal/shared/infra/platform/cache"
)

// DebouncePadrao é o período de silêncio da busca livre antes de commitar.
const DebouncePadrao = 500 * time.Millisecond

// tempo máximo das escritas/leituras locais feitas fora do caminho crítico
const timeoutStoreLocal = 1 * time.Second

// EstadoConsulta é a visão imutável exposta para renderização.
type EstadoConsulta struct {
	Filtros    domain.FilterSet
	Resultado  domain.QueryResult
	Carregando bool
}

// QueryController é o dono exclusivo do FilterSet e do QueryResult.
//
// Todas as mutações passam pelos métodos públicos; cada uma dispara no máximo
// um ciclo de fetch, etiquetado com um número de sequência crescente. Uma
// resposta só é aplicada se a sua sequência for a mais recente emitida —
// respostas obsoletas são descartadas na chegada, nunca exibidas nem gravadas
// no cache. A busca livre é a única mutação com debounce.
type QueryController struct {
	fetcher  domain.ListFetcher
	store    domain.KeyValueStore
	session  domain.SessionStore
	notifier domain.Notifier
	gate     domain.AuthGate
	log      *zap.Logger

	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	filtros      domain.FilterSet
	resultado    domain.QueryResult
	temResultado bool
	emVoo        int
	idleCh       chan struct{}

	// seq é a última requisição emitida; ultimaAplicada, a última aplicada.
	seq            uint64
	ultimaAplicada uint64

	buscaTimer       *time.Timer
	buscaPendente    string
	temBuscaPendente bool

	fechado bool
}

// NewQueryController constrói o controller com o FilterSet padrão. Nenhum
// fetch é disparado até Iniciar ou a primeira mutação.
func NewQueryController(
	fetcher domain.ListFetcher,
	store domain.KeyValueStore,
	session domain.SessionStore,
	notifier domain.Notifier,
	gate domain.AuthGate,
	debounce time.Duration,
	log *zap.Logger,
) *QueryController {
	if debounce <= 0 {
		debounce = DebouncePadrao
	}
	ctx, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle) // sem fetch em voo no início

	filtros := domain.NewFilterSet(domain.PorPaginaPermitidos[0])
	return &QueryController{
		fetcher:   fetcher,
		store:     store,
		session:   session,
		notifier:  notifier,
		gate:      gate,
		log:       log,
		debounce:  debounce,
		ctx:       ctx,
		cancel:    cancel,
		filtros:   filtros,
		resultado: domain.Vazio(filtros.PorPagina),
		idleCh:    idle,
	}
}

// Iniciar carrega a preferência persistida de itens por página e dispara o
// fetch inicial com o FilterSet padrão.
func (c *QueryController) Iniciar(ctx context.Context) {
	var porPagina int
	if ok, err := c.store.Get(ctx, domain.ChavePorPagina, &porPagina); err == nil && ok && domain.PorPaginaValido(porPagina) {
		c.mu.Lock()
		c.filtros.PorPagina = porPagina
		c.resultado = domain.Vazio(porPagina)
		c.mu.Unlock()
	}
	c.Refetch()
}

// Estado devolve uma cópia do estado commitado corrente.
func (c *QueryController) Estado() EstadoConsulta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return EstadoConsulta{
		Filtros:    c.filtros,
		Resultado:  c.resultado,
		Carregando: c.emVoo > 0,
	}
}

// ---------------- Mutadores ----------------

// Buscar registra o texto digitado e rearma o debounce. O fetch só é emitido
// após o período de silêncio, e somente se o texto commitado (já aparado)
// diferir do último — foco/blur e re-renderizações não geram requisição.
func (c *QueryController) Buscar(texto string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fechado {
		return
	}
	c.buscaPendente = texto
	c.temBuscaPendente = true
	if c.buscaTimer != nil {
		c.buscaTimer.Stop()
	}
	c.buscaTimer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.commitBuscaLocked()
	})
}

func (c *QueryController) commitBuscaLocked() {
	if !c.temBuscaPendente || c.fechado {
		return
	}
	c.temBuscaPendente = false
	texto := strings.TrimSpace(c.buscaPendente)
	if texto == c.filtros.Busca {
		return
	}
	c.filtros.Busca = texto
	c.filtros.Pagina = 1
	c.emitirFetchLocked()
}

// SetFiltro atualiza exatamente um filtro por campo e dispara fetch imediato
// com a página zerada. valor nil (ou vazio) limpa o filtro; para status, o
// valor vazio volta ao sentinela de ativos. Devolve um aviso para o usuário
// quando a mutação é rejeitada; vazio quando aceita.
func (c *QueryController) SetFiltro(campo domain.FiltroCampo, valor *string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fechado {
		return ""
	}

	switch campo {
	case domain.FiltroObjeto:
		c.filtros.Objeto = copiarFiltro(valor)
	case domain.FiltroSetor:
		c.filtros.Setor = copiarFiltro(valor)
	case domain.FiltroCredor:
		c.filtros.Credor = copiarFiltro(valor)
	case domain.FiltroResponsavel:
		c.filtros.Responsavel = copiarFiltro(valor)
	case domain.FiltroStatus:
		if valor == nil || *valor == "" {
			c.filtros.Status = domain.StatusFiltroAtivos
		} else {
			c.filtros.Status = domain.StatusFilter(*valor)
		}
	default:
		return "filtro desconhecido: " + string(campo)
	}

	c.filtros.Pagina = 1
	c.emitirFetchLocked()
	return ""
}

// SetDataInicio atualiza o limite inferior do intervalo de datas. Uma edição
// que violaria fim >= inicio é rejeitada: o campo editado é limpo, um único
// aviso é emitido e a limpeza segue o caminho normal de mudança de filtro.
func (c *QueryController) SetDataInicio(d *time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fechado {
		return ""
	}

	aviso := ""
	if d != nil && c.filtros.DataFim != nil && c.filtros.DataFim.Before(*d) {
		d = nil
		aviso = "Data inicial posterior à data final; o campo foi limpo."
		c.notificar(domain.AvisoErro, aviso)
	}
	c.filtros.DataInicio = copiarData(d)
	c.filtros.Pagina = 1
	c.emitirFetchLocked()
	return aviso
}

// SetDataFim é o par de SetDataInicio para o limite superior.
func (c *QueryController) SetDataFim(d *time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fechado {
		return ""
	}

	aviso := ""
	if d != nil && c.filtros.DataInicio != nil && d.Before(*c.filtros.DataInicio) {
		d = nil
		aviso = "Data final anterior à data inicial; o campo foi limpo."
		c.notificar(domain.AvisoErro, aviso)
	}
	c.filtros.DataFim = copiarData(d)
	c.filtros.Pagina = 1
	c.emitirFetchLocked()
	return aviso
}

// SetCampoData escolhe a coluna de data alvo do intervalo.
func (c *QueryController) SetCampoData(campo domain.DateField) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fechado {
		return ""
	}
	if campo != domain.CampoDataEntrada && campo != domain.CampoDataCriacao {
		return "campo de data desconhecido: " + string(campo)
	}
	c.filtros.CampoData = campo
	c.filtros.Pagina = 1
	c.emitirFetchLocked()
	return ""
}

// SetOrdenacao alterna a ordenação: mesmo campo inverte a direção, campo novo
// começa ascendente. Sempre volta para a página 1.
func (c *QueryController) SetOrdenacao(campo string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fechado || campo == "" {
		return
	}

	if c.filtros.Ordenacao != nil && c.filtros.Ordenacao.Campo == campo {
		dir := domain.Asc
		if c.filtros.Ordenacao.Direcao == domain.Asc {
			dir = domain.Desc
		}
		c.filtros.Ordenacao = &domain.Ordenacao{Campo: campo, Direcao: dir}
	} else {
		c.filtros.Ordenacao = &domain.Ordenacao{Campo: campo, Direcao: domain.Asc}
	}

	c.filtros.Pagina = 1
	c.emitirFetchLocked()
}

// IrParaPagina busca a página n com o FilterSet intacto; fora do intervalo
// [1, totalPages] é um no-op.
func (c *QueryController) IrParaPagina(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fechado {
		return
	}
	total := c.resultado.Pagination.TotalPages
	if total < 1 {
		total = 1
	}
	if n < 1 || n > total {
		return
	}
	c.filtros.Pagina = n
	c.emitirFetchLocked()
}

func (c *QueryController) ProximaPagina() {
	c.mu.Lock()
	pagina := c.filtros.Pagina
	c.mu.Unlock()
	c.IrParaPagina(pagina + 1)
}

func (c *QueryController) PaginaAnterior() {
	c.mu.Lock()
	pagina := c.filtros.Pagina
	c.mu.Unlock()
	c.IrParaPagina(pagina - 1)
}

// SetPorPagina troca o tamanho da página, persiste a preferência e volta para
// a página 1. Valores fora do conjunto permitido são rejeitados com aviso.
func (c *QueryController) SetPorPagina(n int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fechado {
		return ""
	}
	if !domain.PorPaginaValido(n) {
		aviso := "quantidade de itens por página não permitida"
		c.notificar(domain.AvisoErro, aviso)
		return aviso
	}

	c.filtros.PorPagina = n
	c.filtros.Pagina = 1

	go func(v int) {
		ctx, cancel := context.WithTimeout(context.Background(), timeoutStoreLocal)
		defer cancel()
		if err := c.store.Set(ctx, domain.ChavePorPagina, v, 0); err != nil {
			c.log.Warn("falha ao persistir preferência de itens por página", zap.Error(err))
		}
	}(n)

	c.emitirFetchLocked()
	return ""
}

// Refetch reemite a última requisição com o FilterSet idêntico. Usado após
// mutações externas (tramitação, exclusão) para refletir o dado novo sem
// perder filtros, ordenação ou página.
func (c *QueryController) Refetch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fechado {
		return
	}
	c.emitirFetchLocked()
}

// AwaitIdle commita uma busca pendente de debounce e bloqueia até não restar
// fetch em voo. Usado pela fachada HTTP e pelos testes.
func (c *QueryController) AwaitIdle(ctx context.Context) error {
	c.mu.Lock()
	if c.temBuscaPendente {
		if c.buscaTimer != nil {
			c.buscaTimer.Stop()
		}
		c.commitBuscaLocked()
	}
	for c.emVoo > 0 {
		ch := c.idleCh
		c.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		c.mu.Lock()
	}
	c.mu.Unlock()
	return nil
}

// Close cancela o trabalho em voo e descarta o timer de debounce.
func (c *QueryController) Close() {
	c.mu.Lock()
	c.fechado = true
	c.temBuscaPendente = false
	if c.buscaTimer != nil {
		c.buscaTimer.Stop()
	}
	c.mu.Unlock()
	c.cancel()
}

// ---------------- Ciclo de fetch ----------------

func (c *QueryController) emitirFetchLocked() {
	c.seq++
	seq := c.seq
	f := c.filtros
	if c.emVoo == 0 {
		c.idleCh = make(chan struct{})
	}
	c.emVoo++
	go c.executarFetch(seq, f)
}

func (c *QueryController) executarFetch(seq uint64, f domain.FilterSet) {
	res, err := c.fetcher.Listar(c.ctx, f)

	// Auto-retreat: página vazia acima da primeira indica que uma mudança de
	// filtro encolheu a lista para aquém da página corrente. Recua uma página
	// e tenta de novo — no máximo uma vez por ciclo.
	if err == nil && res != nil && len(res.Processos) == 0 && f.Pagina > 1 {
		recuo := f
		recuo.Pagina = f.Pagina - 1
		if res2, err2 := c.fetcher.Listar(c.ctx, recuo); err2 == nil && res2 != nil {
			f = recuo
			res = res2
		}
	}

	// O snapshot local só é consultado em falha que não seja de autenticação,
	// nunca em sucesso.
	var fallback *domain.QueryResult
	if err != nil && !errors.Is(err, domain.ErrSessaoExpirada) {
		ctxSnap, cancel := context.WithTimeout(context.Background(), timeoutStoreLocal)
		var snap domain.QueryResult
		if ok, errGet := c.store.Get(ctxSnap, domain.ChaveSnapshot, &snap); errGet == nil && ok {
			fallback = &snap
		}
		cancel()
	}

	c.aplicar(seq, f, res, err, fallback)
}

func (c *QueryController) aplicar(seq uint64, f domain.FilterSet, res *domain.QueryResult, err error, fallback *domain.QueryResult) {
	c.mu.Lock()
	defer func() {
		c.emVoo--
		if c.emVoo == 0 {
			close(c.idleCh)
		}
		c.mu.Unlock()
	}()

	if c.fechado {
		return
	}
	if seq != c.seq {
		// Resposta obsoleta: uma requisição mais nova já foi emitida.
		// Descartada em silêncio — não é erro, não vai para a tela nem
		// para o cache.
		c.log.Debug("resposta obsoleta descartada",
			zap.Uint64("seq", seq), zap.Uint64("atual", c.seq))
		return
	}

	if err == nil {
		c.filtros = f // a página pode ter recuado no auto-retreat
		c.resultado = *res
		c.temResultado = true
		c.ultimaAplicada = seq
		c.gravarSnapshot(*res)
		return
	}

	if errors.Is(err, domain.ErrSessaoExpirada) {
		// Fatal para a sessão: limpa credenciais e sinaliza o redirecionamento.
		// O FilterSet permanece intacto.
		c.log.Warn("sessão remota inválida", zap.Error(err))
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeoutStoreLocal)
			defer cancel()
			if errLimpar := c.session.Limpar(ctx); errLimpar != nil {
				c.log.Warn("falha ao limpar sessão local", zap.Error(errLimpar))
			}
		}()
		if c.gate != nil {
			c.gate.SessaoExpirada()
		}
		return
	}

	c.log.Error("falha ao carregar processos", zap.Error(err))
	if c.temResultado {
		// Há resultado anterior na tela: mantém e só avisa.
		c.notificar(domain.AvisoErro, "Erro ao carregar processos")
		return
	}
	if fallback != nil {
		c.resultado = *fallback
		c.notificar(domain.AvisoErro, "Erro ao carregar processos; exibindo dados locais")
		return
	}
	c.resultado = domain.Vazio(f.PorPagina)
	c.notificar(domain.AvisoErro, "Erro ao carregar processos")
}

func (c *QueryController) gravarSnapshot(res domain.QueryResult) {
	cache.AsyncCacheSet(c.ctx, c.store, domain.ChaveSnapshot, res, 0, c.log)
}

func (c *QueryController) notificar(nivel domain.NivelAviso, msg string) {
	if c.notifier != nil {
		c.notifier.Notificar(nivel, msg)
	}
}

// ---------------- Helpers ----------------

func copiarFiltro(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	s := *v
	return &s
}

func copiarData(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	t := *d
	return &t
}
