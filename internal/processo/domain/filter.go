package domain

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ---------------- Tipos de filtro / ordenação ----------------

// DateField indica qual coluna de data o servidor deve filtrar.
// É enviada sempre, mesmo com o intervalo vazio.
type DateField string

const (
	CampoDataEntrada DateField = "data_entrada"
	CampoDataCriacao DateField = "data_criacao_docgo"
)

// StatusFilter tem três estados explícitos: o sentinela de ativos
// (padrão), o sentinela "todos" (sem filtro no servidor) e qualquer outro
// valor, enviado literalmente. Vazio não é um estado válido.
type StatusFilter string

const (
	StatusFiltroAtivos StatusFilter = "em_andamento"
	StatusFiltroTodos  StatusFilter = "todos"
)

type Direcao string

const (
	Asc  Direcao = "asc"
	Desc Direcao = "desc"
)

// Ordenacao indica campo e direção da ordenação ativa.
type Ordenacao struct {
	Campo   string  `json:"campo"`
	Direcao Direcao `json:"direcao"`
}

// FiltroCampo nomeia os filtros por campo aceitos por SetFiltro.
type FiltroCampo string

const (
	FiltroObjeto      FiltroCampo = "objeto"
	FiltroSetor       FiltroCampo = "setor"
	FiltroCredor      FiltroCampo = "credor"
	FiltroResponsavel FiltroCampo = "responsavel"
	FiltroStatus      FiltroCampo = "status"
)

// PorPaginaPermitidos é o conjunto fixo de tamanhos de página aceitos.
var PorPaginaPermitidos = []int{10, 20, 30}

// PorPaginaValido informa se n pertence ao conjunto permitido.
func PorPaginaValido(n int) bool {
	for _, v := range PorPaginaPermitidos {
		if v == n {
			return true
		}
	}
	return false
}

// FormatoData é o formato de datas no contrato da API (YYYY-MM-DD).
const FormatoData = "2006-01-02"

// ---------------- FilterSet ----------------

// FilterSet é o estado durável da sessão de consulta: busca, filtros por
// campo, intervalo de datas, ordenação e paginação. Criado com padrões na
// inicialização do controller e mutado somente pelos métodos dele.
type FilterSet struct {
	Busca       string
	Objeto      *string
	Setor       *string
	Credor      *string
	Responsavel *string
	Status      StatusFilter
	CampoData   DateField
	DataInicio  *time.Time
	DataFim     *time.Time
	Ordenacao   *Ordenacao
	Pagina      int
	PorPagina   int
}

// NewFilterSet devolve o estado inicial: somente processos em andamento,
// página 1, datas pela entrada do processo.
func NewFilterSet(porPagina int) FilterSet {
	if !PorPaginaValido(porPagina) {
		porPagina = PorPaginaPermitidos[0]
	}
	return FilterSet{
		Status:    StatusFiltroAtivos,
		CampoData: CampoDataEntrada,
		Pagina:    1,
		PorPagina: porPagina,
	}
}

// QueryValues monta a query string canônica do contrato remoto.
//
// Particularidades herdadas do contrato em produção, preservadas de
// propósito: o filtro de credor é dobrado no parâmetro `busca` (o texto de
// busca livre vence quando os dois estão presentes) e `responsavel` nunca é
// enviado, pois o backend não tem parâmetro para ele.
func (f FilterSet) QueryValues() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Pagina))
	v.Set("limit", strconv.Itoa(f.PorPagina))

	busca := strings.TrimSpace(f.Busca)
	if busca == "" && f.Credor != nil {
		busca = strings.TrimSpace(*f.Credor)
	}
	if busca != "" {
		v.Set("busca", busca)
	}

	if f.Status != "" && f.Status != StatusFiltroTodos {
		v.Set("status", string(f.Status))
	}
	if f.Objeto != nil && *f.Objeto != "" {
		v.Set("objeto", *f.Objeto)
	}
	if f.Setor != nil && *f.Setor != "" {
		v.Set("setor", *f.Setor)
	}
	if f.DataInicio != nil {
		v.Set("data_inicio", f.DataInicio.Format(FormatoData))
	}
	if f.DataFim != nil {
		v.Set("data_fim", f.DataFim.Format(FormatoData))
	}

	campo := f.CampoData
	if campo == "" {
		campo = CampoDataEntrada
	}
	v.Set("dateField", string(campo))

	if f.Ordenacao != nil {
		v.Set("sortBy", f.Ordenacao.Campo)
		v.Set("sortOrder", string(f.Ordenacao.Direcao))
	}
	return v
}

// IntervaloValido verifica a invariante fim >= inicio quando ambos estão
// presentes.
func (f FilterSet) IntervaloValido() bool {
	if f.DataInicio == nil || f.DataFim == nil {
		return true
	}
	return !f.DataFim.Before(*f.DataInicio)
}
