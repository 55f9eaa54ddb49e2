package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func str(s string) *string { return &s }

func data(s string) *time.Time {
	d, err := time.Parse(FormatoData, s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestNewFilterSet_Padroes(t *testing.T) {
	f := NewFilterSet(10)

	assert.Equal(t, StatusFiltroAtivos, f.Status)
	assert.Equal(t, CampoDataEntrada, f.CampoData)
	assert.Equal(t, 1, f.Pagina)
	assert.Equal(t, 10, f.PorPagina)
	assert.Empty(t, f.Busca)
	assert.Nil(t, f.Objeto)
	assert.Nil(t, f.Ordenacao)
}

func TestNewFilterSet_PorPaginaInvalidoCaiNoPadrao(t *testing.T) {
	f := NewFilterSet(7)
	assert.Equal(t, PorPaginaPermitidos[0], f.PorPagina)
}

func TestQueryValues_Padrao(t *testing.T) {
	v := NewFilterSet(10).QueryValues()

	assert.Equal(t, "1", v.Get("page"))
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "em_andamento", v.Get("status"))
	assert.Equal(t, "data_entrada", v.Get("dateField"))

	// campos sem valor não entram na query
	assert.False(t, v.Has("busca"))
	assert.False(t, v.Has("objeto"))
	assert.False(t, v.Has("setor"))
	assert.False(t, v.Has("data_inicio"))
	assert.False(t, v.Has("sortBy"))
}

func TestQueryValues_FiltroDeSetor(t *testing.T) {
	f := NewFilterSet(10)
	f.Setor = str("Financeiro")

	v := f.QueryValues()
	assert.Equal(t, "Financeiro", v.Get("setor"))
	assert.Equal(t, "em_andamento", v.Get("status"))
	assert.Equal(t, "1", v.Get("page"))
	assert.False(t, v.Has("busca"))
}

func TestQueryValues_BuscaAparada(t *testing.T) {
	f := NewFilterSet(10)
	f.Busca = "  joão silva  "

	v := f.QueryValues()
	assert.Equal(t, "joão silva", v.Get("busca"))
}

func TestQueryValues_CredorDobradoNaBusca(t *testing.T) {
	f := NewFilterSet(10)
	f.Credor = str("Construtora Alfa")

	v := f.QueryValues()
	assert.Equal(t, "Construtora Alfa", v.Get("busca"))
	assert.False(t, v.Has("credor"))

	// o texto de busca livre vence quando os dois estão presentes
	f.Busca = "licitação"
	v = f.QueryValues()
	assert.Equal(t, "licitação", v.Get("busca"))
}

func TestQueryValues_StatusTresEstados(t *testing.T) {
	f := NewFilterSet(10)

	f.Status = StatusFiltroTodos
	assert.False(t, f.QueryValues().Has("status"), "todos não vai na query")

	f.Status = StatusFilter("concluido")
	assert.Equal(t, "concluido", f.QueryValues().Get("status"))
}

func TestQueryValues_ResponsavelNuncaSerializado(t *testing.T) {
	f := NewFilterSet(10)
	f.Responsavel = str("Maria")

	v := f.QueryValues()
	assert.False(t, v.Has("responsavel"))
	assert.False(t, v.Has("busca"))
}

func TestQueryValues_IntervaloDeDatas(t *testing.T) {
	f := NewFilterSet(10)
	f.CampoData = CampoDataCriacao
	f.DataInicio = data("2026-01-01")
	f.DataFim = data("2026-03-31")

	v := f.QueryValues()
	assert.Equal(t, "2026-01-01", v.Get("data_inicio"))
	assert.Equal(t, "2026-03-31", v.Get("data_fim"))
	assert.Equal(t, "data_criacao_docgo", v.Get("dateField"))
}

func TestQueryValues_Ordenacao(t *testing.T) {
	f := NewFilterSet(10)
	f.Ordenacao = &Ordenacao{Campo: "data_entrada", Direcao: Desc}

	v := f.QueryValues()
	assert.Equal(t, "data_entrada", v.Get("sortBy"))
	assert.Equal(t, "desc", v.Get("sortOrder"))
}

func TestIntervaloValido(t *testing.T) {
	f := NewFilterSet(10)
	assert.True(t, f.IntervaloValido())

	f.DataInicio = data("2026-02-01")
	assert.True(t, f.IntervaloValido())

	f.DataFim = data("2026-01-01")
	assert.False(t, f.IntervaloValido())

	f.DataFim = data("2026-02-01")
	assert.True(t, f.IntervaloValido(), "limites iguais são válidos")
}

func TestNewPaginationInfo(t *testing.T) {
	p := NewPaginationInfo(25, 3, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 25, p.TotalItems)

	// lista vazia ainda tem uma página
	p = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)

	// página pedida além do fim é grampeada
	p = NewPaginationInfo(25, 9, 10)
	assert.Equal(t, 3, p.CurrentPage)

	p = NewPaginationInfo(25, 0, 10)
	assert.Equal(t, 1, p.CurrentPage)
}

func TestPorPaginaValido(t *testing.T) {
	assert.True(t, PorPaginaValido(10))
	assert.True(t, PorPaginaValido(30))
	assert.False(t, PorPaginaValido(25))
	assert.False(t, PorPaginaValido(0))
}
