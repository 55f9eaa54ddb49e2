package api

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docgo/processos-console/internal/processo/domain"
)

func filtrosDePagina(pagina int) domain.FilterSet {
	f := domain.NewFilterSet(10)
	f.Pagina = pagina
	return f
}

func TestNormalizarLista_EnvelopeComPaginacao(t *testing.T) {
	body := []byte(`{
		"processos": [{"id": 1, "numero_processo": "0001/2026", "status": "em_andamento"}],
		"pagination": {"currentPage": 1, "totalPages": 3, "totalItems": 25, "itemsPerPage": 10}
	}`)

	res, err := normalizarLista(body, filtrosDePagina(1))
	assert.NoError(t, err)
	assert.Len(t, res.Processos, 1)
	assert.Equal(t, int64(1), res.Processos[0].ID)
	assert.Equal(t, 25, res.Pagination.TotalItems)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
}

func TestNormalizarLista_EnvelopeRowsCount(t *testing.T) {
	body := []byte(`{"rows": [{"id": 7}, {"id": 8}], "count": 12}`)

	res, err := normalizarLista(body, filtrosDePagina(2))
	assert.NoError(t, err)
	assert.Len(t, res.Processos, 2)
	assert.Equal(t, 12, res.Pagination.TotalItems)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.Equal(t, 2, res.Pagination.CurrentPage)
}

func TestNormalizarLista_ArrayPuro(t *testing.T) {
	body := []byte(`  [{"id": 3}, {"id": 4}, {"id": 5}]`)

	res, err := normalizarLista(body, filtrosDePagina(1))
	assert.NoError(t, err)
	assert.Len(t, res.Processos, 3)
	assert.Equal(t, 3, res.Pagination.TotalItems)
	assert.Equal(t, 1, res.Pagination.TotalPages)
}

func TestNormalizarLista_ArrayPuroSempreEhPaginaUnica(t *testing.T) {
	// servidor antigo ignora o limit e devolve a lista inteira; o resultado
	// não pode inventar páginas que o backend não sabe servir
	itens := make([]string, 25)
	for i := range itens {
		itens[i] = fmt.Sprintf(`{"id": %d}`, i+1)
	}
	body := []byte("[" + strings.Join(itens, ",") + "]")

	res, err := normalizarLista(body, filtrosDePagina(2))
	assert.NoError(t, err)
	assert.Len(t, res.Processos, 25)
	assert.Equal(t, 25, res.Pagination.TotalItems)
	assert.Equal(t, 1, res.Pagination.TotalPages)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
}

func TestNormalizarLista_PaginacaoInconsistenteEhCorrigida(t *testing.T) {
	// servidor reporta uma página corrente absurda; o bloco é recomputado
	body := []byte(`{
		"processos": [],
		"pagination": {"currentPage": 99, "totalPages": 99, "totalItems": 5, "itemsPerPage": 10}
	}`)

	res, err := normalizarLista(body, filtrosDePagina(9))
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Pagination.TotalPages)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	assert.Equal(t, 5, res.Pagination.TotalItems)
}

func TestNormalizarLista_FormatosInvalidos(t *testing.T) {
	casos := [][]byte{
		nil,
		[]byte("   "),
		[]byte(`{"outra_coisa": true}`),
		[]byte(`{"processos": "não é lista"}`),
		[]byte(`[{"id": "meio json`),
	}
	for _, body := range casos {
		_, err := normalizarLista(body, filtrosDePagina(1))
		assert.ErrorIs(t, err, domain.ErrFormatoResposta, "body: %s", body)
	}
}

func TestNormalizarLista_ListaNuncaEhNil(t *testing.T) {
	res, err := normalizarLista([]byte(`{"rows": null, "count": 0}`), filtrosDePagina(1))
	assert.NoError(t, err)
	assert.NotNil(t, res.Processos)
	assert.Empty(t, res.Processos)
}
