package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValorTotal(t *testing.T) {
	p := Processo{
		ValorConvenio:  1000.50,
		ValorRecurso:   200,
		ValorRoyalties: 49.50,
	}
	assert.InDelta(t, 1250.0, p.ValorTotal(), 0.001)
}

func TestCredorOuInteressado(t *testing.T) {
	p := Processo{Credor: "Construtora Alfa", Interessado: "Legado"}
	assert.Equal(t, "Construtora Alfa", p.CredorOuInteressado())

	// registros antigos só têm o campo legado
	p = Processo{Interessado: "Legado"}
	assert.Equal(t, "Legado", p.CredorOuInteressado())
}

func TestVazio(t *testing.T) {
	r := Vazio(20)
	assert.NotNil(t, r.Processos)
	assert.Empty(t, r.Processos)
	assert.Equal(t, 1, r.Pagination.TotalPages)
	assert.Equal(t, 20, r.Pagination.PorPagina)
}
