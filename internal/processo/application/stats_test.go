package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/docgo/processos-console/internal/processo/domain"
	"github.com/docgo/processos-console/tests/mocks"
)

func paginaComStatus(totalItems, pagina, porPagina int, statuses []domain.Status) *domain.QueryResult {
	itens := make([]domain.Processo, len(statuses))
	for i, s := range statuses {
		itens[i] = domain.Processo{
			ID:     int64((pagina-1)*porPagina + i + 1),
			Status: s,
		}
	}
	return &domain.QueryResult{
		Processos:  itens,
		Pagination: domain.NewPaginationInfo(totalItems, pagina, porPagina),
	}
}

func TestColetar_AgregaTodasAsPaginas(t *testing.T) {
	statusPagina1 := make([]domain.Status, 0, 30)
	for i := 0; i < 20; i++ {
		statusPagina1 = append(statusPagina1, domain.StatusEmAndamento)
	}
	for i := 0; i < 7; i++ {
		statusPagina1 = append(statusPagina1, domain.StatusConcluido)
	}
	for i := 0; i < 3; i++ {
		statusPagina1 = append(statusPagina1, domain.StatusCancelado)
	}
	statusPagina2 := []domain.Status{
		domain.StatusEmAndamento,
		domain.StatusConcluido,
		domain.StatusCancelado,
	}

	fetcher := mocks.NewScriptedFetcher(
		mocks.FetchResposta{Res: paginaComStatus(33, 1, 30, statusPagina1)},
		mocks.FetchResposta{Res: paginaComStatus(33, 2, 30, statusPagina2)},
	)
	agg := NewStatsAggregator(fetcher, zap.NewNop())

	stats, err := agg.Coletar(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 33, stats.Total)
	assert.Equal(t, 21, stats.EmAndamento)
	assert.Equal(t, 8, stats.Concluidos)
	assert.Equal(t, 4, stats.Cancelados)

	chamadas := fetcher.Chamadas()
	assert.Len(t, chamadas, 2)
	for _, ch := range chamadas {
		assert.Equal(t, domain.StatusFiltroTodos, ch.Status, "a coleta sempre abrange todos os status")
		assert.Equal(t, 30, ch.PorPagina)
		assert.Empty(t, ch.Busca)
	}
	assert.Equal(t, 1, chamadas[0].Pagina)
	assert.Equal(t, 2, chamadas[1].Pagina)
}

func TestColetar_PropagaFalhaDoRemoto(t *testing.T) {
	fetcher := mocks.NewScriptedFetcher(mocks.FetchResposta{Err: errors.New("rede fora")})
	agg := NewStatsAggregator(fetcher, zap.NewNop())

	_, err := agg.Coletar(context.Background())
	assert.Error(t, err)
}

func TestColetar_ListaVaziaNaoEntraEmLoop(t *testing.T) {
	vazio := domain.Vazio(30)
	fetcher := mocks.NewScriptedFetcher(mocks.FetchResposta{Res: &vazio})
	agg := NewStatsAggregator(fetcher, zap.NewNop())

	stats, err := agg.Coletar(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Len(t, fetcher.Chamadas(), 1)
}
