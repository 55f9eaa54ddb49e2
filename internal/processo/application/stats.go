package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/docgo/processos-console/internal/processo/domain"
)

// limite de segurança contra backends que reportam paginação inconsistente
const maxPaginasStats = 200

// StatsAggregator percorre a listagem completa (todos os status) e acumula a
// contagem por status. Opera sobre o mesmo fetcher da listagem, página a
// página, sem tocar no estado do controller.
type StatsAggregator struct {
	fetcher domain.ListFetcher
	log     *zap.Logger
}

func NewStatsAggregator(fetcher domain.ListFetcher, log *zap.Logger) *StatsAggregator {
	return &StatsAggregator{fetcher: fetcher, log: log}
}

// Coletar agrega as contagens percorrendo a lista inteira: status todos, sem
// busca nem intervalo de datas, paginação própria na maior página permitida.
// O recorte corrente da consulta nunca interfere no resumo.
func (a *StatsAggregator) Coletar(ctx context.Context) (domain.ProcessoStats, error) {
	f := domain.NewFilterSet(domain.PorPaginaPermitidos[len(domain.PorPaginaPermitidos)-1])
	f.Status = domain.StatusFiltroTodos

	var stats domain.ProcessoStats
	for {
		res, err := a.fetcher.Listar(ctx, f)
		if err != nil {
			return domain.ProcessoStats{}, err
		}

		for _, p := range res.Processos {
			stats.Total++
			switch p.Status {
			case domain.StatusEmAndamento:
				stats.EmAndamento++
			case domain.StatusConcluido:
				stats.Concluidos++
			case domain.StatusCancelado:
				stats.Cancelados++
			}
		}

		if len(res.Processos) == 0 || f.Pagina >= res.Pagination.TotalPages {
			break
		}
		if f.Pagina >= maxPaginasStats {
			a.log.Warn("coleta de estatísticas interrompida no limite de páginas",
				zap.Int("paginas", f.Pagina))
			break
		}
		f.Pagina++
	}
	return stats, nil
}
