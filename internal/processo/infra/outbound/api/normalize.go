package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/docgo/processos-console/internal/processo/domain"
)

// O backend responde a listagem em três formatos, conforme a versão:
//
//  1. {"processos": [...], "pagination": {...}}
//  2. {"rows": [...], "count": n}
//  3. [...] (array puro, sem envelope)
//
// normalizarLista aceita os três e devolve sempre um QueryResult com a
// paginação recomputada localmente, para que o resto do sistema nunca dependa
// de qual formato chegou.

type envelopeLista struct {
	Processos  json.RawMessage `json:"processos"`
	Pagination json.RawMessage `json:"pagination"`
	Rows       json.RawMessage `json:"rows"`
	Count      json.RawMessage `json:"count"`
}

type envelopePaginacao struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

func normalizarLista(body []byte, f domain.FilterSet) (*domain.QueryResult, error) {
	recorte := bytes.TrimLeft(body, " \t\r\n")
	if len(recorte) == 0 {
		return nil, fmt.Errorf("resposta vazia da listagem: %w", domain.ErrFormatoResposta)
	}

	// Formato 3: array puro. Sem envelope o servidor não pagina: a resposta
	// é a lista inteira, então o resultado tem sempre uma única página.
	if recorte[0] == '[' {
		var itens []domain.Processo
		if err := json.Unmarshal(recorte, &itens); err != nil {
			return nil, fmt.Errorf("array de processos inválido: %w", domain.ErrFormatoResposta)
		}
		if itens == nil {
			itens = []domain.Processo{}
		}
		return &domain.QueryResult{
			Processos: itens,
			Pagination: domain.PaginationInfo{
				CurrentPage: 1,
				TotalPages:  1,
				TotalItems:  len(itens),
				PorPagina:   f.PorPagina,
			},
		}, nil
	}

	var env envelopeLista
	if err := json.Unmarshal(recorte, &env); err != nil {
		return nil, fmt.Errorf("envelope da listagem inválido: %w", domain.ErrFormatoResposta)
	}

	// Formato 1: processos + pagination.
	if env.Processos != nil || env.Pagination != nil {
		var itens []domain.Processo
		if env.Processos != nil {
			if err := json.Unmarshal(env.Processos, &itens); err != nil {
				return nil, fmt.Errorf("campo processos inválido: %w", domain.ErrFormatoResposta)
			}
		}
		total := len(itens)
		if env.Pagination != nil {
			var pag envelopePaginacao
			if err := json.Unmarshal(env.Pagination, &pag); err != nil {
				return nil, fmt.Errorf("campo pagination inválido: %w", domain.ErrFormatoResposta)
			}
			if pag.TotalItems > 0 {
				total = pag.TotalItems
			}
		}
		return montarResultado(itens, total, f), nil
	}

	// Formato 2: rows + count.
	if env.Rows != nil || env.Count != nil {
		var itens []domain.Processo
		if env.Rows != nil {
			if err := json.Unmarshal(env.Rows, &itens); err != nil {
				return nil, fmt.Errorf("campo rows inválido: %w", domain.ErrFormatoResposta)
			}
		}
		total := len(itens)
		if env.Count != nil {
			var count int
			if err := json.Unmarshal(env.Count, &count); err != nil {
				return nil, fmt.Errorf("campo count inválido: %w", domain.ErrFormatoResposta)
			}
			if count > 0 {
				total = count
			}
		}
		return montarResultado(itens, total, f), nil
	}

	return nil, fmt.Errorf("nenhum formato de listagem reconhecido: %w", domain.ErrFormatoResposta)
}

func montarResultado(itens []domain.Processo, totalItems int, f domain.FilterSet) *domain.QueryResult {
	if itens == nil {
		itens = []domain.Processo{}
	}
	return &domain.QueryResult{
		Processos:  itens,
		Pagination: domain.NewPaginationInfo(totalItems, f.Pagina, f.PorPagina),
	}
}
