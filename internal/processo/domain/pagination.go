package domain

// ---------------- Paginação ----------------

// PaginationInfo descreve a janela corrente da lista remota.
// Invariantes: TotalPages == ceil(TotalItems/PorPagina) (ou 1 quando vazio)
// e 1 <= CurrentPage <= max(TotalPages, 1).
type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	PorPagina   int `json:"itemsPerPage"`
}

// NewPaginationInfo sintetiza um bloco de paginação consistente a partir do
// total informado pelo servidor e da janela pedida.
func NewPaginationInfo(totalItems, pagina, porPagina int) PaginationInfo {
	if porPagina < 1 {
		porPagina = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}
	totalPages := 1
	if totalItems > 0 {
		totalPages = (totalItems + porPagina - 1) / porPagina
	}
	if pagina < 1 {
		pagina = 1
	}
	if pagina > totalPages {
		pagina = totalPages
	}
	return PaginationInfo{
		CurrentPage: pagina,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PorPagina:   porPagina,
	}
}

// ---------------- Resultado ----------------

// QueryResult é a unidade exibida e gravada no cache local: substituída por
// inteiro a cada fetch bem sucedido.
type QueryResult struct {
	Processos  []Processo     `json:"processos"`
	Pagination PaginationInfo `json:"pagination"`
}

// Vazio devolve um resultado sem registros com paginação consistente.
func Vazio(porPagina int) QueryResult {
	return QueryResult{
		Processos:  []Processo{},
		Pagination: NewPaginationInfo(0, 1, porPagina),
	}
}
