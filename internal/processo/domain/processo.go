package domain

// ---------------- Entidade ----------------

// Status de um processo no fluxo administrativo.
type Status string

const (
	StatusEmAndamento Status = "em_andamento"
	StatusConcluido   Status = "concluido"
	StatusCancelado   Status = "cancelado"
)

// Processo é o registro retornado pela API remota. O controller o trata como
// valor imutável: qualquer mudança chega via um novo fetch completo.
type Processo struct {
	ID              int64   `json:"id"`
	NumeroProcesso  string  `json:"numero_processo"`
	DataEntrada     string  `json:"data_entrada"`
	Competencia     string  `json:"competencia"`
	Objeto          string  `json:"objeto"`
	Credor          string  `json:"credor"`
	Interessado     string  `json:"interessado,omitempty"` // campo legado, anterior a "credor"
	OrgaoGerador    string  `json:"orgao_gerador"`
	Responsavel     string  `json:"responsavel"`
	SetorAtual      string  `json:"setor_atual"`
	LinkProcesso    string  `json:"link_processo,omitempty"`
	Descricao       string  `json:"descricao"`
	Observacao      string  `json:"observacao"`
	ValorConvenio   float64 `json:"valor_convenio"`
	ValorRecurso    float64 `json:"valor_recurso_proprio"`
	ValorRoyalties  float64 `json:"valor_royalties"`
	Status          Status  `json:"status"`
	UpdateFor       string  `json:"update_for,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	DataAtualizacao string  `json:"data_atualizacao,omitempty"`
}

// ValorTotal soma as três fontes de recurso do processo.
func (p Processo) ValorTotal() float64 {
	return p.ValorConvenio + p.ValorRecurso + p.ValorRoyalties
}

// CredorOuInteressado resolve o nome exibível, preferindo o campo novo.
func (p Processo) CredorOuInteressado() string {
	if p.Credor != "" {
		return p.Credor
	}
	return p.Interessado
}

// ---------------- Estatísticas ----------------

// ProcessoStats agrega contagens por status, desacoplado do FilterSet.
type ProcessoStats struct {
	Total       int `json:"total"`
	EmAndamento int `json:"em_andamento"`
	Concluidos  int `json:"concluidos"`
	Cancelados  int `json:"cancelados"`
}
