package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Contratos de integração, NÃO entidades do domínio.
// São planos de propósito, para troca entre contextos.
type ProcessoTramitado struct {
	EventID        uuid.UUID `json:"event_id"`
	ProcessoID     int64     `json:"processo_id"`
	SetorAnterior  string    `json:"setor_anterior"`
	SetorNovo      string    `json:"setor_novo"`
	DataTramitacao time.Time `json:"data_tramitacao"`
	TramitadoEm    time.Time `json:"tramitado_em"`
}

// PartitionKey garante ordenação por processo no broker.
func (e ProcessoTramitado) PartitionKey() string {
	return strconv.FormatInt(e.ProcessoID, 10)
}
