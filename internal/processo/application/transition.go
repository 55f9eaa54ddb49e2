package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docgo/processos-console/internal/processo/domain"
	"github.com/docgo/processos-console/internal/shared/events"
	sharedBus "github.com/docgo/processos-console/internal/shared/infra/platform/bus"
)

// FaseTramitacao é o estado corrente do fluxo de tramitação.
type FaseTramitacao int

const (
	FaseInativa FaseTramitacao = iota
	FaseAguardandoConfirmacao
	FaseEnviando
)

func (f FaseTramitacao) String() string {
	switch f {
	case FaseAguardandoConfirmacao:
		return "aguardando_confirmacao"
	case FaseEnviando:
		return "enviando"
	default:
		return "inativa"
	}
}

// Refetcher recarrega a lista corrente sem mexer nos filtros.
type Refetcher interface {
	Refetch()
}

// EstadoTramitacao é a visão do fluxo para renderização.
type EstadoTramitacao struct {
	Fase           FaseTramitacao
	Processo       *domain.Processo
	SetorNovo      string
	DataTramitacao time.Time
	Erro           string
}

// TramitacaoWorkflow conduz a movimentação de um processo para outro setor:
// Inativa -> AguardandoConfirmacao -> Enviando -> Inativa. A falha no envio
// volta para AguardandoConfirmacao com o erro inline, preservando a escolha
// do usuário para nova tentativa.
type TramitacaoWorkflow struct {
	tramitador domain.Tramitador
	bus        sharedBus.EventBus
	refetcher  Refetcher
	notifier   domain.Notifier
	log        *zap.Logger

	mu             sync.Mutex
	fase           FaseTramitacao
	processo       *domain.Processo
	setorNovo      string
	dataTramitacao time.Time
	erro           string
}

func NewTramitacaoWorkflow(
	tramitador domain.Tramitador,
	bus sharedBus.EventBus,
	refetcher Refetcher,
	notifier domain.Notifier,
	log *zap.Logger,
) *TramitacaoWorkflow {
	return &TramitacaoWorkflow{
		tramitador: tramitador,
		bus:        bus,
		refetcher:  refetcher,
		notifier:   notifier,
		log:        log,
	}
}

// Estado devolve uma cópia do estado corrente do fluxo.
func (w *TramitacaoWorkflow) Estado() EstadoTramitacao {
	w.mu.Lock()
	defer w.mu.Unlock()
	est := EstadoTramitacao{
		Fase:           w.fase,
		SetorNovo:      w.setorNovo,
		DataTramitacao: w.dataTramitacao,
		Erro:           w.erro,
	}
	if w.processo != nil {
		p := *w.processo
		est.Processo = &p
	}
	return est
}

// Iniciar abre a confirmação de tramitação para o processo. Mover para o
// setor onde o processo já está é um no-op com aviso; nada muda de fase.
func (w *TramitacaoWorkflow) Iniciar(p domain.Processo, novoSetor string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fase == FaseEnviando {
		return "já existe uma tramitação em andamento"
	}

	novoSetor = strings.TrimSpace(novoSetor)
	if novoSetor == "" || novoSetor == p.SetorAtual {
		aviso := "o processo já se encontra no setor informado"
		w.notificar(domain.AvisoInfo, aviso)
		return aviso
	}

	w.fase = FaseAguardandoConfirmacao
	w.processo = &p
	w.setorNovo = novoSetor
	w.dataTramitacao = time.Now()
	w.erro = ""
	return ""
}

// DefinirData troca a data de tramitação proposta. Datas futuras são
// rejeitadas; a data anterior permanece.
func (w *TramitacaoWorkflow) DefinirData(t time.Time) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fase != FaseAguardandoConfirmacao {
		return ""
	}
	if t.After(time.Now()) {
		aviso := "a data de tramitação não pode ser futura"
		w.notificar(domain.AvisoErro, aviso)
		return aviso
	}
	w.dataTramitacao = t
	return ""
}

// Confirmar submete a tramitação de forma síncrona. No sucesso o fluxo volta
// para Inativa, publica o evento de integração e recarrega a lista com os
// filtros intactos; na falha volta para AguardandoConfirmacao com o erro
// inline.
func (w *TramitacaoWorkflow) Confirmar(ctx context.Context) string {
	w.mu.Lock()
	if w.fase != FaseAguardandoConfirmacao || w.processo == nil {
		w.mu.Unlock()
		return ""
	}
	w.fase = FaseEnviando
	w.erro = ""
	p := *w.processo
	setor := w.setorNovo
	data := w.dataTramitacao
	w.mu.Unlock()

	err := w.tramitador.Tramitar(ctx, p.ID, setor, data)

	w.mu.Lock()
	if err != nil {
		w.fase = FaseAguardandoConfirmacao
		w.erro = "não foi possível tramitar o processo: " + err.Error()
		msg := w.erro
		w.mu.Unlock()
		w.log.Error("falha ao tramitar processo",
			zap.Int64("processo_id", p.ID),
			zap.String("setor_novo", setor),
			zap.Error(err))
		return msg
	}
	w.fase = FaseInativa
	w.processo = nil
	w.setorNovo = ""
	w.mu.Unlock()

	w.notificar(domain.AvisoInfo, "Processo tramitado com sucesso")
	w.publicar(p, setor, data)
	if w.refetcher != nil {
		w.refetcher.Refetch()
	}
	return ""
}

// Cancelar descarta a confirmação pendente. Durante o envio é um no-op.
func (w *TramitacaoWorkflow) Cancelar() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fase != FaseAguardandoConfirmacao {
		return
	}
	w.fase = FaseInativa
	w.processo = nil
	w.setorNovo = ""
	w.erro = ""
}

// publicar emite o evento de integração. Falha de publicação não desfaz a
// tramitação já aceita pelo remoto; apenas registra.
func (w *TramitacaoWorkflow) publicar(p domain.Processo, setorNovo string, data time.Time) {
	if w.bus == nil {
		return
	}
	evt := events.ProcessoTramitado{
		EventID:        uuid.New(),
		ProcessoID:     p.ID,
		SetorAnterior:  p.SetorAtual,
		SetorNovo:      setorNovo,
		DataTramitacao: data,
		TramitadoEm:    time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeoutStoreLocal)
	defer cancel()
	if err := w.bus.Publish(ctx, evt); err != nil {
		w.log.Warn("⚠️ não foi possível publicar evento de tramitação",
			zap.Int64("processo_id", p.ID), zap.Error(err))
	}
}

func (w *TramitacaoWorkflow) notificar(nivel domain.NivelAviso, msg string) {
	if w.notifier != nil {
		w.notifier.Notificar(nivel, msg)
	}
}
