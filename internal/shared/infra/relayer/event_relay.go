package relayer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	sharedBus "github.com/docgo/processos-console/internal/shared/infra/platform/bus"
)

// ErrFilaCheia indica que o buffer do relay transbordou e o evento foi
// descartado.
var ErrFilaCheia = errors.New("fila de eventos cheia")

// EventRelay desacopla a publicação de eventos do caminho do usuário: os
// eventos entram em um buffer em memória e um worker os entrega ao broker com
// tentativas limitadas. Buffer cheio descarta o evento novo, nunca bloqueia
// quem publica.
type EventRelay struct {
	destino    sharedBus.EventBus
	fila       chan interface{}
	tentativas int
	intervalo  time.Duration
	log        *zap.Logger
}

func NewEventRelay(destino sharedBus.EventBus, buffer, tentativas int, intervalo time.Duration, log *zap.Logger) *EventRelay {
	if buffer <= 0 {
		buffer = 64
	}
	if tentativas <= 0 {
		tentativas = 3
	}
	return &EventRelay{
		destino:    destino,
		fila:       make(chan interface{}, buffer),
		tentativas: tentativas,
		intervalo:  intervalo,
		log:        log,
	}
}

// Publish enfileira o evento para entrega assíncrona.
func (r *EventRelay) Publish(_ context.Context, event interface{}) error {
	select {
	case r.fila <- event:
		return nil
	default:
		r.log.Warn("⚠️ fila de eventos cheia; evento descartado", zap.Any("event", event))
		return ErrFilaCheia
	}
}

// Start inicia o bucle de entrega do relay. Bloqueia até o contexto encerrar.
func (r *EventRelay) Start(ctx context.Context) {
	r.log.Info("🚀 Relay de eventos iniciado", zap.Int("buffer", cap(r.fila)))

	for {
		select {
		case <-ctx.Done():
			r.log.Info("🛑 Relay de eventos encerrado.")
			return
		case evt := <-r.fila:
			r.entregar(ctx, evt)
		}
	}
}

func (r *EventRelay) entregar(ctx context.Context, evt interface{}) {
	var err error
	for i := 0; i < r.tentativas; i++ {
		if err = r.destino.Publish(ctx, evt); err == nil {
			return
		}
		select {
		case <-time.After(r.intervalo):
			// espera antes da próxima tentativa
		case <-ctx.Done():
			return
		}
	}
	r.log.Warn("⚠️ evento descartado após esgotar tentativas",
		zap.Int("tentativas", r.tentativas), zap.Error(err))
}

// Verificação estática
var _ sharedBus.EventBus = (*EventRelay)(nil)
