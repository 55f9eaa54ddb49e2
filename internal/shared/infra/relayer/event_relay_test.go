package relayer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/docgo/processos-console/tests/mocks"
)

func TestEventRelay_EntregaEmSegundoPlano(t *testing.T) {
	bus := &mocks.RecordingBus{}
	relay := NewEventRelay(bus, 8, 3, time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Start(ctx)

	assert.NoError(t, relay.Publish(context.Background(), "evento-1"))
	assert.NoError(t, relay.Publish(context.Background(), "evento-2"))

	assert.Eventually(t, func() bool {
		return len(bus.Eventos()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "evento-1", bus.Eventos()[0])
}

func TestEventRelay_ReentregaAposFalhaTransitoria(t *testing.T) {
	bus := &mocks.RecordingBus{Falhas: 2} // as duas primeiras tentativas falham
	relay := NewEventRelay(bus, 8, 3, time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Start(ctx)

	assert.NoError(t, relay.Publish(context.Background(), "teimoso"))

	assert.Eventually(t, func() bool {
		return len(bus.Eventos()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestEventRelay_BufferCheioDescartaSemBloquear(t *testing.T) {
	bus := &mocks.RecordingBus{}
	relay := NewEventRelay(bus, 1, 1, time.Millisecond, zap.NewNop())
	// sem Start: nada consome a fila

	assert.NoError(t, relay.Publish(context.Background(), "cabe"))
	assert.ErrorIs(t, relay.Publish(context.Background(), "transborda"), ErrFilaCheia)
}
