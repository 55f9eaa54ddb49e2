package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/docgo/processos-console/internal/shared/infra/platform/bus"
)

// InMemoryEventBus implementa um bus de eventos de UM único topic. Serve de
// alternativa ao Kafka em desenvolvimento e nos testes.
type InMemoryEventBus struct {
	subscribers []chan interface{}
	mu          sync.RWMutex
	topic       string
}

// Verificação estática
var _ sharedBus.EventBus = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus cria um bus de eventos para um topic específico.
func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make([]chan interface{}, 0),
		topic:       topic,
	}
}

// Publish envia o evento, já serializado, a todos os inscritos deste bus.
// Inscrito com buffer cheio perde o evento; publicar nunca bloqueia.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if len(b.subscribers) > 0 {
		go b.distribute(b.subscribers, payloadBytes)
	}
	return nil
}

func (b *InMemoryEventBus) distribute(subs []chan interface{}, event interface{}) {
	for _, subChan := range subs {
		select {
		case subChan <- event:
		default:
		}
	}
}

// Subscribe inscreve um novo ouvinte neste bus.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	subChan := make(chan interface{}, bufferSize)
	b.subscribers = append(b.subscribers, subChan)
	return subChan
}
