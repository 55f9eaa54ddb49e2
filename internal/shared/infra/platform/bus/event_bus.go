package bus

import "context"

type Keyer interface {
	PartitionKey() string
}

// A semântica de topic/nome e o formato do payload ficam a cargo dos adapters.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}
