package messaging

import (
	"context"

	"github.com/carterror/nubex/internal/entity"
)

// Publisher publishes domain events to the message bus.
type Publisher interface {
	Publish(ctx context.Context, key string, event entity.Event) error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, entity.Event) error { return nil }
