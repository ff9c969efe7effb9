package ports

import "context"

// CyclePublisher announces completed sync cycles to the external fan-out.
// Publishing is best effort; cycle results never depend on it.
type CyclePublisher interface {
	PublishCycleCompleted(ctx context.Context, payload []byte) error
}
