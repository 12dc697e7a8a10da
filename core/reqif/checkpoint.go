package reqif

import "context"

// checkpoint is consulted at every primitive read or write of the underlying
// stream. The blocking mode never fails; the context mode reports
// cancellation. Both modes share one traversal.
type checkpoint interface {
	check() error
}

type blocking struct{}

func (blocking) check() error { return nil }

type cancellable struct {
	ctx context.Context
}

func (c cancellable) check() error { return c.ctx.Err() }
