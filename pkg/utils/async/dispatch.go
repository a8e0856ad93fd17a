package async

import (
	"context"
	"sync"

	"github.com/gametheory-pro/gtpro/pkg/utils/errutil"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Dispatcher runs fire-and-forget handlers detached from the request
// context. Wait blocks until every dispatched handler has returned.
type Dispatcher struct {
	wg sync.WaitGroup
}

// Dispatch runs handler in a new goroutine with a background context that
// keeps the caller's logger. Errors and panics are logged, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx).With("task", name))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				errutil.Handle(bgCtx, goerr.New("panic in async handler", goerr.V("panic", r)), "async handler panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()
}

// Wait blocks until all dispatched handlers finished
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
