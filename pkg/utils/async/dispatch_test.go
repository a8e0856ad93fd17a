package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/gametheory-pro/gtpro/pkg/utils/async"
	"github.com/m-mizutani/gt"
)

func TestDispatcher(t *testing.T) {
	var d async.Dispatcher
	var calls atomic.Int32

	d.Dispatch(context.Background(), "ok", func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	d.Dispatch(context.Background(), "fails", func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	})
	d.Dispatch(context.Background(), "panics", func(ctx context.Context) error {
		calls.Add(1)
		panic("unexpected")
	})

	d.Wait()
	gt.Value(t, calls.Load()).Equal(int32(3))
}
