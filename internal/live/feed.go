package live

import (
	"context"
	"sync"
)

// FetchFunc produces the current full result set for a feed's query.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Feed delivers an initial snapshot and then a fresh snapshot after every
// change signal on its topic, in the order the underlying writes were
// observed. Close cancels the feed synchronously: once it returns, no further
// snapshot is delivered and the Snapshots channel is closed.
type Feed[T any] struct {
	snapshots chan T

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// Open subscribes to topic on the broker and starts delivering snapshots
// produced by fetch. The feed stops when Close is called, the context is
// cancelled, or fetch fails; Err reports the terminal failure, if any.
func Open[T any](ctx context.Context, broker Broker, topic string, fetch FetchFunc[T]) (*Feed[T], error) {
	listener, err := broker.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	fctx, cancel := context.WithCancel(ctx)
	f := &Feed[T]{
		snapshots: make(chan T),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go f.run(fctx, listener, fetch)
	return f, nil
}

// Snapshots is the delivery channel. It is closed when the feed ends.
func (f *Feed[T]) Snapshots() <-chan T {
	return f.snapshots
}

// Err returns the error that terminated the feed, or nil after a clean Close.
func (f *Feed[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Close cancels the subscription and waits for delivery to stop. It is safe
// to call more than once and from any goroutine.
func (f *Feed[T]) Close() {
	f.closeOnce.Do(func() {
		f.cancel()
		<-f.done
	})
}

func (f *Feed[T]) run(ctx context.Context, listener Listener, fetch FetchFunc[T]) {
	defer close(f.done)
	defer close(f.snapshots)
	defer listener.Close()
	defer f.cancel()

	if !f.deliver(ctx, fetch) {
		return
	}

	for {
		select {
		case _, ok := <-listener.Notify():
			if !ok {
				return
			}
			if !f.deliver(ctx, fetch) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (f *Feed[T]) deliver(ctx context.Context, fetch FetchFunc[T]) bool {
	snap, err := fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			f.mu.Lock()
			f.err = err
			f.mu.Unlock()
		}
		return false
	}

	select {
	case f.snapshots <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}
