package live

import (
	"context"
	"sync"
)

// MemoryBroker is an in-process Broker for single-node deployments, demo mode
// and tests. It implements the same contract as RedisBroker behind the same
// interface and is never mixed into production wiring implicitly.
type MemoryBroker struct {
	mu     sync.Mutex
	topics map[string]map[*memoryListener]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{topics: make(map[string]map[*memoryListener]struct{})}
}

func (b *MemoryBroker) Publish(ctx context.Context, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for l := range b.topics[topic] {
		// Coalesce: a listener with a signal already queued needs no second one.
		select {
		case l.ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, topic string) (Listener, error) {
	l := &memoryListener{
		broker: b,
		topic:  topic,
		ch:     make(chan struct{}, 1),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*memoryListener]struct{})
	}
	b.topics[topic][l] = struct{}{}
	return l, nil
}

type memoryListener struct {
	broker *MemoryBroker
	topic  string
	ch     chan struct{}
	once   sync.Once
}

func (l *memoryListener) Notify() <-chan struct{} {
	return l.ch
}

func (l *memoryListener) Close() error {
	l.once.Do(func() {
		b := l.broker
		b.mu.Lock()
		delete(b.topics[l.topic], l)
		if len(b.topics[l.topic]) == 0 {
			delete(b.topics, l.topic)
		}
		b.mu.Unlock()
		close(l.ch)
	})
	return nil
}
