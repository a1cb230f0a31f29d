package live

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBroker carries change signals over Redis pub/sub so every server
// instance observes writes committed through any other instance.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, topic string) error {
	return b.client.Publish(ctx, topic, "1").Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, topic string) (Listener, error) {
	sub := b.client.Subscribe(ctx, topic)

	// Force the SUBSCRIBE round-trip so a broken connection surfaces here
	// rather than as a silently idle listener.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	l := &redisListener{
		sub: sub,
		ch:  make(chan struct{}, 1),
	}
	go l.pump()
	return l, nil
}

type redisListener struct {
	sub  *redis.PubSub
	ch   chan struct{}
	once sync.Once
}

func (l *redisListener) pump() {
	defer close(l.ch)
	for range l.sub.Channel() {
		select {
		case l.ch <- struct{}{}:
		default:
		}
	}
}

func (l *redisListener) Notify() <-chan struct{} {
	return l.ch
}

func (l *redisListener) Close() error {
	var err error
	l.once.Do(func() {
		err = l.sub.Close()
	})
	return err
}
