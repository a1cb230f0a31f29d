package live

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBroker_PublishReachesSubscriber(t *testing.T) {
	broker := NewMemoryBroker()
	listener, err := broker.Subscribe(context.Background(), "topic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer listener.Close()

	_ = broker.Publish(context.Background(), "topic")
	select {
	case <-listener.Notify():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for signal")
	}
}

func TestMemoryBroker_TopicIsolation(t *testing.T) {
	broker := NewMemoryBroker()
	listener, err := broker.Subscribe(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer listener.Close()

	_ = broker.Publish(context.Background(), "b")
	select {
	case <-listener.Notify():
		t.Fatal("signal leaked across topics")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBroker_PublishWithoutSubscribers(t *testing.T) {
	broker := NewMemoryBroker()
	if err := broker.Publish(context.Background(), "nobody"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMemoryBroker_CloseClosesNotify(t *testing.T) {
	broker := NewMemoryBroker()
	listener, err := broker.Subscribe(context.Background(), "topic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := listener.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := <-listener.Notify(); ok {
		t.Fatal("expected closed notify channel")
	}

	// Idempotent, and later publishes must not panic on the closed channel.
	if err := listener.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := broker.Publish(context.Background(), "topic"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMemoryBroker_MultipleSubscribers(t *testing.T) {
	broker := NewMemoryBroker()
	first, _ := broker.Subscribe(context.Background(), "topic")
	second, _ := broker.Subscribe(context.Background(), "topic")
	defer first.Close()
	defer second.Close()

	_ = broker.Publish(context.Background(), "topic")
	for _, l := range []Listener{first, second} {
		select {
		case <-l.Notify():
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for signal")
		}
	}
}
