package pubsub

import (
	"testing"
	"time"
)

func TestNewEmbeddedNATSPubSub(t *testing.T) {
	ps, err := NewEmbeddedNATSPubSub(DefaultEmbeddedNATSOptions())
	if err != nil {
		t.Fatalf("Failed to create embedded NATS: %v", err)
	}
	defer ps.Close()

	if ps.server == nil {
		t.Error("server should not be nil")
	}
	if ps.nc == nil {
		t.Error("NATS connection should not be nil")
	}
	if ps.js == nil {
		t.Error("JetStream context should not be nil")
	}
}

func TestEmbeddedNATSServerURL(t *testing.T) {
	ps, err := NewEmbeddedNATSPubSub(DefaultEmbeddedNATSOptions())
	if err != nil {
		t.Fatalf("Failed to create embedded NATS: %v", err)
	}
	defer ps.Close()

	url := ps.ServerURL()
	if url == "" {
		t.Error("server URL should not be empty")
	}
	t.Logf("Embedded NATS URL: %s", url)
}

func TestEmbeddedNATSPublishSubscribe(t *testing.T) {
	ps, err := NewEmbeddedNATSPubSub(DefaultEmbeddedNATSOptions())
	if err != nil {
		t.Fatalf("Failed to create embedded NATS: %v", err)
	}
	defer ps.Close()

	ch := ps.Subscribe()
	defer ps.Unsubscribe(ch)

	ps.Publish(Toast("You're confirmed! 🎾"))

	select {
	case ev := <-ch:
		if ev.Type != TypeToast {
			t.Errorf("expected %s, got %s", TypeToast, ev.Type)
		}
		if ev.Payload["message"] != "You're confirmed! 🎾" {
			t.Errorf("unexpected payload: %v", ev.Payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event through embedded NATS")
	}
}

func TestEmbeddedNATSUnsubscribeClosesChannel(t *testing.T) {
	ps, err := NewEmbeddedNATSPubSub(DefaultEmbeddedNATSOptions())
	if err != nil {
		t.Fatalf("Failed to create embedded NATS: %v", err)
	}
	defer ps.Close()

	ch := ps.Subscribe()
	ps.Unsubscribe(ch)

	select {
	case _, open := <-ch:
		if open {
			t.Error("channel should be closed after Unsubscribe")
		}
	case <-time.After(time.Second):
		t.Error("closed channel should yield immediately")
	}
}
