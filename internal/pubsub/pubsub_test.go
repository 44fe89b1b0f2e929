package pubsub

import (
	"testing"
	"time"

	"statusplay/internal/logger"
)

func init() {
	logger.Init("error")
}

func TestLocalPublishSubscribe(t *testing.T) {
	ps := New()
	ch := ps.Subscribe()
	defer ps.Unsubscribe(ch)

	ps.Publish(Toast("You joined team: Falcons"))

	select {
	case ev := <-ch:
		if ev.Type != TypeToast {
			t.Errorf("expected %s, got %s", TypeToast, ev.Type)
		}
		if ev.Payload["message"] != "You joined team: Falcons" {
			t.Errorf("unexpected payload: %v", ev.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestFanOutToMultipleSubscribers(t *testing.T) {
	ps := New()
	a := ps.Subscribe()
	b := ps.Subscribe()
	defer ps.Unsubscribe(a)
	defer ps.Unsubscribe(b)

	ps.Publish(SnapshotChanged(12, 5))

	for _, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev.Type != TypeSnapshotChanged {
				t.Errorf("expected %s, got %s", TypeSnapshotChanged, ev.Type)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	ps := New()
	ch := ps.Subscribe()

	ps.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic
	ps.Publish(Toast("still fine"))
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	ps := New()
	ch := ps.Subscribe()
	defer ps.Unsubscribe(ch)

	// Fill the buffer without draining; extra publishes are dropped
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			ps.Publish(Toast("burst"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestUpstreamBridging(t *testing.T) {
	upstream := New()
	bridged := NewWithUpstream(upstream)

	local := bridged.Subscribe()
	defer bridged.Unsubscribe(local)

	// Give the bridge goroutine a moment to subscribe upstream
	time.Sleep(20 * time.Millisecond)

	bridged.Publish(ViewSwitched("courts", "Court Status"))

	select {
	case ev := <-local:
		if ev.Type != TypeViewSwitched {
			t.Errorf("expected %s, got %s", TypeViewSwitched, ev.Type)
		}
		if ev.Payload["view"] != "courts" {
			t.Errorf("unexpected payload: %v", ev.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("upstream event was not forwarded to local subscriber")
	}
}

func TestEventConstructors(t *testing.T) {
	ev := SnapshotChanged(10, 4)
	if ev.Payload["totalPlayers"] != 10 || ev.Payload["activePlayers"] != 4 {
		t.Errorf("unexpected payload: %v", ev.Payload)
	}

	ev = ViewSwitched("info", "Team Rankings")
	if ev.Payload["title"] != "Team Rankings" {
		t.Errorf("unexpected payload: %v", ev.Payload)
	}
}
