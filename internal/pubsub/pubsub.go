package pubsub

import (
	"sync"

	"statusplay/internal/logger"
)

// Event types emitted by the dashboard
const (
	TypeSnapshotChanged = "snapshot:changed"
	TypeViewSwitched    = "view:switch"
	TypeChatMessage     = "chat:add"
	TypeToast           = "toast"
	TypePresence        = "presence:set"
)

// Event represents one dashboard event fanned out to live clients
type Event struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Toast builds a toast notification event
func Toast(message string) Event {
	return Event{
		Type:    TypeToast,
		Payload: map[string]interface{}{"message": message},
	}
}

// SnapshotChanged builds the event published after a reconcile reported
// a data change
func SnapshotChanged(totalPlayers, activePlayers int) Event {
	return Event{
		Type: TypeSnapshotChanged,
		Payload: map[string]interface{}{
			"totalPlayers":  totalPlayers,
			"activePlayers": activePlayers,
		},
	}
}

// ViewSwitched builds the event published when the active view changes
func ViewSwitched(viewID, title string) Event {
	return Event{
		Type: TypeViewSwitched,
		Payload: map[string]interface{}{
			"view":  viewID,
			"title": title,
		},
	}
}

// Upstream is an interface for upstream publishers (e.g., NATS)
type Upstream interface {
	Publish(Event)
	Subscribe() chan Event
	Unsubscribe(chan Event)
}

// PubSub fans events out to in-process subscribers (SSE streams, the
// WebSocket hub), optionally bridged through an upstream broker so every
// dashboard instance sees every event
type PubSub struct {
	mu          sync.RWMutex
	subscribers []chan Event
	upstream    Upstream
}

// New creates a local-only PubSub
func New() *PubSub {
	return &PubSub{
		subscribers: []chan Event{},
	}
}

// NewWithUpstream creates a PubSub bridged to an upstream broker.
// Publishes go to the upstream, which broadcasts to all instances;
// upstream events are forwarded to local subscribers.
func NewWithUpstream(upstream Upstream) *PubSub {
	ps := &PubSub{
		subscribers: []chan Event{},
		upstream:    upstream,
	}

	go func() {
		ch := upstream.Subscribe()
		for event := range ch {
			ps.publishLocal(event)
		}
		logger.Debug("PubSub: upstream channel closed")
	}()

	return ps
}

// Subscribe adds a new subscriber and returns a channel for receiving events
func (ps *PubSub) Subscribe() chan Event {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan Event, 16)
	ps.subscribers = append(ps.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscriber and closes its channel
func (ps *PubSub) Unsubscribe(ch chan Event) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for i, sub := range ps.subscribers {
		if sub == ch {
			close(ch)
			ps.subscribers = append(ps.subscribers[:i], ps.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers, routing through the
// upstream broker when one is configured
func (ps *PubSub) Publish(event Event) {
	if ps.upstream != nil {
		ps.upstream.Publish(event)
		return
	}
	ps.publishLocal(event)
}

func (ps *PubSub) publishLocal(event Event) {
	ps.mu.RLock()
	subs := make([]chan Event, len(ps.subscribers))
	copy(subs, ps.subscribers)
	ps.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
			// Slow subscriber; drop rather than block the publisher
		}
	}
}
