// Package channel moves sync payloads between session participants. The
// channel is best effort: no acknowledgment, no redelivery, and no sender
// exclusion — a participant's own messages come back to its subscribers, so
// receivers must self-filter by sender identity.
package channel

import (
	"context"
	"sync"
)

// Handler consumes one inbound payload. Handlers must not panic; the
// reconciler wraps its own recovery, but the channel makes no promises.
type Handler func(payload []byte)

// Channel is one participant's handle on the shared broadcast bus.
type Channel interface {
	Publish(ctx context.Context, payload []byte) error
	Subscribe(h Handler)
}

// Runner is implemented by channels that need a pump goroutine (the
// websocket client). Controllers start it when present.
type Runner interface {
	Run(ctx context.Context) error
}

// Loopback is an in-process bus for tests and single-process sessions.
// Delivery is synchronous and reaches every subscriber, the publisher's own
// included.
type Loopback struct {
	mu   sync.Mutex
	subs []Handler
}

func NewLoopback() *Loopback {
	return &Loopback{}
}

// Endpoint returns a participant handle on the bus.
func (l *Loopback) Endpoint() Channel {
	return &loopEndpoint{bus: l}
}

func (l *Loopback) deliver(payload []byte) {
	l.mu.Lock()
	subs := make([]Handler, len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()
	for _, h := range subs {
		h(payload)
	}
}

type loopEndpoint struct {
	bus *Loopback
}

func (e *loopEndpoint) Publish(_ context.Context, payload []byte) error {
	e.bus.deliver(payload)
	return nil
}

func (e *loopEndpoint) Subscribe(h Handler) {
	e.bus.mu.Lock()
	e.bus.subs = append(e.bus.subs, h)
	e.bus.mu.Unlock()
}
