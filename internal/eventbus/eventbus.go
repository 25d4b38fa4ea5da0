// Package eventbus implements the process-wide synchronous publish/subscribe
// dispatcher that decouples game-state mutation from reactive rule
// evaluation.
package eventbus

import (
	"sync"

	"go.uber.org/zap"
)

// Payload carries event data. Missing keys are treated as absent by
// consumers; the bus itself never inspects it.
type Payload map[string]any

// Amount returns the numeric "amount" field of the payload, defaulting to 1.
// Quest progress events use it to advance by more than one step.
func (p Payload) Amount() int {
	switch v := p["amount"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 1
	}
}

// Handler receives a published event's payload.
type Handler func(payload Payload)

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	event string
	id    int
}

type registration struct {
	id int
	fn Handler
}

type queuedEvent struct {
	name    string
	payload Payload
}

// Bus is a direct, blocking fan-out dispatcher. Publish invokes every
// handler registered for the event name synchronously, in registration
// order, on the calling goroutine. A panicking handler is recovered and
// logged; subsequent handlers still run and Publish never fails.
//
// Events published from inside a handler are queued and dispatched after all
// handlers of the current event have completed, so causality follows publish
// order.
type Bus struct {
	mu          sync.Mutex
	nextID      int
	handlers    map[string][]registration
	queue       []queuedEvent
	dispatching bool
	logger      *zap.Logger
}

// New creates an empty bus.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]registration),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event name. Handlers run in the order
// they were registered.
func (b *Bus) Subscribe(event string, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[event] = append(b.handlers[event], registration{id: b.nextID, fn: fn})
	b.logger.Debug("subscribed to event", zap.String("event", event))

	return Subscription{event: event, id: b.nextID}
}

// Unsubscribe removes a previously registered handler. Removing an unknown
// subscription is a no-op; subscriptions normally live for the whole
// process.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[sub.event]
	for i, r := range regs {
		if r.id == sub.id {
			b.handlers[sub.event] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish dispatches the event to all registered handlers. When called from
// inside a handler the event is queued and dispatched once the handlers of
// the in-flight event have all run.
func (b *Bus) Publish(event string, payload Payload) {
	if payload == nil {
		payload = Payload{}
	}

	b.mu.Lock()
	b.queue = append(b.queue, queuedEvent{name: event, payload: payload})
	if b.dispatching {
		b.mu.Unlock()
		return
	}
	b.dispatching = true
	b.mu.Unlock()

	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.dispatching = false
			b.mu.Unlock()
			return
		}
		next := b.queue[0]
		b.queue = b.queue[1:]
		regs := make([]registration, len(b.handlers[next.name]))
		copy(regs, b.handlers[next.name])
		b.mu.Unlock()

		b.logger.Debug("publishing event",
			zap.String("event", next.name),
			zap.Int("handlers", len(regs)),
		)

		for _, r := range regs {
			b.invoke(next.name, r, next.payload)
		}
	}
}

func (b *Bus) invoke(event string, r registration, payload Payload) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("event handler failed",
				zap.String("event", event),
				zap.Any("error", rec),
			)
		}
	}()

	r.fn(payload)
}
