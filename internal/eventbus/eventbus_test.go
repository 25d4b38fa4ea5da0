package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBus() *Bus {
	return New(zap.NewNop())
}

func TestPublish_InvokesHandlersInRegistrationOrder(t *testing.T) {
	bus := newTestBus()

	var order []int
	bus.Subscribe("evt", func(Payload) { order = append(order, 1) })
	bus.Subscribe("evt", func(Payload) { order = append(order, 2) })
	bus.Subscribe("evt", func(Payload) { order = append(order, 3) })

	bus.Publish("evt", nil)

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestPublish_PanickingHandlerIsIsolated(t *testing.T) {
	bus := newTestBus()

	called := false
	bus.Subscribe("evt", func(Payload) { panic("boom") })
	bus.Subscribe("evt", func(Payload) { called = true })

	require.NotPanics(t, func() { bus.Publish("evt", nil) })
	assert.True(t, called, "handler registered after the panicking one must still run")
}

func TestPublish_NoHandlers(t *testing.T) {
	bus := newTestBus()
	require.NotPanics(t, func() { bus.Publish("nobody-listens", Payload{"x": 1}) })
}

func TestPublish_PayloadReachesHandler(t *testing.T) {
	bus := newTestBus()

	var got Payload
	bus.Subscribe("evt", func(p Payload) { got = p })

	bus.Publish("evt", Payload{"newLevel": 5})

	require.NotNil(t, got)
	assert.Equal(t, 5, got["newLevel"])
}

func TestPublish_NestedPublishRunsAfterOuterHandlers(t *testing.T) {
	bus := newTestBus()

	var order []string
	bus.Subscribe("outer", func(Payload) {
		order = append(order, "outer-1")
		bus.Publish("inner", nil)
	})
	bus.Subscribe("outer", func(Payload) { order = append(order, "outer-2") })
	bus.Subscribe("inner", func(Payload) { order = append(order, "inner") })

	bus.Publish("outer", nil)

	assert.Equal(t, []string{"outer-1", "outer-2", "inner"}, order,
		"events published from a handler run after all handlers of the outer event")
}

func TestUnsubscribe_RemovesHandler(t *testing.T) {
	bus := newTestBus()

	calls := 0
	sub := bus.Subscribe("evt", func(Payload) { calls++ })

	bus.Publish("evt", nil)
	bus.Unsubscribe(sub)
	bus.Publish("evt", nil)

	assert.Equal(t, 1, calls)
}

func TestPayload_Amount(t *testing.T) {
	cases := []struct {
		name    string
		payload Payload
		want    int
	}{
		{"missing defaults to one", Payload{}, 1},
		{"int", Payload{"amount": 3}, 3},
		{"int64", Payload{"amount": int64(4)}, 4},
		{"float64", Payload{"amount": 2.0}, 2},
		{"non-numeric defaults to one", Payload{"amount": "many"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.payload.Amount())
		})
	}
}
