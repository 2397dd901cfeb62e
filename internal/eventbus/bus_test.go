package eventbus_test

import (
	"context"
	"errors"
	"testing"

	"go-employee/internal/eventbus"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingRelay struct {
	events []eventbus.Event
	err    error
}

func (r *recordingRelay) Broadcast(ctx context.Context, ev eventbus.Event) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestBus_PublishDeliversInRegistrationOrder(t *testing.T) {
	bus := eventbus.New(eventbus.WithLogger(zap.NewNop()))

	var order []string
	bus.Subscribe("employees", func(ev eventbus.Event) {
		order = append(order, "first")
	})
	bus.Subscribe("employees", func(ev eventbus.Event) {
		order = append(order, "second")
	})
	bus.Subscribe("employees", func(ev eventbus.Event) {
		order = append(order, "third")
	})

	bus.Publish("employees", "payload")

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_PublishOnlyReachesMatchingKey(t *testing.T) {
	bus := eventbus.New(eventbus.WithLogger(zap.NewNop()))

	employeeCalls := 0
	divisionCalls := 0
	bus.Subscribe("employees", func(ev eventbus.Event) { employeeCalls++ })
	bus.Subscribe("divisions", func(ev eventbus.Event) { divisionCalls++ })

	bus.Publish("employees", nil)
	bus.Publish("employees", nil)

	assert.Equal(t, 2, employeeCalls)
	assert.Equal(t, 0, divisionCalls)
}

func TestBus_HandlerReceivesKeyAndValue(t *testing.T) {
	bus := eventbus.New(eventbus.WithLogger(zap.NewNop()))

	var got eventbus.Event
	bus.Subscribe("employees", func(ev eventbus.Event) { got = ev })

	bus.Publish("employees", "signal-42")

	assert.Equal(t, "employees", got.Key)
	assert.Equal(t, "signal-42", got.Value)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := eventbus.New(eventbus.WithLogger(zap.NewNop()))

	t.Run("cancel stops delivery", func(t *testing.T) {
		calls := 0
		cancel := bus.Subscribe("employees", func(ev eventbus.Event) { calls++ })

		bus.Publish("employees", nil)
		cancel()
		bus.Publish("employees", nil)

		assert.Equal(t, 1, calls)
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		calls := 0
		cancel := bus.Subscribe("employees", func(ev eventbus.Event) { calls++ })

		cancel()
		cancel() // tidak boleh panic atau melepas subscriber lain

		bus.Publish("employees", nil)
		assert.Equal(t, 0, calls)
	})

	t.Run("cancel only removes its own handler", func(t *testing.T) {
		first := 0
		second := 0
		cancelFirst := bus.Subscribe("employees", func(ev eventbus.Event) { first++ })
		bus.Subscribe("employees", func(ev eventbus.Event) { second++ })

		cancelFirst()
		bus.Publish("employees", nil)

		assert.Equal(t, 0, first)
		assert.Equal(t, 1, second)
	})
}

func TestBus_LateSubscriberMissesEarlierPublish(t *testing.T) {
	bus := eventbus.New(eventbus.WithLogger(zap.NewNop()))

	bus.Publish("employees", "before")

	calls := 0
	bus.Subscribe("employees", func(ev eventbus.Event) { calls++ })

	// tidak ada replay: hanya publish setelah subscribe yang sampai
	assert.Equal(t, 0, calls)

	bus.Publish("employees", "after")
	assert.Equal(t, 1, calls)
}

func TestBus_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := eventbus.New(eventbus.WithLogger(zap.NewNop()))

	var order []string
	bus.Subscribe("employees", func(ev eventbus.Event) {
		order = append(order, "first")
		panic("boom")
	})
	bus.Subscribe("employees", func(ev eventbus.Event) {
		order = append(order, "second")
	})

	assert.NotPanics(t, func() {
		bus.Publish("employees", nil)
	})
	assert.Equal(t, []string{"first", "second"}, order)

	// bus tetap sehat setelah panic
	bus.Publish("employees", nil)
	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
}

func TestBus_PublishGoesThroughRelays(t *testing.T) {
	first := &recordingRelay{}
	second := &recordingRelay{err: errors.New("broker down")}
	bus := eventbus.New(
		eventbus.WithLogger(zap.NewNop()),
		eventbus.WithRelay(first),
		eventbus.WithRelay(second),
	)

	local := 0
	bus.Subscribe("employees", func(ev eventbus.Event) { local++ })

	bus.Publish("employees", "payload")

	assert.Equal(t, 1, local)
	assert.Len(t, first.events, 1)
	assert.Equal(t, "employees", first.events[0].Key)
	// relay yang gagal tidak menggagalkan publish maupun relay lain
	assert.Len(t, second.events, 1)
}

func TestBus_DispatchSkipsRelays(t *testing.T) {
	relay := &recordingRelay{}
	bus := eventbus.New(eventbus.WithLogger(zap.NewNop()), eventbus.WithRelay(relay))

	local := 0
	bus.Subscribe("employees", func(ev eventbus.Event) { local++ })

	// Dispatch dipakai relay untuk event remote: harus lokal saja,
	// tidak boleh dipantulkan balik ke transport.
	bus.Dispatch("employees", "remote")

	assert.Equal(t, 1, local)
	assert.Empty(t, relay.events)
}

func TestBus_SubscribeDuringDeliveryDoesNotReceiveCurrentEvent(t *testing.T) {
	bus := eventbus.New(eventbus.WithLogger(zap.NewNop()))

	lateCalls := 0
	bus.Subscribe("employees", func(ev eventbus.Event) {
		bus.Subscribe("employees", func(ev eventbus.Event) { lateCalls++ })
	})

	bus.Publish("employees", nil)
	assert.Equal(t, 0, lateCalls)

	bus.Publish("employees", nil)
	assert.Equal(t, 1, lateCalls)
}
