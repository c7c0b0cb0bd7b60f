package atom

import (
	"testing"
)

func TestBusEmitOrder(t *testing.T) {
	bus := NewBus[int]()

	var order []string
	bus.On(func(v int) { order = append(order, "first") })
	bus.On(func(v int) { order = append(order, "second") })
	bus.On(func(v int) { order = append(order, "third") })

	bus.Emit(1)

	if len(order) != 3 {
		t.Fatalf("Expected 3 invocations, got %d", len(order))
	}
	if order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Errorf("Handlers ran out of subscription order: %v", order)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus[int]()

	count := 0
	cancel := bus.On(func(v int) { count++ })

	bus.Emit(1)
	cancel()
	bus.Emit(2)

	if count != 1 {
		t.Errorf("Expected 1 invocation after unsubscribe, got %d", count)
	}

	// Cancel must be idempotent
	cancel()
	if bus.Len() != 0 {
		t.Errorf("Expected empty bus, got %d subscribers", bus.Len())
	}
}

func TestBusUnsubscribeDuringEmit(t *testing.T) {
	bus := NewBus[int]()

	var order []int
	bus.On(func(v int) { order = append(order, 1) })

	var cancelSecond func()
	cancelSecond = bus.On(func(v int) {
		order = append(order, 2)
		cancelSecond()
	})

	bus.On(func(v int) { order = append(order, 3) })

	// The second handler removes itself mid-emission; the third must
	// still run in this pass.
	bus.Emit(0)

	if len(order) != 3 || order[2] != 3 {
		t.Fatalf("Expected all three handlers in first pass, got %v", order)
	}

	bus.Emit(0)
	if len(order) != 5 {
		t.Errorf("Expected handlers 1 and 3 in second pass, got %v", order[3:])
	}
}

func TestBusSubscribeDuringEmit(t *testing.T) {
	bus := NewBus[int]()

	count := 0
	bus.On(func(v int) {
		if count == 0 {
			bus.On(func(v int) { count += 10 })
		}
		count++
	})

	// A handler added mid-emission is not part of the current snapshot.
	bus.Emit(0)
	if count != 1 {
		t.Fatalf("Expected late subscriber to miss the first pass, count=%d", count)
	}

	bus.Emit(0)
	if count != 12 {
		t.Errorf("Expected late subscriber in second pass, count=%d", count)
	}
}

func TestBusOnce(t *testing.T) {
	bus := NewBus[string]()

	count := 0
	bus.Once(func(v string) { count++ })

	bus.Emit("a")
	bus.Emit("b")

	if count != 1 {
		t.Errorf("Expected once handler to fire exactly once, got %d", count)
	}
	if bus.Len() != 0 {
		t.Errorf("Expected once handler removed, %d subscribers remain", bus.Len())
	}
}

func TestBusOnceCancelBeforeEmit(t *testing.T) {
	bus := NewBus[string]()

	count := 0
	cancel := bus.Once(func(v string) { count++ })
	cancel()

	bus.Emit("a")
	if count != 0 {
		t.Errorf("Expected canceled once handler never to fire, got %d", count)
	}
}

func TestBusClear(t *testing.T) {
	bus := NewBus[int]()

	count := 0
	bus.On(func(v int) { count++ })
	bus.On(func(v int) { count++ })

	bus.Clear()
	bus.Emit(1)

	if count != 0 {
		t.Errorf("Expected no invocations after clear, got %d", count)
	}
}

func TestBusHandlerPanicPropagates(t *testing.T) {
	bus := NewBus[int]()

	reached := false
	bus.On(func(v int) { panic("handler failure") })
	bus.On(func(v int) { reached = true })

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Expected handler panic to propagate to Emit's caller")
		}
		if reached {
			t.Error("Expected later handler to be skipped after panic")
		}
	}()

	bus.Emit(1)
}
