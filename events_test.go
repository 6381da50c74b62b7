package meridian

import "testing"

func TestListenersFireInRegistrationOrder(t *testing.T) {
	m := NewMap(MapOptions{})
	var order []int
	m.On(EventClick, func(Event) { order = append(order, 1) })
	m.On(EventClick, func(Event) { order = append(order, 2) })
	m.On(EventClick, func(Event) { order = append(order, 3) })

	m.events.fire(Event{Type: EventClick})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("fire order = %v, want [1 2 3]", order)
	}
}

func TestListenerReceivesPayload(t *testing.T) {
	m := NewMap(MapOptions{})
	var got Event
	m.On(EventMove, func(ev Event) { got = ev })

	m.events.fire(Event{Type: EventMove, LngLat: LngLat{10, 20}})

	if got.Type != EventMove {
		t.Errorf("Type = %v, want EventMove", got.Type)
	}
	if got.LngLat != (LngLat{10, 20}) {
		t.Errorf("LngLat = %v, want {10 20}", got.LngLat)
	}
}

func TestOnceFiresAtMostOnce(t *testing.T) {
	m := NewMap(MapOptions{})
	count := 0
	m.Once(EventZoom, func(Event) { count++ })

	m.events.fire(Event{Type: EventZoom})
	m.events.fire(Event{Type: EventZoom})

	if count != 1 {
		t.Errorf("once listener fired %d times, want 1", count)
	}
}

func TestHandleRemove(t *testing.T) {
	m := NewMap(MapOptions{})
	count := 0
	h := m.On(EventClick, func(Event) { count++ })

	m.events.fire(Event{Type: EventClick})
	h.Remove()
	h.Remove() // idempotent
	m.events.fire(Event{Type: EventClick})

	if count != 1 {
		t.Errorf("listener fired %d times after removal, want 1", count)
	}
}

func TestZeroHandleRemoveIsNoop(t *testing.T) {
	var h ListenerHandle
	h.Remove() // must not panic
}

func TestListenerRemovingItselfMidFire(t *testing.T) {
	m := NewMap(MapOptions{})
	var h ListenerHandle
	first, second := 0, 0
	h = m.On(EventClick, func(Event) {
		first++
		h.Remove()
	})
	m.On(EventClick, func(Event) { second++ })

	m.events.fire(Event{Type: EventClick})
	m.events.fire(Event{Type: EventClick})

	if first != 1 {
		t.Errorf("self-removing listener fired %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("second listener fired %d times, want 2", second)
	}
}

func TestListenerTypesAreIndependent(t *testing.T) {
	m := NewMap(MapOptions{})
	clicks, moves := 0, 0
	m.On(EventClick, func(Event) { clicks++ })
	m.On(EventMove, func(Event) { moves++ })

	m.events.fire(Event{Type: EventClick})

	if clicks != 1 || moves != 0 {
		t.Errorf("clicks, moves = %d, %d, want 1, 0", clicks, moves)
	}
}

func TestListenerCount(t *testing.T) {
	m := NewMap(MapOptions{})
	h1 := m.On(EventClick, func(Event) {})
	m.On(EventMove, func(Event) {})
	m.Once(EventZoom, func(Event) {})

	if got := m.Stats().Listeners; got != 3 {
		t.Errorf("Listeners = %d, want 3", got)
	}
	h1.Remove()
	if got := m.Stats().Listeners; got != 2 {
		t.Errorf("Listeners after remove = %d, want 2", got)
	}
}
