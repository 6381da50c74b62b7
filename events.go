package meridian

// listener is one registered callback for a map event.
type listener struct {
	id   uint32
	fn   func(Event)
	once bool
}

// eventRegistry stores map-level listeners keyed by event type.
type eventRegistry struct {
	listeners map[EventType][]listener
	nextID    uint32
	fireBuf   []listener // reused snapshot so callbacks can remove listeners mid-fire
}

// ListenerHandle allows removing a registered map-level listener.
type ListenerHandle struct {
	id    uint32
	reg   *eventRegistry
	event EventType
}

// Remove unregisters this listener so it no longer fires. Safe to call more
// than once.
func (h ListenerHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.event, h.id)
}

// On registers a listener for the given event type and returns a handle for
// removal. Listeners fire in registration order.
func (m *Map) On(event EventType, fn func(Event)) ListenerHandle {
	return m.events.add(event, fn, false)
}

// Once registers a listener that fires at most once and then removes itself.
func (m *Map) Once(event EventType, fn func(Event)) ListenerHandle {
	return m.events.add(event, fn, true)
}

func (r *eventRegistry) add(event EventType, fn func(Event), once bool) ListenerHandle {
	if r.listeners == nil {
		r.listeners = make(map[EventType][]listener)
	}
	r.nextID++
	id := r.nextID
	r.listeners[event] = append(r.listeners[event], listener{id: id, fn: fn, once: once})
	return ListenerHandle{id: id, reg: r, event: event}
}

func (r *eventRegistry) remove(event EventType, id uint32) {
	s := r.listeners[event]
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			r.listeners[event] = s[:len(s)-1]
			return
		}
	}
}

// fire invokes all listeners for ev.Type. Iteration runs over a snapshot so
// a callback may remove listeners (including itself) without skipping any.
func (r *eventRegistry) fire(ev Event) {
	s := r.listeners[ev.Type]
	if len(s) == 0 {
		return
	}
	r.fireBuf = append(r.fireBuf[:0], s...)
	for _, l := range r.fireBuf {
		if l.once {
			r.remove(ev.Type, l.id)
		}
		l.fn(ev)
	}
}

// count returns the total number of registered listeners across all events.
func (r *eventRegistry) count() int {
	n := 0
	for _, s := range r.listeners {
		n += len(s)
	}
	return n
}

// clear drops every listener. Called from Map.Destroy.
func (r *eventRegistry) clear() {
	r.listeners = nil
	r.fireBuf = nil
}
