package event

// Handler processes the event types it declares
// Systems implement this interface to receive bus events
type Handler interface {
	// HandleEvent processes a single event, called synchronously from Publish
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to a Handler for a fixed set of types
type HandlerFunc struct {
	Types []EventType
	Fn    func(GameEvent)
}

func (h HandlerFunc) HandleEvent(ev GameEvent) { h.Fn(ev) }
func (h HandlerFunc) EventTypes() []EventType  { return h.Types }

// Bus dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded synchronous dispatch, owned by the simulation tick
//   - Multiple handlers per type, invoked in registration order
//   - Handlers may publish further events; they are dispatched depth-first
type Bus struct {
	handlers [eventTypeCount][]Handler
	counts   [eventTypeCount]uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler for its declared event types
func (b *Bus) Subscribe(h Handler) {
	for _, t := range h.EventTypes() {
		if t < 0 || t >= eventTypeCount {
			continue
		}
		b.handlers[t] = append(b.handlers[t], h)
	}
}

// On registers fn for a single event type
func (b *Bus) On(t EventType, fn func(GameEvent)) {
	b.Subscribe(HandlerFunc{Types: []EventType{t}, Fn: fn})
}

// Publish dispatches ev to every handler of its type
func (b *Bus) Publish(ev GameEvent) {
	if ev.Type < 0 || ev.Type >= eventTypeCount {
		return
	}
	b.counts[ev.Type]++
	for _, h := range b.handlers[ev.Type] {
		h.HandleEvent(ev)
	}
}

// HandlerCount returns the number of handlers registered for t
func (b *Bus) HandlerCount(t EventType) int {
	if t < 0 || t >= eventTypeCount {
		return 0
	}
	return len(b.handlers[t])
}

// Published returns how many events of type t have been published
func (b *Bus) Published(t EventType) uint64 {
	if t < 0 || t >= eventTypeCount {
		return 0
	}
	return b.counts[t]
}
