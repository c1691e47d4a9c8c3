package events

// Handler processes specific event types
// Audio, logging and HUD adapters implement this interface to receive routed notices
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously from the frame loop, must not block
	HandleEvent(event GameEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for a fixed set of types
type HandlerFunc struct {
	Types []EventType
	Fn    func(GameEvent)
}

func (h HandlerFunc) HandleEvent(event GameEvent) { h.Fn(event) }
func (h HandlerFunc) EventTypes() []EventType    { return h.Types }

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//
// Registration must complete before the first dispatch
type Router struct {
	handlers map[EventType][]Handler
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{handlers: make(map[EventType][]Handler)}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// HandleNotice routes one event to its handlers
func (r *Router) HandleNotice(ev GameEvent) {
	for _, h := range r.handlers[ev.Type] {
		h.HandleEvent(ev)
	}
}

// DispatchAll consumes all pending events from queue in FIFO order
func (r *Router) DispatchAll(queue *EventQueue) int {
	pending := queue.Consume()
	for _, ev := range pending {
		r.HandleNotice(ev)
	}
	return len(pending)
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router) HasHandlers(t EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
