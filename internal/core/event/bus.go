package event

// Queue is a double-buffered queue for one event type. Events emitted in
// tick N are delivered in tick N+1, after SwapBuffers.
type Queue[T any] struct {
	front    []T
	back     []T
	handlers []func(T)
}

// Emit queues an event into the back buffer (will be readable next tick).
func (q *Queue[T]) Emit(ev T) {
	q.back = append(q.back, ev)
}

// Subscribe registers a handler for this event type.
func (q *Queue[T]) Subscribe(fn func(T)) {
	q.handlers = append(q.handlers, fn)
}

func (q *Queue[T]) swap() {
	q.front, q.back = q.back, q.front[:0]
}

func (q *Queue[T]) dispatch() int {
	for _, ev := range q.front {
		for _, h := range q.handlers {
			h(ev)
		}
	}
	return len(q.front)
}

type queue interface {
	swap()
	dispatch() int
}

// Bus swaps and dispatches a set of typed queues together, once per tick.
type Bus struct {
	queues []queue
}

func NewBus() *Bus {
	return &Bus{}
}

// NewQueue creates a queue for events of type T driven by b.
func NewQueue[T any](b *Bus) *Queue[T] {
	q := &Queue[T]{}
	b.queues = append(b.queues, q)
	return q
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	for _, q := range b.queues {
		q.swap()
	}
}

// DispatchAll delivers all front-buffer events to their subscribed handlers
// and returns how many events were delivered.
func (b *Bus) DispatchAll() int {
	n := 0
	for _, q := range b.queues {
		n += q.dispatch()
	}
	return n
}
