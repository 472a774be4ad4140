package jdeob

// queue is a FIFO queue which keeps track of all items that have been in
// the queue, so every item is queued at most once.
type queue[T comparable] struct {
	all   map[T]struct{}
	items []T
}

// newQueue creates a new queue.
func newQueue[T comparable]() *queue[T] {
	return &queue[T]{
		all:   make(map[T]struct{}),
		items: make([]T, 0),
	}
}

// push adds an item to the queue if it was never present.
func (q *queue[T]) push(item T) {
	if _, ok := q.all[item]; !ok {
		q.items = append(q.items, item)
		q.all[item] = struct{}{}
	}
}

// pop removes and returns the first item in the queue.
func (q *queue[T]) pop() T {
	item := q.items[0]
	q.items = q.items[1:]
	return item
}

// empty returns true if the queue is empty.
func (q *queue[T]) empty() bool {
	return len(q.items) == 0
}
