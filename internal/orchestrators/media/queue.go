package media

import (
	"context"
	"sync"
)

// queue is an unbounded FIFO drained by a single worker. It tracks items
// that are queued or in flight so callers can wait for it to go idle.
type queue[T any] struct {
	mu      sync.Mutex
	items   []T
	pending int
	idle    chan struct{}
	wake    chan struct{}
}

func newQueue[T any]() *queue[T] {
	idle := make(chan struct{})
	close(idle)
	return &queue[T]{idle: idle, wake: make(chan struct{}, 1)}
}

func (q *queue[T]) push(items ...T) {
	if len(items) == 0 {
		return
	}

	q.mu.Lock()
	if q.pending == 0 {
		q.idle = make(chan struct{})
	}
	q.items = append(q.items, items...)
	q.pending += len(items)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *queue[T]) pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

func (q *queue[T]) release(n int) {
	if n == 0 {
		return
	}
	q.pending -= n
	if q.pending == 0 {
		close(q.idle)
	}
}

func (q *queue[T]) done() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.release(1)
}

// clear drops queued items; an item in flight still completes
func (q *queue[T]) clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items)
	q.items = nil
	q.release(n)
	return n
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

func (q *queue[T]) idleCh() <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.idle
}

// run drains the queue with handle until ctx is done
func (q *queue[T]) run(ctx context.Context, handle func(context.Context, T)) {
	for {
		for {
			if ctx.Err() != nil {
				return
			}
			item, ok := q.pop()
			if !ok {
				break
			}
			handle(ctx, item)
			q.done()
		}

		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		}
	}
}
