package console

import "sync/atomic"

// queue is a bounded single-producer/single-consumer FIFO of pool slot
// indices. One goroutine may enqueue while another dequeues; neither ever
// blocks or allocates.
type queue struct {
	slots []int
	head  atomic.Uint64 // advanced by the consumer
	tail  atomic.Uint64 // advanced by the producer
}

func newQueue(capacity int) *queue {
	return &queue{slots: make([]int, capacity)}
}

// enqueue appends slot at the tail. It reports false if the queue is full,
// which cannot happen while every buffer sits in at most one queue.
func (q *queue) enqueue(slot int) bool {
	t := q.tail.Load()
	if t-q.head.Load() == uint64(len(q.slots)) {
		return false
	}
	q.slots[t%uint64(len(q.slots))] = slot
	q.tail.Store(t + 1)
	return true
}

// dequeue removes the head slot, or reports false if the queue is empty.
func (q *queue) dequeue() (int, bool) {
	h := q.head.Load()
	if h == q.tail.Load() {
		return 0, false
	}
	slot := q.slots[h%uint64(len(q.slots))]
	q.head.Store(h + 1)
	return slot, true
}

func (q *queue) len() int {
	return int(q.tail.Load() - q.head.Load())
}

// reset empties the queue. Only safe while neither side is running.
func (q *queue) reset() {
	q.head.Store(0)
	q.tail.Store(0)
}
