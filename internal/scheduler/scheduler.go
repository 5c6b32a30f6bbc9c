package scheduler

import "container/heap"

// positions implements heap.Interface as a min-heap of ints.
type positions []int

func (p positions) Len() int           { return len(p) }
func (p positions) Less(i, j int) bool { return p[i] < p[j] }
func (p positions) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

func (p *positions) Push(x any) { *p = append(*p, x.(int)) }

func (p *positions) Pop() any {
	old := *p
	n := len(old)
	x := old[n-1]
	*p = old[:n-1]
	return x
}

// ReadyQueue is the default Scheduler: a min-heap keyed by registration
// position. It is not safe for concurrent use; the executor drives it from a
// single coordinating goroutine.
type ReadyQueue struct {
	items positions
}

// New creates an empty ready queue.
func New() Scheduler {
	return &ReadyQueue{}
}

// Push implements the Scheduler interface.
func (q *ReadyQueue) Push(pos int) {
	heap.Push(&q.items, pos)
}

// Pop implements the Scheduler interface.
func (q *ReadyQueue) Pop() int {
	return heap.Pop(&q.items).(int)
}

// Len implements the Scheduler interface.
func (q *ReadyQueue) Len() int {
	return q.items.Len()
}
