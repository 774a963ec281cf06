package fill

import (
	"fmt"
	"strings"
)

// Order selects the ordering structure that drives a fill.
type Order int

const (
	// BreadthFirst expands a region nearest-first using a FIFO queue.
	BreadthFirst Order = iota
	// DepthFirst follows one path as deep as it goes before backtracking,
	// using a LIFO stack.
	DepthFirst
)

func (o Order) String() string {
	switch o {
	case BreadthFirst:
		return "bfs"
	case DepthFirst:
		return "dfs"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder accepts "bfs"/"breadth-first" and "dfs"/"depth-first",
// case-insensitively. The empty string selects BreadthFirst.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bfs", "breadth-first", "breadth_first":
		return BreadthFirst, nil
	case "dfs", "depth-first", "depth_first":
		return DepthFirst, nil
	default:
		return 0, fmt.Errorf("%w: unknown fill order %q (want bfs or dfs)", ErrConfig, s)
	}
}

type orderingStructure interface {
	Add(p Point)
	Remove() Point
	IsEmpty() bool
}

func newOrderingStructure(o Order) orderingStructure {
	if o == DepthFirst {
		return &Stack{}
	}
	return &Queue{}
}

// Queue is a FIFO container of points.
type Queue struct {
	items []Point
	head  int
}

// Add appends p to the back of the queue.
func (q *Queue) Add(p Point) {
	q.items = append(q.items, p)
}

// Remove returns the earliest added point that has not been removed yet.
// It panics on an empty queue.
func (q *Queue) Remove() Point {
	if q.IsEmpty() {
		panic("fill: Remove on empty queue")
	}
	p := q.items[q.head]
	q.items[q.head] = Point{}
	q.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 64 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return p
}

// IsEmpty reports whether every added point has been removed.
func (q *Queue) IsEmpty() bool { return q.head >= len(q.items) }

// Len returns the number of points waiting in the queue.
func (q *Queue) Len() int { return len(q.items) - q.head }

// Stack is a LIFO container of points.
type Stack struct {
	items []Point
}

// Add pushes p on top of the stack.
func (s *Stack) Add(p Point) {
	s.items = append(s.items, p)
}

// Remove pops the most recently added point. It panics on an empty stack.
func (s *Stack) Remove() Point {
	if s.IsEmpty() {
		panic("fill: Remove on empty stack")
	}
	last := len(s.items) - 1
	p := s.items[last]
	s.items = s.items[:last]
	return p
}

// IsEmpty reports whether the stack holds no points.
func (s *Stack) IsEmpty() bool { return len(s.items) == 0 }

// Len returns the number of points on the stack.
func (s *Stack) Len() int { return len(s.items) }
