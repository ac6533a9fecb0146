package schedsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGanttCoalescesContiguousSameOwner(t *testing.T) {
	g := newGanttLog()
	g.append(1, 0, 2)
	g.append(1, 2, 5)
	g.append(IDLE_PID, 5, 6)
	g.append(IDLE_PID, 6, 7)
	g.append(1, 7, 8)

	logs, truncated := g.truncateTo(100)
	assert.False(t, truncated)
	assert.Equal(t, []Segment{seg(1, 0, 5), seg(IDLE_PID, 5, 7), seg(1, 7, 8)}, logs)
}

func TestGanttDoesNotCoalesceAcrossGaps(t *testing.T) {
	g := newGanttLog()
	g.append(1, 0, 2)
	g.append(1, 5, 6) // same owner but not temporally contiguous

	logs, _ := g.truncateTo(100)
	assert.Equal(t, []Segment{seg(1, 0, 2), seg(1, 5, 6)}, logs)
}

func TestGanttTruncation(t *testing.T) {
	g := newGanttLog()
	g.append(1, 0, 1)
	g.append(2, 1, 2)
	g.append(3, 2, 3)

	logs, truncated := g.truncateTo(2)
	assert.True(t, truncated)
	assert.Equal(t, []Segment{seg(1, 0, 1), seg(2, 1, 2)}, logs)

	logs, truncated = g.truncateTo(-1)
	assert.True(t, truncated)
	assert.Empty(t, logs)
}

func TestGanttRejectsEmptySegments(t *testing.T) {
	g := newGanttLog()
	assert.Panics(t, func() { g.append(1, 3, 3) })
}

func TestFifoOrdering(t *testing.T) {
	f := newFifo()
	f.enq(1)
	f.enq(2)
	f.enqFront(3)
	assert.Equal(t, []int{3, 1, 2}, f.getQ())

	assert.Equal(t, 3, f.deq())
	f.remove(2)
	assert.Equal(t, []int{1}, f.getQ())
	assert.Equal(t, 1, f.deq())
	assert.Equal(t, -1, f.deq(), "empty queue dequeues -1")
	assert.Equal(t, 0, f.qlen())
}
