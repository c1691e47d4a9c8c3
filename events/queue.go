package events

import (
	"sync/atomic"

	"github.com/lixenwraith/swimrace/constants"
)

type queueSlot struct {
	// seq == position: free for the producer claiming position
	// seq == position+1: holds the event for that position
	seq atomic.Uint64
	ev  GameEvent
}

// EventQueue is a bounded lock-free queue between host goroutines and the frame loop
// Any goroutine may Push; Pop, Consume and Discard belong to a single consumer
// A full queue refuses new events instead of overwriting unread ones, so a caller
// can account for every event it failed to hand over
type EventQueue struct {
	slots [constants.EventQueueSize]queueSlot
	head  atomic.Uint64
	tail  atomic.Uint64
}

func NewEventQueue() *EventQueue {
	eq := &EventQueue{}
	for i := range eq.slots {
		eq.slots[i].seq.Store(uint64(i))
	}
	return eq
}

// Push enqueues event, returning false when the queue is full
func (eq *EventQueue) Push(event GameEvent) bool {
	for {
		pos := eq.tail.Load()
		slot := &eq.slots[pos&constants.EventBufferMask]
		seq := slot.seq.Load()

		switch {
		case seq == pos:
			if eq.tail.CompareAndSwap(pos, pos+1) {
				slot.ev = event
				slot.seq.Store(pos + 1)
				return true
			}
		case seq < pos:
			// Slot still holds an event from the previous lap
			return false
		}
	}
}

// Pop removes the oldest event; ok is false when empty or the oldest slot is mid-write
func (eq *EventQueue) Pop() (GameEvent, bool) {
	pos := eq.head.Load()
	slot := &eq.slots[pos&constants.EventBufferMask]
	if slot.seq.Load() != pos+1 {
		return GameEvent{}, false
	}
	ev := slot.ev
	slot.ev = GameEvent{}
	slot.seq.Store(pos + constants.EventQueueSize)
	eq.head.Store(pos + 1)
	return ev, true
}

// Consume pops every ready event in FIFO order, nil when none are ready
func (eq *EventQueue) Consume() []GameEvent {
	var out []GameEvent
	for {
		ev, ok := eq.Pop()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

// Len returns the approximate number of pending events
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Discard drops every pending event
func (eq *EventQueue) Discard() {
	for {
		if _, ok := eq.Pop(); !ok {
			return
		}
	}
}
