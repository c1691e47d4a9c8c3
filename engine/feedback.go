package engine

import (
	"fmt"

	"github.com/lixenwraith/swimrace/events"
)

// FeedbackSink receives every notice synchronously from the frame loop
// Implementations must not block; audio and logging hand off to their own goroutines
type FeedbackSink interface {
	HandleNotice(ev events.GameEvent)
}

// FeedbackFunc adapts a plain function to FeedbackSink
type FeedbackFunc func(ev events.GameEvent)

func (f FeedbackFunc) HandleNotice(ev events.GameEvent) {
	f(ev)
}

// deliver invokes the sink, a panicking sink is logged and never aborts the frame
func (s *Session) deliver(ev events.GameEvent) {
	if s.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.statSinkErrors.Add(1)
			s.logger.Printf("feedback sink panic on %s: %v", ev.Type, fmt.Sprint(r))
		}
	}()
	s.sink.HandleNotice(ev)
}
