package events

import "testing"

func TestRouterRegistrationOrder(t *testing.T) {
	r := NewRouter()
	var calls []string

	r.Register(HandlerFunc{
		Types: []EventType{NoticeObstacleHit, NoticeRaceFinished},
		Fn:    func(ev GameEvent) { calls = append(calls, "first:"+ev.Type.String()) },
	})
	r.Register(HandlerFunc{
		Types: []EventType{NoticeObstacleHit},
		Fn:    func(ev GameEvent) { calls = append(calls, "second:"+ev.Type.String()) },
	})

	if r.HandlerCount(NoticeObstacleHit) != 2 || !r.HasHandlers(NoticeRaceFinished) || r.HasHandlers(NoticeCountdown) {
		t.Fatal("Unexpected registration counts")
	}

	r.HandleNotice(GameEvent{Type: NoticeObstacleHit})
	r.HandleNotice(GameEvent{Type: NoticeCountdown})

	if len(calls) != 2 || calls[0] != "first:ObstacleHit" || calls[1] != "second:ObstacleHit" {
		t.Errorf("Unexpected dispatch %v", calls)
	}
}

func TestRouterDispatchAll(t *testing.T) {
	r := NewRouter()
	var frames []uint64
	r.Register(HandlerFunc{
		Types: []EventType{NoticeBoosterCollected},
		Fn:    func(ev GameEvent) { frames = append(frames, ev.Frame) },
	})

	q := NewEventQueue()
	q.Push(GameEvent{Type: NoticeBoosterCollected, Frame: 1})
	q.Push(GameEvent{Type: NoticeRaceStart, Frame: 2})
	q.Push(GameEvent{Type: NoticeBoosterCollected, Frame: 3})

	if n := r.DispatchAll(q); n != 3 {
		t.Errorf("Expected 3 consumed, got %d", n)
	}
	if len(frames) != 2 || frames[0] != 1 || frames[1] != 3 {
		t.Errorf("Unexpected frames %v", frames)
	}
	if q.Len() != 0 {
		t.Error("Queue must be drained")
	}
}
