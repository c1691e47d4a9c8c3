package systems

import (
	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/engine"
)

// TimerSystem counts down speed modifiers and status effects once per racing frame
// A timer at 0 expires at the start of the next frame, so duration N covers exactly N movement frames
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (ts *TimerSystem) Priority() int {
	return constants.PriorityTimers
}

func (ts *TimerSystem) Update(s *engine.Session) {
	if !s.Racing() {
		return
	}

	for _, r := range s.Racers {
		if r.Speed != nil {
			if r.Speed.Remaining <= 0 {
				r.ClearSpeedModifier()
			} else {
				r.Speed.Remaining--
			}
		}
		ts.tickEffects(r)
	}
}

func (ts *TimerSystem) tickEffects(r *components.Racer) {
	var expired []components.EffectKind
	for i := range r.Effects {
		e := &r.Effects[i]
		switch {
		case e.Remaining == components.RemainingUntilConsumed:
		case e.Remaining <= 0:
			expired = append(expired, e.Kind)
		default:
			e.Remaining--
		}
	}
	for _, k := range expired {
		r.RemoveEffect(k)
	}
}
