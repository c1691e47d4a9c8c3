package systems

import (
	"math"

	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/engine"
)

// MovementSystem advances every racer one frame
// The player steers vertically from the held controls; opponents swim a sine path around their lane
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (ms *MovementSystem) Priority() int {
	return constants.PriorityMovement
}

func (ms *MovementSystem) Update(s *engine.Session) {
	if !s.Racing() {
		return
	}

	frame := float64(s.Frame())
	up, down := s.Input()

	for i, r := range s.Racers {
		jitter := 0.0
		if r.IsPlayer {
			dir := 0.0
			if down {
				dir++
			}
			if up {
				dir--
			}
			r.Y = s.Track.ClampY(r.Y + dir*constants.PlayerLaneStep)
		} else {
			r.Y = s.Track.ClampY(r.LaneY + math.Sin(frame*constants.SwimFrequency+r.Phase)*constants.SwimAmplitude)
			jitter = math.Sin(frame*constants.JitterFrequency+float64(i)) * constants.JitterAmplitude
		}

		r.X += math.Max(0, r.CurrentSpeed+jitter)
	}
}
