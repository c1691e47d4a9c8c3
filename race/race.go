// Package race assembles a playable session: roster, procedural layout and the simulation stages
package race

import (
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/systems"
)

// New creates an Idle session with a generated layout and every simulation stage registered
// The layout draws from the session source after the roster, so a seed reproduces both
func New(opts engine.Options, counts systems.LayoutCounts) *engine.Session {
	s := engine.NewSession(opts)

	obstacles, boosters := systems.GenerateLayout(s.Track, s.Rand, counts)
	// Cannot fail: the session has not been stepped yet
	_ = s.SetLayout(obstacles, boosters)

	s.AddSystem(systems.NewPowerUpSystem(s.Metrics))
	s.AddSystem(systems.NewTimerSystem())
	s.AddSystem(systems.NewMovementSystem())
	s.AddSystem(systems.NewCollisionSystem(s.Metrics))
	s.AddSystem(systems.NewParticleSystem())
	s.AddSystem(systems.NewCommentarySystem(s.Metrics))
	return s
}
