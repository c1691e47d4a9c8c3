package systems

import (
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/engine"
)

// ParticleSystem moves and fades feedback particles in every state
type ParticleSystem struct{}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

func (ps *ParticleSystem) Priority() int {
	return constants.PriorityParticles
}

func (ps *ParticleSystem) Update(s *engine.Session) {
	if len(s.Particles) == 0 {
		return
	}

	alive := s.Particles[:0]
	for _, p := range s.Particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= constants.ParticleDecay
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	s.Particles = alive
}
