package engine

import (
	"math"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
)

// SpawnBurst emits ParticleBurst particles at (x, y) with random outward velocity
func (s *Session) SpawnBurst(x, y float64, color components.ParticleColor) {
	for i := 0; i < constants.ParticleBurst; i++ {
		angle := s.Rand.Float64() * 2 * math.Pi
		speed := s.Rand.Float64() * constants.ParticleMaxSpeed
		s.Particles = append(s.Particles, components.Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  1,
			Color: color,
		})
	}
}
