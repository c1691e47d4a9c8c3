package components

// ParticleColor defines the semantic color for feedback particles
// This decouples components from the render package
type ParticleColor uint8

const (
	ParticleColorNone ParticleColor = iota
	ParticleColorHit
	ParticleColorShield
	ParticleColorPickup
	ParticleColorBoost
	ParticleColorWin
)

// String returns the wire name of the color tag
func (c ParticleColor) String() string {
	switch c {
	case ParticleColorHit:
		return "hit"
	case ParticleColorShield:
		return "shield"
	case ParticleColorPickup:
		return "pickup"
	case ParticleColorBoost:
		return "boost"
	case ParticleColorWin:
		return "win"
	default:
		return "none"
	}
}

// Particle is a short-lived visual entity with no gameplay effect
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // 1.0 at spawn, pruned at <= 0
	Color  ParticleColor
}
