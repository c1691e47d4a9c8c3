package components

// EffectKind identifies a timed or status modifier on a racer
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectTrackSlow
	EffectTrackBoost
	EffectDoubleSpeed
	EffectSpeedBoost
	EffectSlowEnemies
	EffectShield
	EffectMagnet
)

// String returns the wire name of the effect
func (k EffectKind) String() string {
	switch k {
	case EffectTrackSlow:
		return "slow"
	case EffectTrackBoost:
		return "boost"
	case EffectDoubleSpeed:
		return "doubleSpeed"
	case EffectSpeedBoost:
		return "speedBoost"
	case EffectSlowEnemies:
		return "slowEnemies"
	case EffectShield:
		return "shield"
	case EffectMagnet:
		return "magnet"
	default:
		return "none"
	}
}

// ModifierSource ranks who installed a speed modifier
// Higher sources win: power-up > track pickup > base
type ModifierSource uint8

const (
	SourceTrack ModifierSource = iota + 1
	SourcePowerUp
)

// RemainingUntilConsumed marks a status effect that ends on use rather than by timer
const RemainingUntilConsumed = -1

// SpeedModifier is the single speed-owning effect on a racer
// A modifier installed with Remaining = N governs exactly N movement frames
type SpeedModifier struct {
	Kind      EffectKind
	Source    ModifierSource
	Factor    float64
	Remaining int
}

// ActiveEffect is a non-speed status effect (shield, magnet)
type ActiveEffect struct {
	Kind      EffectKind
	Remaining int // Frames left, RemainingUntilConsumed for shield
}

// Racer is one contestant on the track
type Racer struct {
	Name     string
	IsPlayer bool
	Color    string // Hex color tag, resolved by the renderer

	X, Y  float64
	LaneY float64 // Home lane for the swim oscillation
	Phase float64 // Oscillation phase offset

	BaseSpeed    float64
	CurrentSpeed float64
	Speed        *SpeedModifier
	Effects      []ActiveEffect

	Shielded   bool
	Magnetized bool

	// Suitability is the idle-screen rating in percent
	Suitability float64
}

// HasSpeedModifier reports whether any boost/slow timer currently owns speed
func (r *Racer) HasSpeedModifier() bool {
	return r.Speed != nil
}

// ApplySpeedModifier installs mod if it outranks the current one
// Power-up sources replace anything; track sources only apply to a racer with no modifier
// Returns false when the modifier was refused
func (r *Racer) ApplySpeedModifier(mod SpeedModifier) bool {
	if r.Speed != nil && mod.Source < SourcePowerUp {
		return false
	}

	m := mod
	r.Speed = &m
	r.CurrentSpeed = r.BaseSpeed * mod.Factor
	if r.CurrentSpeed < 0 {
		r.CurrentSpeed = 0
	}
	return true
}

// ClearSpeedModifier reverts speed to base
func (r *Racer) ClearSpeedModifier() {
	r.Speed = nil
	r.CurrentSpeed = r.BaseSpeed
}

// Effect returns the status effect of kind k, if active
func (r *Racer) Effect(k EffectKind) (ActiveEffect, bool) {
	for _, e := range r.Effects {
		if e.Kind == k {
			return e, true
		}
	}
	return ActiveEffect{}, false
}

// SetEffect adds or refreshes the status effect of the given kind
func (r *Racer) SetEffect(k EffectKind, remaining int) {
	for i := range r.Effects {
		if r.Effects[i].Kind == k {
			r.Effects[i].Remaining = remaining
			r.syncFlags()
			return
		}
	}
	r.Effects = append(r.Effects, ActiveEffect{Kind: k, Remaining: remaining})
	r.syncFlags()
}

// RemoveEffect drops the status effect of the given kind
func (r *Racer) RemoveEffect(k EffectKind) {
	kept := r.Effects[:0]
	for _, e := range r.Effects {
		if e.Kind != k {
			kept = append(kept, e)
		}
	}
	r.Effects = kept
	r.syncFlags()
}

// ConsumeShield clears the shield, returns false if the racer had none
func (r *Racer) ConsumeShield() bool {
	if !r.Shielded {
		return false
	}
	r.RemoveEffect(EffectShield)
	r.Shielded = false
	return true
}

func (r *Racer) syncFlags() {
	_, r.Shielded = r.Effect(EffectShield)
	_, r.Magnetized = r.Effect(EffectMagnet)
}
