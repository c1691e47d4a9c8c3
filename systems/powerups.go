package systems

import (
	"sync/atomic"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/events"
	"github.com/lixenwraith/swimrace/status"
)

// PowerUpSystem drains activation requests at the start of every frame
// A request is accepted only while racing with no winner and at least one unit in inventory
type PowerUpSystem struct {
	statAccepted *atomic.Int64
	statRejected *atomic.Int64
}

func NewPowerUpSystem(reg *status.Registry) *PowerUpSystem {
	return &PowerUpSystem{
		statAccepted: reg.Ints.Get("powerups.accepted"),
		statRejected: reg.Ints.Get("powerups.rejected"),
	}
}

func (ps *PowerUpSystem) Priority() int {
	return constants.PriorityPowerUps
}

func (ps *PowerUpSystem) Update(s *engine.Session) {
	for _, kind := range s.DrainPowerUpRequests() {
		if !s.Racing() || !kind.Valid() || !s.Inventory.Take(kind) {
			ps.statRejected.Add(1)
			continue
		}

		ps.activate(s, kind)
		ps.statAccepted.Add(1)
		s.Notify(events.NoticePowerUpActivated, &events.PowerUpPayload{Kind: kind})
	}
}

func (ps *PowerUpSystem) activate(s *engine.Session, kind components.PowerUpKind) {
	player := s.Player()

	switch kind {
	case components.PowerUpDoubleSpeed:
		player.ApplySpeedModifier(components.SpeedModifier{
			Kind:      components.EffectDoubleSpeed,
			Source:    components.SourcePowerUp,
			Factor:    constants.DoubleSpeedFactor,
			Remaining: constants.DoubleSpeedFrames,
		})

	case components.PowerUpSpeedBoost:
		player.ApplySpeedModifier(components.SpeedModifier{
			Kind:      components.EffectSpeedBoost,
			Source:    components.SourcePowerUp,
			Factor:    constants.SpeedBoostFactor,
			Remaining: constants.SpeedBoostFrames,
		})

	case components.PowerUpShield:
		player.SetEffect(components.EffectShield, components.RemainingUntilConsumed)

	case components.PowerUpSlowEnemies:
		for _, r := range s.Racers {
			if r.IsPlayer {
				continue
			}
			r.ApplySpeedModifier(components.SpeedModifier{
				Kind:      components.EffectSlowEnemies,
				Source:    components.SourcePowerUp,
				Factor:    constants.SlowEnemiesFactor,
				Remaining: constants.SlowEnemiesFrames,
			})
		}

	case components.PowerUpInstantBoost:
		player.X += constants.InstantBoostDistance
		s.SpawnBurst(player.X, player.Y, components.ParticleColorBoost)

	case components.PowerUpMagnet:
		player.SetEffect(components.EffectMagnet, constants.MagnetFrames)
	}
}
