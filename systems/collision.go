package systems

import (
	"sync/atomic"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/events"
	"github.com/lixenwraith/swimrace/status"
	"github.com/lixenwraith/swimrace/vmath"
)

// pullTolerance absorbs float error when a pulled booster settles at touch distance
const pullTolerance = 1e-9

// CollisionSystem resolves racer contact with obstacles and boosters
// Objects are one-shot; anything further than StaleMargin behind the leader is inert
type CollisionSystem struct {
	statObstacles *atomic.Int64
	statBoosters  *atomic.Int64
	statShields   *atomic.Int64
}

func NewCollisionSystem(reg *status.Registry) *CollisionSystem {
	return &CollisionSystem{
		statObstacles: reg.Ints.Get("collision.obstacles"),
		statBoosters:  reg.Ints.Get("collision.boosters"),
		statShields:   reg.Ints.Get("collision.shields"),
	}
}

func (cs *CollisionSystem) Priority() int {
	return constants.PriorityCollision
}

func (cs *CollisionSystem) Update(s *engine.Session) {
	if !s.Racing() {
		return
	}

	leaderX := s.LeaderX()
	for _, r := range s.Racers {
		for _, o := range s.Obstacles {
			if !o.Live(leaderX, constants.StaleMargin) {
				continue
			}
			if vmath.Distance(r.X, r.Y, o.X, o.Y) < constants.ObstacleHitDistance {
				cs.hitObstacle(s, r, o)
			}
		}

		for _, b := range s.Boosters {
			if !b.Live(leaderX, constants.StaleMargin) {
				continue
			}
			if cs.reachBooster(r, b) {
				cs.collectBooster(s, r, b)
			}
		}
	}
}

// hitObstacle consumes the obstacle; a shield absorbs it, otherwise a free racer is slowed
func (cs *CollisionSystem) hitObstacle(s *engine.Session, r *components.Racer, o *components.TrackObject) {
	o.Collected = true
	contact := &events.ContactPayload{Racer: r.Name, IsPlayer: r.IsPlayer, X: o.X, Y: o.Y}

	if r.ConsumeShield() {
		cs.statShields.Add(1)
		s.SpawnBurst(o.X, o.Y, components.ParticleColorShield)
		s.Notify(events.NoticeShieldBroken, contact)
		return
	}

	applied := r.ApplySpeedModifier(components.SpeedModifier{
		Kind:      components.EffectTrackSlow,
		Source:    components.SourceTrack,
		Factor:    constants.ObstacleSlowFactor,
		Remaining: constants.ObstacleSlowFrames,
	})
	if !applied {
		return
	}

	cs.statObstacles.Add(1)
	s.SpawnBurst(o.X, o.Y, components.ParticleColorHit)
	s.Notify(events.NoticeObstacleHit, contact)
}

// reachBooster reports contact, pulling the booster first when the racer is magnetized
func (cs *CollisionSystem) reachBooster(r *components.Racer, b *components.TrackObject) bool {
	d := vmath.Distance(r.X, r.Y, b.X, b.Y)
	if d < constants.BoosterTouchDistance {
		return true
	}
	if !r.Magnetized || d >= constants.MagnetRange {
		return false
	}

	b.X, b.Y = vmath.MoveToward(b.X, b.Y, r.X, r.Y, constants.MagnetPullStep, constants.BoosterTouchDistance)
	return vmath.Distance(r.X, r.Y, b.X, b.Y) <= constants.BoosterTouchDistance+pullTolerance
}

// collectBooster consumes the booster; only a racer without a running modifier gets the boost and its burst
func (cs *CollisionSystem) collectBooster(s *engine.Session, r *components.Racer, b *components.TrackObject) {
	b.Collected = true

	applied := r.ApplySpeedModifier(components.SpeedModifier{
		Kind:      components.EffectTrackBoost,
		Source:    components.SourceTrack,
		Factor:    constants.BoosterSpeedFactor,
		Remaining: constants.BoosterSpeedFrames,
	})
	if !applied {
		return
	}

	cs.statBoosters.Add(1)
	s.SpawnBurst(b.X, b.Y, components.ParticleColorPickup)
	s.Notify(events.NoticeBoosterCollected, &events.ContactPayload{Racer: r.Name, IsPlayer: r.IsPlayer, X: b.X, Y: b.Y})
}
