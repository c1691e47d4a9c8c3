package race

import (
	"io"
	"log"
	"math"
	"testing"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/events"
	"github.com/lixenwraith/swimrace/systems"
)

const maxFrames = 20000

var noObjects = systems.LayoutCounts{}

func newRace(t *testing.T, score float64, inv map[components.PowerUpKind]int, counts systems.LayoutCounts) *engine.Session {
	t.Helper()
	return New(engine.Options{
		Score:     score,
		Inventory: inv,
		Seed:      42,
		Logger:    log.New(io.Discard, "", 0),
	}, counts)
}

// startRacing steps through the countdown, returning after the first racing frame
func startRacing(t *testing.T, s *engine.Session) {
	t.Helper()
	s.RequestStart()
	for i := 0; i < maxFrames; i++ {
		s.Step()
		if s.State() == engine.StateRacing {
			return
		}
	}
	t.Fatal("Race never started")
}

func placeObject(t *testing.T, s *engine.Session, kind components.ObjectKind, x, y float64) *components.TrackObject {
	t.Helper()
	obj := &components.TrackObject{Kind: kind, X: x, Y: y, Radius: 10}
	var err error
	if kind == components.ObjectObstacle {
		err = s.SetLayout(append(s.Obstacles, obj), s.Boosters)
	} else {
		err = s.SetLayout(s.Obstacles, append(s.Boosters, obj))
	}
	if err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	return obj
}

func hasNotice(s *engine.Session, typ events.EventType) bool {
	found := false
	for {
		ev, ok := s.NextNotice()
		if !ok {
			return found
		}
		if ev.Type == typ {
			found = true
		}
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestKinematicInvariants runs full races and checks monotonic X, bounded Y and frozen positions after the finish
func TestKinematicInvariants(t *testing.T) {
	for _, score := range []float64{0, 200, 650, 1200} {
		inv := map[components.PowerUpKind]int{}
		for _, k := range components.AllPowerUps() {
			inv[k] = 1
		}
		s := newRace(t, score, inv, systems.DefaultLayoutCounts)
		startRacing(t, s)

		prev := make([]float64, len(s.Racers))
		for i, r := range s.Racers {
			prev[i] = r.X
		}

		frame := 0
		for s.State() == engine.StateRacing {
			frame++
			if frame > maxFrames {
				t.Fatalf("score %v: race did not finish", score)
			}
			// Sweep the player across both bounds and fire every power-up once
			s.SetInput(frame%200 < 100, frame%200 >= 100)
			if frame%30 == 0 {
				s.RequestPowerUp(components.PowerUpKind(frame / 30 % 6))
			}

			s.Step()
			for i, r := range s.Racers {
				if r.X < prev[i] {
					t.Fatalf("score %v: %s moved backwards at frame %d", score, r.Name, frame)
				}
				if r.Y < constants.MinY || r.Y > constants.MaxY {
					t.Fatalf("score %v: %s out of bounds y=%v", score, r.Name, r.Y)
				}
				if r.CurrentSpeed < 0 {
					t.Fatalf("score %v: %s negative speed", score, r.Name)
				}
				prev[i] = r.X
			}
		}

		if s.State() != engine.StateFinished {
			t.Fatalf("score %v: expected finished, got %s", score, s.State())
		}
		winner, _ := s.Winner()
		frozen := s.Snapshot()

		s.RequestPowerUp(components.PowerUpInstantBoost)
		for i := 0; i < 2*constants.GraceFrames; i++ {
			s.Step()
		}
		for i, r := range s.Racers {
			if r.X != frozen.Racers[i].X || r.Y != frozen.Racers[i].Y {
				t.Errorf("score %v: %s moved after the finish", score, r.Name)
			}
		}
		if w, _ := s.Winner(); w != winner {
			t.Errorf("score %v: winner changed after the finish", score)
		}
	}
}

func TestBaseSpeedFromScore(t *testing.T) {
	if got := newRace(t, 0, nil, noObjects).Player().BaseSpeed; got != 0.5 {
		t.Errorf("Score 0: expected 0.5, got %v", got)
	}
	if got := newRace(t, 400, nil, noObjects).Player().BaseSpeed; got != 2.0 {
		t.Errorf("Score 400: expected 2.0, got %v", got)
	}
}

func TestActivationConsumesInventory(t *testing.T) {
	s := newRace(t, 200, map[components.PowerUpKind]int{components.PowerUpDoubleSpeed: 1}, noObjects)

	s.RequestPowerUp(components.PowerUpDoubleSpeed)
	s.Step()
	if s.Inventory.Count(components.PowerUpDoubleSpeed) != 1 {
		t.Fatal("Activation while idle must be rejected without consuming")
	}

	startRacing(t, s)
	s.RequestPowerUp(components.PowerUpDoubleSpeed)
	s.Step()

	player := s.Player()
	if s.Inventory.Count(components.PowerUpDoubleSpeed) != 0 {
		t.Errorf("Expected inventory 0, got %d", s.Inventory.Count(components.PowerUpDoubleSpeed))
	}
	if player.Speed == nil || player.Speed.Kind != components.EffectDoubleSpeed || player.CurrentSpeed != 2*player.BaseSpeed {
		t.Errorf("Expected double speed, got %+v at %v", player.Speed, player.CurrentSpeed)
	}
	if !hasNotice(s, events.NoticePowerUpActivated) {
		t.Error("Expected an activation notice")
	}

	s.RequestPowerUp(components.PowerUpDoubleSpeed)
	s.Step()
	if s.Inventory.Count(components.PowerUpDoubleSpeed) != 0 {
		t.Error("Inventory must never go below zero")
	}
	if got := s.Metrics.Ints.Get("powerups.rejected").Load(); got != 2 {
		t.Errorf("Expected 2 rejections, got %d", got)
	}
	if got := s.Metrics.Ints.Get("powerups.accepted").Load(); got != 1 {
		t.Errorf("Expected 1 acceptance, got %d", got)
	}
}

func TestObstacleSlowLastsExactly60Frames(t *testing.T) {
	s := newRace(t, 200, nil, noObjects)
	placeObject(t, s, components.ObjectObstacle, 60, constants.LaneY[0])
	startRacing(t, s)

	player := s.Player()
	if player.Speed == nil || player.Speed.Kind != components.EffectTrackSlow {
		t.Fatalf("Expected slow on the first racing frame, got %+v", player.Speed)
	}
	if !near(player.CurrentSpeed, player.BaseSpeed*constants.ObstacleSlowFactor) {
		t.Fatalf("Expected slowed speed, got %v", player.CurrentSpeed)
	}

	for i := 1; i <= constants.ObstacleSlowFrames; i++ {
		x := player.X
		s.Step()
		if !near(player.X-x, player.BaseSpeed*constants.ObstacleSlowFactor) {
			t.Fatalf("Frame %d: expected slowed advance, got %v", i, player.X-x)
		}
	}

	x := player.X
	s.Step()
	if !near(player.X-x, player.BaseSpeed) || player.HasSpeedModifier() {
		t.Errorf("Expected base speed after 60 frames, advanced %v", player.X-x)
	}
}

func TestBoosterLastsExactly90Frames(t *testing.T) {
	s := newRace(t, 200, nil, noObjects)
	placeObject(t, s, components.ObjectBooster, 60, constants.LaneY[0])
	startRacing(t, s)

	player := s.Player()
	if !near(player.CurrentSpeed, player.BaseSpeed*constants.BoosterSpeedFactor) {
		t.Fatalf("Expected boosted speed, got %v", player.CurrentSpeed)
	}
	if !hasNotice(s, events.NoticeBoosterCollected) {
		t.Error("Expected a pickup notice")
	}

	for i := 1; i <= constants.BoosterSpeedFrames; i++ {
		x := player.X
		s.Step()
		if !near(player.X-x, player.BaseSpeed*constants.BoosterSpeedFactor) {
			t.Fatalf("Frame %d: expected boosted advance, got %v", i, player.X-x)
		}
	}

	x := player.X
	s.Step()
	if !near(player.X-x, player.BaseSpeed) {
		t.Errorf("Expected base speed after 90 frames, advanced %v", player.X-x)
	}
}

func TestTrackContactDoesNotResetActiveModifier(t *testing.T) {
	s := newRace(t, 200, nil, noObjects)
	placeObject(t, s, components.ObjectObstacle, 60, constants.LaneY[0])
	second := placeObject(t, s, components.ObjectBooster, 70, constants.LaneY[0])
	startRacing(t, s)

	player := s.Player()
	for i := 0; i < 5; i++ {
		s.Step()
	}
	if !second.Collected {
		t.Fatal("Booster within reach must be collected")
	}
	if player.Speed == nil || player.Speed.Kind != components.EffectTrackSlow {
		t.Errorf("Booster must not override the running slow, got %+v", player.Speed)
	}
	if hasNotice(s, events.NoticeBoosterCollected) {
		t.Error("A refused booster must not announce a pickup")
	}
	for _, p := range s.Particles {
		if p.Color == components.ParticleColorPickup {
			t.Fatal("A refused booster must not spawn pickup particles")
		}
	}
}

func TestShieldAbsorbsObstacle(t *testing.T) {
	s := newRace(t, 200, map[components.PowerUpKind]int{components.PowerUpShield: 1}, noObjects)
	obstacle := placeObject(t, s, components.ObjectObstacle, 100, constants.LaneY[0])
	startRacing(t, s)

	s.RequestPowerUp(components.PowerUpShield)
	s.Step()
	player := s.Player()
	if !player.Shielded {
		t.Fatal("Expected shield to be up")
	}
	if s.Inventory.Count(components.PowerUpShield) != 0 {
		t.Fatal("Shield activation must consume the unit")
	}

	for i := 0; i < 100 && !obstacle.Collected; i++ {
		s.Step()
	}
	if !obstacle.Collected {
		t.Fatal("Player never reached the obstacle")
	}
	if player.Shielded {
		t.Error("Shield must be consumed by the hit")
	}
	if player.HasSpeedModifier() || player.CurrentSpeed != player.BaseSpeed {
		t.Errorf("Shielded hit must leave speed unchanged, got %v", player.CurrentSpeed)
	}
	if !hasNotice(s, events.NoticeShieldBroken) {
		t.Error("Expected a shield break notice")
	}

	s.RequestPowerUp(components.PowerUpShield)
	s.Step()
	if s.Inventory.Count(components.PowerUpShield) != 0 || player.Shielded {
		t.Error("Shield inventory must stay at zero")
	}
}

func TestUnderdogLosesCleanRace(t *testing.T) {
	s := newRace(t, 200, nil, noObjects)
	startRacing(t, s)

	for i := 0; i < maxFrames && s.State() == engine.StateRacing; i++ {
		var before []float64
		for _, r := range s.Racers {
			before = append(before, r.X)
		}
		s.Step()

		if s.State() == engine.StateFinished {
			w, _ := s.Winner()
			if w.IsPlayer {
				t.Fatalf("Player at base 1.0 cannot outswim Chad")
			}
			if w.X < constants.FinishX {
				t.Errorf("Winner crowned before the line at x=%v", w.X)
			}
			for j, x := range before {
				if x >= constants.FinishX {
					t.Errorf("%s was already past the line a frame earlier", s.Racers[j].Name)
				}
			}
			return
		}
	}
	t.Fatal("Race never finished")
}

func TestSlowEnemiesOverridesTrackBoost(t *testing.T) {
	s := newRace(t, 200, map[components.PowerUpKind]int{components.PowerUpSlowEnemies: 1}, noObjects)
	startRacing(t, s)

	chad := s.Racers[1]
	chad.ApplySpeedModifier(components.SpeedModifier{
		Kind: components.EffectTrackBoost, Source: components.SourceTrack, Factor: 2.5, Remaining: 90,
	})

	s.RequestPowerUp(components.PowerUpSlowEnemies)
	s.Step()
	for _, r := range s.Racers[1:] {
		if r.Speed == nil || r.Speed.Kind != components.EffectSlowEnemies {
			t.Errorf("%s: expected slow enemies, got %+v", r.Name, r.Speed)
		}
		if !near(r.CurrentSpeed, r.BaseSpeed*constants.SlowEnemiesFactor) {
			t.Errorf("%s: expected %v, got %v", r.Name, r.BaseSpeed*constants.SlowEnemiesFactor, r.CurrentSpeed)
		}
	}
	if s.Player().HasSpeedModifier() {
		t.Error("Slow enemies must not touch the player")
	}
}

func TestMagnetPullsBooster(t *testing.T) {
	s := newRace(t, 200, map[components.PowerUpKind]int{components.PowerUpMagnet: 1}, noObjects)
	booster := placeObject(t, s, components.ObjectBooster, 150, constants.LaneY[0]+60)
	startRacing(t, s)

	s.RequestPowerUp(components.PowerUpMagnet)
	s.Step()
	if !s.Player().Magnetized {
		t.Fatal("Expected magnet active")
	}

	startY := booster.Y
	for i := 0; i < 120 && !booster.Collected; i++ {
		s.Step()
	}
	if !booster.Collected {
		t.Fatal("Magnet must pull the booster into reach")
	}
	if booster.Y == startY {
		t.Error("Booster must have moved toward the player")
	}
}

func TestSeedReproducesRace(t *testing.T) {
	a := newRace(t, 300, nil, systems.DefaultLayoutCounts)
	b := newRace(t, 300, nil, systems.DefaultLayoutCounts)

	for i := range a.Obstacles {
		if a.Obstacles[i].X != b.Obstacles[i].X || a.Obstacles[i].Y != b.Obstacles[i].Y {
			t.Fatal("Same seed must yield the same layout")
		}
	}
	for i := range a.Racers {
		if a.Racers[i].BaseSpeed != b.Racers[i].BaseSpeed {
			t.Fatal("Same seed must yield the same speeds")
		}
	}
}
