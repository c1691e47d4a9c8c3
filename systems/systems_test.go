package systems

import (
	"io"
	"log"
	"testing"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/status"
)

func newSession(t *testing.T, inv map[components.PowerUpKind]int, stages ...engine.System) *engine.Session {
	t.Helper()
	s := engine.NewSession(engine.Options{
		Score:     200,
		Inventory: inv,
		Seed:      7,
		Logger:    log.New(io.Discard, "", 0),
	})
	for _, st := range stages {
		s.AddSystem(st)
	}
	return s
}

func toRacing(t *testing.T, s *engine.Session) {
	t.Helper()
	s.RequestStart()
	for i := 0; i < 1000 && s.State() != engine.StateRacing; i++ {
		s.Step()
	}
	if s.State() != engine.StateRacing {
		t.Fatal("Race never started")
	}
}

func TestGenerateLayoutBounds(t *testing.T) {
	track := components.DefaultTrack()
	obstacles, boosters := GenerateLayout(track, engine.NewRand(99), DefaultLayoutCounts)

	if len(obstacles) != constants.ObstacleCount || len(boosters) != constants.BoosterCount {
		t.Fatalf("Expected %d/%d objects, got %d/%d", constants.ObstacleCount, constants.BoosterCount, len(obstacles), len(boosters))
	}

	minX := track.StartX + constants.LayoutLeadIn
	maxX := track.FinishX - constants.LayoutLeadOut
	for _, o := range append(obstacles, boosters...) {
		if o.X < minX || o.X > maxX {
			t.Errorf("%s x=%v outside [%v, %v]", o.Kind, o.X, minX, maxX)
		}
		if o.Y < track.MinY || o.Y > track.MaxY {
			t.Errorf("%s y=%v outside bounds", o.Kind, o.Y)
		}
		if o.Collected {
			t.Error("Fresh objects must not be collected")
		}
	}
	for _, o := range obstacles {
		if o.Kind != components.ObjectObstacle {
			t.Error("Obstacle list holds wrong kind")
		}
	}

	empty, none := GenerateLayout(track, engine.NewRand(1), LayoutCounts{})
	if len(empty) != 0 || len(none) != 0 {
		t.Error("Zero counts must yield an empty track")
	}
}

func TestProgressBucket(t *testing.T) {
	tests := []struct {
		progress float64
		expected int
	}{
		{0, 0},
		{14.9, 0},
		{15, 1},
		{50, 3},
		{89.9, 5},
		{90, 6},
		{100, 6},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := ProgressBucket(tt.progress); got != tt.expected {
			t.Errorf("ProgressBucket(%v) = %d, expected %d", tt.progress, got, tt.expected)
		}
	}
}

func TestCommentaryThrottledAndKeyed(t *testing.T) {
	s := newSession(t, nil, NewCommentarySystem(newRegistry(t)))
	opening := s.Commentary
	toRacing(t, s)

	s.Racers[1].X = 500
	for i := 0; i < constants.CommentaryIntervalFrames-1; i++ {
		s.Step()
	}
	if s.Commentary != opening {
		t.Fatalf("Commentary refreshed early: %q", s.Commentary)
	}
	if s.Racers[s.Leader].Name != "Chad" {
		t.Errorf("Leader must update every frame, got %s", s.Racers[s.Leader].Name)
	}

	s.Step()
	if s.Commentary != "Chad is pulling away down the stretch!" {
		t.Fatalf("Unexpected commentary %q", s.Commentary)
	}

	s.Racers[2].X = 790
	for i := 0; i < constants.CommentaryIntervalFrames; i++ {
		s.Step()
	}
	if s.Commentary != "Brad is charging for the wall!" {
		t.Errorf("Unexpected commentary %q", s.Commentary)
	}
}

func TestParticlesDecayAndPrune(t *testing.T) {
	s := newSession(t, nil, NewParticleSystem())
	s.SpawnBurst(100, 100, components.ParticleColorHit)
	if len(s.Particles) != constants.ParticleBurst {
		t.Fatalf("Expected %d particles, got %d", constants.ParticleBurst, len(s.Particles))
	}
	for _, p := range s.Particles {
		speed := p.VX*p.VX + p.VY*p.VY
		if speed > constants.ParticleMaxSpeed*constants.ParticleMaxSpeed+1e-9 {
			t.Fatalf("Particle exceeds max speed: %v", speed)
		}
	}

	// Particles update even while idle
	s.Step()
	if life := s.Particles[0].Life; life < 0.979 || life > 0.981 {
		t.Errorf("Expected life 0.98 after one frame, got %v", life)
	}

	for i := 0; i < 60; i++ {
		s.Step()
	}
	if len(s.Particles) != 0 {
		t.Errorf("Expected all particles pruned, %d left", len(s.Particles))
	}
}

func TestMagnetExpires(t *testing.T) {
	s := newSession(t, map[components.PowerUpKind]int{components.PowerUpMagnet: 1},
		NewPowerUpSystem(newRegistry(t)), NewTimerSystem())
	toRacing(t, s)

	s.RequestPowerUp(components.PowerUpMagnet)
	s.Step()
	player := s.Player()
	if !player.Magnetized {
		t.Fatal("Expected magnet active")
	}

	for i := 1; i < constants.MagnetFrames; i++ {
		s.Step()
	}
	if !player.Magnetized {
		t.Fatal("Magnet expired early")
	}
	s.Step()
	if player.Magnetized {
		t.Error("Magnet must expire after its duration")
	}
}

func TestShieldNeverTimesOut(t *testing.T) {
	s := newSession(t, map[components.PowerUpKind]int{components.PowerUpShield: 1},
		NewPowerUpSystem(newRegistry(t)), NewTimerSystem())
	toRacing(t, s)

	s.RequestPowerUp(components.PowerUpShield)
	for i := 0; i < 1000; i++ {
		s.Step()
	}
	if !s.Player().Shielded {
		t.Error("Shield must last until consumed")
	}
}

func TestInstantBoostDisplacement(t *testing.T) {
	s := newSession(t, map[components.PowerUpKind]int{components.PowerUpInstantBoost: 2},
		NewPowerUpSystem(newRegistry(t)))
	toRacing(t, s)

	x := s.Player().X
	s.RequestPowerUp(components.PowerUpInstantBoost)
	s.Step()
	if got := s.Player().X - x; got != constants.InstantBoostDistance {
		t.Errorf("Expected +%v, got %v", constants.InstantBoostDistance, got)
	}
	if s.Player().HasSpeedModifier() {
		t.Error("Instant boost must not install a timer")
	}
	if len(s.Particles) != constants.ParticleBurst {
		t.Errorf("Expected a boost burst, got %d particles", len(s.Particles))
	}
}

func TestPlayerSteering(t *testing.T) {
	s := newSession(t, nil, NewMovementSystem())
	toRacing(t, s)
	player := s.Player()

	s.SetInput(false, true)
	y := player.Y
	s.Step()
	if player.Y != y+constants.PlayerLaneStep {
		t.Errorf("Expected down step to %v, got %v", y+constants.PlayerLaneStep, player.Y)
	}

	s.SetInput(true, true)
	y = player.Y
	s.Step()
	if player.Y != y {
		t.Error("Opposing inputs must cancel")
	}

	s.SetInput(true, false)
	for i := 0; i < 100; i++ {
		s.Step()
	}
	if player.Y != constants.MinY {
		t.Errorf("Expected clamp at %v, got %v", constants.MinY, player.Y)
	}
}

func TestStaleObjectsIgnored(t *testing.T) {
	s := newSession(t, nil, NewCollisionSystem(newRegistry(t)))
	// Clear of the start line so nothing is touched before the racers are moved
	obstacle := &components.TrackObject{Kind: components.ObjectObstacle, X: 260, Y: constants.LaneY[0]}
	booster := &components.TrackObject{Kind: components.ObjectBooster, X: 262, Y: constants.LaneY[0]}
	if err := s.SetLayout([]*components.TrackObject{obstacle}, []*components.TrackObject{booster}); err != nil {
		t.Fatal(err)
	}
	toRacing(t, s)
	if obstacle.Collected || booster.Collected {
		t.Fatal("Objects away from the start must be untouched when racing begins")
	}

	s.Racers[1].X = 400
	s.Player().X = 260
	s.Step()
	if obstacle.Collected {
		t.Error("Obstacle far behind the leader must be inert")
	}
	if booster.Collected {
		t.Error("Booster far behind the leader must be inert")
	}
	if s.Player().HasSpeedModifier() {
		t.Errorf("Stale contact must not change speed, got %+v", s.Player().Speed)
	}

	// Same contact while within the margin of the leader resolves normally
	s.Racers[1].X = 300
	s.Step()
	if !obstacle.Collected {
		t.Error("Obstacle within the margin must be hit")
	}
}

func newRegistry(t *testing.T) *status.Registry {
	t.Helper()
	return status.NewRegistry()
}
