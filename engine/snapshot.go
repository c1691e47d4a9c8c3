package engine

import (
	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
)

// Snapshot is an immutable per-frame view of the session for hosts
// Field tags double as msgpack keys on the wire
type Snapshot struct {
	SessionID      string         `json:"sessionId"`
	Frame          uint64         `json:"frame"`
	State          string         `json:"state"`
	Countdown      string         `json:"countdown,omitempty"`
	Track          TrackView      `json:"track"`
	Racers         []RacerView    `json:"racers"`
	Obstacles      []ObjectView   `json:"obstacles"`
	Boosters       []ObjectView   `json:"boosters"`
	Particles      []ParticleView `json:"particles"`
	Commentary     string         `json:"commentary"`
	Leader         string         `json:"leader"`
	Winner         string         `json:"winner,omitempty"`
	WinnerIsPlayer bool           `json:"winnerIsPlayer,omitempty"`
	WinnerMessage  string         `json:"winnerMessage,omitempty"`
	Inventory      map[string]int `json:"inventory"`
}

// TrackView carries the geometry a renderer needs to scale the scene
type TrackView struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	StartX  float64 `json:"startX"`
	FinishX float64 `json:"finishX"`
	MinY    float64 `json:"minY"`
	MaxY    float64 `json:"maxY"`
}

// RacerView is a racer as drawn on screen
type RacerView struct {
	Name        string       `json:"name"`
	IsPlayer    bool         `json:"isPlayer"`
	Color       string       `json:"color"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Speed       float64      `json:"speed"`
	BaseSpeed   float64      `json:"baseSpeed"`
	Progress    float64      `json:"progress"`
	Shielded    bool         `json:"shielded"`
	Magnetized  bool         `json:"magnetized"`
	Modifier    *EffectView  `json:"modifier,omitempty"`
	Effects     []EffectView `json:"effects,omitempty"`
	Suitability float64      `json:"suitability"`
}

// EffectView is an active modifier or status effect with frames left
type EffectView struct {
	Kind      string `json:"kind"`
	Remaining int    `json:"remaining"`
}

// ObjectView is an obstacle or booster
type ObjectView struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Collected bool    `json:"collected"`
	Stale     bool    `json:"stale"`
}

// ParticleView is a feedback particle
type ParticleView struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Life  float64 `json:"life"`
	Color string  `json:"color"`
}

// buildSnapshot copies the authoritative state, caller owns the step lock
func (s *Session) buildSnapshot() Snapshot {
	snap := Snapshot{
		SessionID:  s.ID,
		Frame:      s.frame,
		State:      s.State().String(),
		Commentary: s.Commentary,
		Inventory:  s.Inventory.Map(),
		Track: TrackView{
			Width:   s.Track.Width,
			Height:  s.Track.Height,
			StartX:  s.Track.StartX,
			FinishX: s.Track.FinishX,
			MinY:    s.Track.MinY,
			MaxY:    s.Track.MaxY,
		},
	}
	if s.State() == StateCountdown {
		snap.Countdown = CountdownLabels[s.countdownStep]
	}
	if s.Leader >= 0 && s.Leader < len(s.Racers) {
		snap.Leader = s.Racers[s.Leader].Name
	}
	if w, ok := s.Winner(); ok {
		snap.Winner = w.Name
		snap.WinnerIsPlayer = w.IsPlayer
		snap.WinnerMessage = WinnerMessage(w.IsPlayer)
	}

	snap.Racers = make([]RacerView, len(s.Racers))
	for i, r := range s.Racers {
		view := RacerView{
			Name:        r.Name,
			IsPlayer:    r.IsPlayer,
			Color:       r.Color,
			X:           r.X,
			Y:           r.Y,
			Speed:       r.CurrentSpeed,
			BaseSpeed:   r.BaseSpeed,
			Progress:    s.Track.Progress(r.X),
			Shielded:    r.Shielded,
			Magnetized:  r.Magnetized,
			Suitability: r.Suitability,
		}
		if r.Speed != nil {
			view.Modifier = &EffectView{Kind: r.Speed.Kind.String(), Remaining: r.Speed.Remaining}
		}
		for _, e := range r.Effects {
			view.Effects = append(view.Effects, EffectView{Kind: e.Kind.String(), Remaining: e.Remaining})
		}
		snap.Racers[i] = view
	}

	leaderX := s.LeaderX()
	snap.Obstacles = objectViews(s.Obstacles, leaderX)
	snap.Boosters = objectViews(s.Boosters, leaderX)

	snap.Particles = make([]ParticleView, len(s.Particles))
	for i, p := range s.Particles {
		snap.Particles[i] = ParticleView{X: p.X, Y: p.Y, Life: p.Life, Color: p.Color.String()}
	}
	return snap
}

func objectViews(objs []*components.TrackObject, leaderX float64) []ObjectView {
	views := make([]ObjectView, len(objs))
	for i, o := range objs {
		views[i] = ObjectView{
			X:         o.X,
			Y:         o.Y,
			Radius:    o.Radius,
			Collected: o.Collected,
			Stale:     o.Stale(leaderX, constants.StaleMargin),
		}
	}
	return views
}
