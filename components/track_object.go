package components

// ObjectKind is the effect family of a track object
type ObjectKind uint8

const (
	ObjectObstacle ObjectKind = iota // Slows on contact
	ObjectBooster                    // Speeds up on contact
)

// String returns the wire name of the kind
func (k ObjectKind) String() string {
	if k == ObjectBooster {
		return "booster"
	}
	return "obstacle"
}

// TrackObject is an obstacle or booster placed at race start
// Collected is one-shot: once set the object is inert but kept for render and debug
type TrackObject struct {
	Kind      ObjectKind
	X, Y      float64
	Radius    float64
	Collected bool
}

// Stale reports whether the object lies further than margin behind leaderX
func (o *TrackObject) Stale(leaderX, margin float64) bool {
	return o.X < leaderX-margin
}

// Live reports whether the object can still be contacted
func (o *TrackObject) Live(leaderX, margin float64) bool {
	return !o.Collected && !o.Stale(leaderX, margin)
}
