package engine

// RaceState is the phase of a race session
// Transitions only move forward: Idle -> Countdown -> Racing -> Finished
type RaceState uint8

const (
	StateIdle RaceState = iota
	StateCountdown
	StateRacing
	StateFinished
)

// String returns the wire name of the state
func (s RaceState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StateRacing:
		return "racing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// CountdownLabels are shown in order, one per CountdownStepFrames
var CountdownLabels = [...]string{"3", "2", "1", "GO"}

// Result is the outcome passed to the completion callback
type Result struct {
	Winner   string
	IsPlayer bool
	Frame    uint64 // Frame the winner crossed the line
}
