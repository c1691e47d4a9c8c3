package events

import (
	"github.com/lixenwraith/swimrace/components"
)

// EventType represents the type of race event
type EventType int

const (
	// EventPowerUpRequest asks the next frame to activate a power-up
	// Trigger: UI hotkey, websocket message | Consumer: PowerUpSystem
	// Payload: *PowerUpPayload. Rejected silently when preconditions fail
	EventPowerUpRequest EventType = iota

	// NoticeCountdown marks a countdown label change ("3", "2", "1", "GO")
	// Payload: *CountdownPayload
	NoticeCountdown

	// NoticeRaceStart marks the Countdown -> Racing transition | Payload: nil
	NoticeRaceStart

	// NoticePowerUpActivated confirms an accepted activation | Payload: *PowerUpPayload
	NoticePowerUpActivated

	// NoticeObstacleHit marks an unshielded obstacle contact | Payload: *ContactPayload
	NoticeObstacleHit

	// NoticeShieldBroken marks a shield absorbing an obstacle | Payload: *ContactPayload
	NoticeShieldBroken

	// NoticeBoosterCollected marks a booster pickup | Payload: *ContactPayload
	NoticeBoosterCollected

	// NoticeRaceFinished marks the winner being crowned | Payload: *FinishPayload
	NoticeRaceFinished

	// NoticeRaceComplete fires once after the post-finish grace period | Payload: nil
	NoticeRaceComplete
)

// String returns the name of the event type for logs and the wire
func (e EventType) String() string {
	switch e {
	case EventPowerUpRequest:
		return "PowerUpRequest"
	case NoticeCountdown:
		return "Countdown"
	case NoticeRaceStart:
		return "RaceStart"
	case NoticePowerUpActivated:
		return "PowerUpActivated"
	case NoticeObstacleHit:
		return "ObstacleHit"
	case NoticeShieldBroken:
		return "ShieldBroken"
	case NoticeBoosterCollected:
		return "BoosterCollected"
	case NoticeRaceFinished:
		return "RaceFinished"
	case NoticeRaceComplete:
		return "RaceComplete"
	default:
		return "Unknown"
	}
}

// GameEvent is a single queued event
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   uint64 // Frame the event was produced on, 0 for requests from outside the loop
}

// CountdownPayload carries the label now on screen
type CountdownPayload struct {
	Label string
}

// PowerUpPayload carries the requested or activated kind
type PowerUpPayload struct {
	Kind components.PowerUpKind
}

// ContactPayload describes a racer touching a track object
type ContactPayload struct {
	Racer    string
	IsPlayer bool
	X, Y     float64
}

// FinishPayload names the winner
type FinishPayload struct {
	Winner   string
	IsPlayer bool
}
