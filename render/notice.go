package render

import (
	"fmt"

	"github.com/lixenwraith/swimrace/events"
)

// NoticeText returns the popup line for a notice, false when the notice is not shown
// Contacts by opponents stay silent so the popup follows the player
func NoticeText(ev events.GameEvent) (string, bool) {
	switch ev.Type {
	case events.NoticePowerUpActivated:
		if p, ok := ev.Payload.(*events.PowerUpPayload); ok {
			return fmt.Sprintf("%s activated!", p.Kind.Info().Name), true
		}
	case events.NoticeObstacleHit:
		if p, ok := ev.Payload.(*events.ContactPayload); ok && p.IsPlayer {
			return "Ouch! Obstacle hit", true
		}
	case events.NoticeShieldBroken:
		if p, ok := ev.Payload.(*events.ContactPayload); ok && p.IsPlayer {
			return "Shield absorbed the hit!", true
		}
	case events.NoticeBoosterCollected:
		if p, ok := ev.Payload.(*events.ContactPayload); ok && p.IsPlayer {
			return "Booster collected!", true
		}
	case events.NoticeRaceFinished:
		if p, ok := ev.Payload.(*events.FinishPayload); ok {
			return p.Winner + " touches the wall first", true
		}
	}
	return "", false
}
