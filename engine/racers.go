package engine

import (
	"math"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
)

// Roster entry for a racer in start order
type rosterEntry struct {
	name        string
	color       string
	suitability float64
}

// Start order: player first, then the opponents
var roster = [constants.RacerCount]rosterEntry{
	{"You", "#06b6d4", 0},
	{"Chad", "#ef4444", 85},
	{"Brad", "#10b981", 70},
	{"Kyle", "#f59e0b", 45},
}

// SanitizeScore maps NaN, infinities and negatives to 0
func SanitizeScore(score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return 0
	}
	return score
}

// PlayerBaseSpeed derives the player speed from the external score
func PlayerBaseSpeed(score float64) float64 {
	return math.Max(constants.MinBaseSpeed, SanitizeScore(score)/constants.ScoreSpeedDivisor*constants.ScoreSpeedFactor)
}

// PlayerSuitability is the idle-screen rating for the player, capped at 100
func PlayerSuitability(score float64) float64 {
	return math.Min(SanitizeScore(score)/1000*100, 100)
}

// OpeningCommentary picks the pre-race line for a score tier
func OpeningCommentary(score float64) string {
	score = SanitizeScore(score)
	switch {
	case score >= 800:
		return "A top seed in lane one. The field looks nervous!"
	case score >= 400:
		return "A solid contender lines up. This one could go either way!"
	default:
		return "An underdog takes the start. Anything can happen in the water!"
	}
}

// WinnerMessage is the banner text shown after the finish
func WinnerMessage(isPlayer bool) string {
	if isPlayer {
		return "Your hustle paid off!"
	}
	return "Better luck next time! Keep grinding!"
}

// newRacers builds the four contestants at the start line
// Opponent speeds and swim phases are drawn from rng in start order
func newRacers(track components.Track, score float64, rng Rand) []*components.Racer {
	racers := make([]*components.Racer, constants.RacerCount)
	for i, entry := range roster {
		r := &components.Racer{
			Name:        entry.name,
			IsPlayer:    i == 0,
			Color:       entry.color,
			X:           track.StartX,
			Y:           track.ClampY(track.Lanes[i]),
			LaneY:       track.Lanes[i],
			Suitability: entry.suitability,
		}
		if r.IsPlayer {
			r.BaseSpeed = PlayerBaseSpeed(score)
			r.Suitability = PlayerSuitability(score)
		} else {
			span := constants.OpponentSpeeds[i-1]
			r.BaseSpeed = Between(rng, span.Min, span.Max)
			r.Phase = rng.Float64() * 2 * math.Pi
		}
		r.CurrentSpeed = r.BaseSpeed
		racers[i] = r
	}
	return racers
}
