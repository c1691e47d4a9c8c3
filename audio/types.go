package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundHit         SoundType = iota // Obstacle contact
	SoundShieldBreak                  // Shield absorbed a hit
	SoundPickup                       // Booster collected
	SoundPowerUp                      // Power-up activated
	SoundCountdown                    // "3", "2", "1"
	SoundGo                           // Start gun
	SoundWin                          // Finish fanfare
	soundTypeCount
)

// String returns the config key of the sound
func (st SoundType) String() string {
	switch st {
	case SoundHit:
		return "hit"
	case SoundShieldBreak:
		return "shield"
	case SoundPickup:
		return "pickup"
	case SoundPowerUp:
		return "powerup"
	case SoundCountdown:
		return "countdown"
	case SoundGo:
		return "go"
	case SoundWin:
		return "win"
	default:
		return "unknown"
	}
}

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0 - 1.0
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// Sentinel errors
var (
	ErrAudioUnavailable = errors.New("audio output unavailable")
)
