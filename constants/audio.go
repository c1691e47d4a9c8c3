package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the playback rate handed to the speaker
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)

// Hit Sound Timing
const (
	HitSoundDuration = 120 * time.Millisecond
	HitSoundAttack   = 5 * time.Millisecond
	HitSoundRelease  = 40 * time.Millisecond
)

// Pickup Bell Timing
const (
	BellSoundDuration           = 600 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 550 * time.Millisecond
	BellSoundOvertoneRelease    = 200 * time.Millisecond
)

// Shield Break Timing
const (
	WhooshSoundDuration = 300 * time.Millisecond
	WhooshSoundAttack   = 150 * time.Millisecond
	WhooshSoundRelease  = 150 * time.Millisecond
)

// Power-Up Chime Timing
const (
	CoinSoundNote1Duration = 80 * time.Millisecond
	CoinSoundNote2Duration = 280 * time.Millisecond
	CoinSoundAttack        = 5 * time.Millisecond
	CoinSoundNote1Release  = 40 * time.Millisecond
	CoinSoundNote2Release  = 200 * time.Millisecond
)

// Countdown Blip Timing
const (
	BlipSoundDuration = 150 * time.Millisecond
	BlipSoundAttack   = 5 * time.Millisecond
	BlipSoundRelease  = 60 * time.Millisecond
)

// Victory Fanfare Timing
const (
	FanfareNoteDuration = 140 * time.Millisecond
	FanfareLastDuration = 420 * time.Millisecond
	FanfareAttack       = 5 * time.Millisecond
	FanfareRelease      = 60 * time.Millisecond
)
