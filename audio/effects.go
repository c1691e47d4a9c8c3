package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/swimrace/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, zero volume is expressed as Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is a single enveloped oscillator note
func tone(freq float64, wave WaveType, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, duration, wave, rate), duration, attack, release, rate)
}

// CreateHitSound generates a low saw thud for obstacle contact
func CreateHitSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	shaped := tone(110, WaveSaw, constants.HitSoundDuration, constants.HitSoundAttack, constants.HitSoundRelease, rate)
	return newVolume(shaped, cfg.EffectVolumes[SoundHit]*cfg.MasterVolume)
}

// CreateShieldBreakSound generates a noise swell for a consumed shield
func CreateShieldBreakSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	shaped := tone(0, WaveNoise, constants.WhooshSoundDuration, constants.WhooshSoundAttack, constants.WhooshSoundRelease, rate)
	return newVolume(shaped, cfg.EffectVolumes[SoundShieldBreak]*cfg.MasterVolume)
}

// CreatePickupSound generates a bell ding for booster pickup
func CreatePickupSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// Fundamental (A5) with octave overtone
	fund := tone(880, WaveSine, constants.BellSoundDuration, constants.BellSoundAttack, constants.BellSoundFundamentalRelease, rate)
	over := tone(1760, WaveSine, constants.BellSoundDuration, constants.BellSoundAttack, constants.BellSoundOvertoneRelease, rate)
	mixed := beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))

	return newVolume(mixed, cfg.EffectVolumes[SoundPickup]*cfg.MasterVolume)
}

// CreatePowerUpSound generates a two-note chime for an activation
func CreatePowerUpSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// B5 then E6
	n1 := tone(987.77, WaveSquare, constants.CoinSoundNote1Duration, constants.CoinSoundAttack, constants.CoinSoundNote1Release, rate)
	n2 := tone(1318.51, WaveSquare, constants.CoinSoundNote2Duration, constants.CoinSoundAttack, constants.CoinSoundNote2Release, rate)

	return newVolume(beep.Seq(n1, n2), cfg.EffectVolumes[SoundPowerUp]*cfg.MasterVolume)
}

// CreateCountdownSound generates the short A4 blip for each count
func CreateCountdownSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	shaped := tone(440, WaveSine, constants.BlipSoundDuration, constants.BlipSoundAttack, constants.BlipSoundRelease, rate)
	return newVolume(shaped, cfg.EffectVolumes[SoundCountdown]*cfg.MasterVolume)
}

// CreateGoSound generates the higher A5 blip for the start
func CreateGoSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	shaped := tone(880, WaveSine, 2*constants.BlipSoundDuration, constants.BlipSoundAttack, constants.BlipSoundRelease, rate)
	return newVolume(shaped, cfg.EffectVolumes[SoundGo]*cfg.MasterVolume)
}

// CreateWinSound generates a rising C major arpeggio
func CreateWinSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	notes := []float64{523.25, 659.25, 783.99}
	var parts []beep.Streamer
	for _, f := range notes {
		parts = append(parts, tone(f, WaveSquare, constants.FanfareNoteDuration, constants.FanfareAttack, constants.FanfareRelease, rate))
	}
	parts = append(parts, tone(1046.5, WaveSquare, constants.FanfareLastDuration, constants.FanfareAttack, constants.FanfareLastDuration/2, rate))

	return newVolume(beep.Seq(parts...), cfg.EffectVolumes[SoundWin]*cfg.MasterVolume)
}

// GetSoundEffect returns the appropriate sound effect streamer for the given type
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundHit:
		return CreateHitSound(cfg)
	case SoundShieldBreak:
		return CreateShieldBreakSound(cfg)
	case SoundPickup:
		return CreatePickupSound(cfg)
	case SoundPowerUp:
		return CreatePowerUpSound(cfg)
	case SoundCountdown:
		return CreateCountdownSound(cfg)
	case SoundGo:
		return CreateGoSound(cfg)
	case SoundWin:
		return CreateWinSound(cfg)
	default:
		return nil
	}
}
