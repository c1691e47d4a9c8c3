package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/swimrace/events"
)

// drain streams s to completion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Stream never drained")
	return 0, 0
}

// TestOscillatorWaves verifies every wave stays within [-1, 1] and honours its duration
func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 20 * time.Millisecond

	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, duration, wave, rate)
		n, peak := drain(t, osc)
		if n != rate.N(duration) {
			t.Errorf("Wave %d: expected %d samples, got %d", wave, rate.N(duration), n)
		}
		if peak > 1.0 || peak == 0 {
			t.Errorf("Wave %d: peak %v out of range", wave, peak)
		}
	}
}

func TestOscillatorDrained(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, rate.N(10*time.Millisecond)*2)
	if n, ok := osc.Stream(samples); !ok || n != rate.N(10*time.Millisecond) {
		t.Errorf("Expected a short final read, got n=%d ok=%v", n, ok)
	}
	if n, ok := osc.Stream(samples); ok || n != 0 {
		t.Errorf("Drained oscillator must return 0, false; got %d, %v", n, ok)
	}
}

// TestEnvelopeAttackPhase verifies attack ramp-up
func TestEnvelopeAttackPhase(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 100 * time.Millisecond
	attack := 50 * time.Millisecond

	osc := NewOscillator(100.0, duration, WaveSquare, rate)
	env := NewEnvelope(osc, duration, attack, 10*time.Millisecond, rate)

	samples := make([][2]float64, rate.N(attack))
	n, ok := env.Stream(samples)
	if !ok {
		t.Fatal("Expected envelope to stream successfully")
	}

	if first, last := math.Abs(samples[0][0]), math.Abs(samples[n-1][0]); first >= last {
		t.Errorf("Expected attack phase to ramp up, but first=%f >= last=%f", first, last)
	}
}

func TestEverySoundPlaysAndEnds(t *testing.T) {
	cfg := DefaultAudioConfig()
	for st := SoundType(0); st < soundTypeCount; st++ {
		s := GetSoundEffect(st, cfg)
		if s == nil {
			t.Fatalf("%s: no streamer", st)
		}
		n, peak := drain(t, s)
		if n == 0 || peak == 0 {
			t.Errorf("%s: expected audible samples, got n=%d peak=%v", st, n, peak)
		}
	}

	if GetSoundEffect(SoundType(999), cfg) != nil {
		t.Error("Expected nil for invalid sound type")
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 0

	_, peak := drain(t, CreateHitSound(cfg))
	if peak != 0 {
		t.Errorf("Expected silence at zero volume, got peak %v", peak)
	}
}

func TestParseEffectVolumes(t *testing.T) {
	cfg := DefaultAudioConfig()
	if err := ParseEffectVolumes(`{"hit":0.25,"win":3,"bogus":1}`, cfg.EffectVolumes); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.EffectVolumes[SoundHit] != 0.25 {
		t.Errorf("Expected hit 0.25, got %v", cfg.EffectVolumes[SoundHit])
	}
	if cfg.EffectVolumes[SoundWin] != 1 {
		t.Errorf("Expected win clamped to 1, got %v", cfg.EffectVolumes[SoundWin])
	}
	if err := ParseEffectVolumes(`not json`, cfg.EffectVolumes); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestNoticeSound(t *testing.T) {
	tests := []struct {
		name  string
		ev    events.GameEvent
		sound SoundType
		ok    bool
	}{
		{"Count", events.GameEvent{Type: events.NoticeCountdown, Payload: &events.CountdownPayload{Label: "2"}}, SoundCountdown, true},
		{"Go", events.GameEvent{Type: events.NoticeCountdown, Payload: &events.CountdownPayload{Label: "GO"}}, SoundGo, true},
		{"Player hit", events.GameEvent{Type: events.NoticeObstacleHit, Payload: &events.ContactPayload{IsPlayer: true}}, SoundHit, true},
		{"Opponent hit", events.GameEvent{Type: events.NoticeObstacleHit, Payload: &events.ContactPayload{Racer: "Chad"}}, SoundHit, false},
		{"Shield", events.GameEvent{Type: events.NoticeShieldBroken, Payload: &events.ContactPayload{IsPlayer: true}}, SoundShieldBreak, true},
		{"Finish", events.GameEvent{Type: events.NoticeRaceFinished}, SoundWin, true},
		{"Complete is silent", events.GameEvent{Type: events.NoticeRaceComplete}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := NoticeSound(tt.ev)
			if ok != tt.ok || (ok && st != tt.sound) {
				t.Errorf("Expected %s/%v, got %s/%v", tt.sound, tt.ok, st, ok)
			}
		})
	}
}

func TestSilentManager(t *testing.T) {
	sm := NewSoundManager(nil, nil)
	if sm.Play(SoundWin) {
		t.Error("Uninitialized manager must not play")
	}
	sm.HandleEvent(events.GameEvent{Type: events.NoticeRaceFinished})
	if sm.Played() != 0 {
		t.Error("Silent mode must drop every sound")
	}

	if sm.ToggleMute() {
		t.Error("First toggle of an enabled manager mutes it")
	}
	if !sm.IsMuted() || sm.IsEnabled() {
		t.Error("Expected muted and disabled")
	}
	sm.Cleanup()
}
