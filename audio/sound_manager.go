package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/events"
)

// SoundManager plays race feedback through the system speaker
// Falls back to silent mode when no output device is available; gameplay never waits on audio
type SoundManager struct {
	mu     sync.Mutex
	config *AudioConfig
	mixer  *beep.Mixer
	logger *log.Logger

	initialized atomic.Bool
	muted       atomic.Bool
	played      atomic.Int64
}

// NewSoundManager creates a manager; cfg nil selects DefaultAudioConfig
func NewSoundManager(cfg *AudioConfig, logger *log.Logger) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if logger == nil {
		logger = log.Default()
	}
	sm := &SoundManager{
		config: cfg,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	sm.muted.Store(!cfg.Enabled)
	return sm
}

// Initialize opens the speaker, returns ErrAudioUnavailable when the device cannot be opened
// The manager stays usable in silent mode after a failure
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized.Load() {
		return nil
	}

	rate := beep.SampleRate(sm.config.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}

	speaker.Play(sm.mixer)
	sm.initialized.Store(true)
	return nil
}

// Cleanup silences and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized.Swap(false) {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Play queues a sound, returns false in silent mode or while muted
func (sm *SoundManager) Play(st SoundType) bool {
	if !sm.initialized.Load() || sm.muted.Load() {
		return false
	}

	sm.mu.Lock()
	streamer := GetSoundEffect(st, sm.config)
	sm.mu.Unlock()
	if streamer == nil {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played.Add(1)
	return true
}

// ToggleMute flips mute, returns true if sound is now on
func (sm *SoundManager) ToggleMute() bool {
	muted := !sm.muted.Load()
	sm.muted.Store(muted)
	return !muted
}

// IsMuted returns current mute state
func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// IsEnabled returns true if the speaker is open and unmuted
func (sm *SoundManager) IsEnabled() bool {
	return sm.initialized.Load() && !sm.muted.Load()
}

// Played returns the number of sounds queued since creation
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}

// EventTypes lists the notices that have a sound
func (sm *SoundManager) EventTypes() []events.EventType {
	return []events.EventType{
		events.NoticeCountdown,
		events.NoticePowerUpActivated,
		events.NoticeObstacleHit,
		events.NoticeShieldBroken,
		events.NoticeBoosterCollected,
		events.NoticeRaceFinished,
	}
}

// HandleEvent plays the sound mapped to a notice
func (sm *SoundManager) HandleEvent(ev events.GameEvent) {
	if st, ok := NoticeSound(ev); ok {
		sm.Play(st)
	}
}

// NoticeSound maps a race notice to its sound
// Only the player's own contacts are voiced; the final countdown label gets the start gun
func NoticeSound(ev events.GameEvent) (SoundType, bool) {
	switch ev.Type {
	case events.NoticeCountdown:
		if p, ok := ev.Payload.(*events.CountdownPayload); ok && p.Label == "GO" {
			return SoundGo, true
		}
		return SoundCountdown, true
	case events.NoticePowerUpActivated:
		return SoundPowerUp, true
	case events.NoticeObstacleHit:
		return SoundHit, playerContact(ev)
	case events.NoticeShieldBroken:
		return SoundShieldBreak, playerContact(ev)
	case events.NoticeBoosterCollected:
		return SoundPickup, playerContact(ev)
	case events.NoticeRaceFinished:
		return SoundWin, true
	}
	return 0, false
}

func playerContact(ev events.GameEvent) bool {
	p, ok := ev.Payload.(*events.ContactPayload)
	return ok && p.IsPlayer
}
