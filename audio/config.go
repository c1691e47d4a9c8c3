package audio

import (
	"encoding/json"
	"fmt"

	"github.com/lixenwraith/swimrace/constants"
)

// DefaultAudioConfig returns enabled audio at 50% master volume
func DefaultAudioConfig() *AudioConfig {
	vols := make(map[SoundType]float64, soundTypeCount)
	for st := SoundType(0); st < soundTypeCount; st++ {
		vols[st] = 1.0
	}
	vols[SoundHit] = 0.6
	vols[SoundCountdown] = 0.5

	return &AudioConfig{
		Enabled:       true,
		MasterVolume:  0.5,
		EffectVolumes: vols,
		SampleRate:    constants.AudioSampleRate,
	}
}

// ParseEffectVolumes decodes a JSON object such as {"hit":0.4,"win":1} into per-sound volumes
// Unknown keys are ignored; values are clamped to [0, 1]
func ParseEffectVolumes(raw string, into map[SoundType]float64) error {
	var volumes map[string]float64
	if err := json.Unmarshal([]byte(raw), &volumes); err != nil {
		return fmt.Errorf("effect volumes: %w", err)
	}
	for st := SoundType(0); st < soundTypeCount; st++ {
		if v, ok := volumes[st.String()]; ok {
			into[st] = clampVolume(v)
		}
	}
	return nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
