// Package config loads race, audio and server settings
// Load order: defaults, TOML file, .env, SWIMRACE_* environment; flags are applied by the binaries
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/swimrace/audio"
	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/systems"
)

// ErrInvalid wraps every configuration error
var ErrInvalid = errors.New("invalid configuration")

// Environment variable names
const (
	EnvSeed         = "SWIMRACE_SEED"
	EnvScore        = "SWIMRACE_SCORE"
	EnvInventory    = "SWIMRACE_INVENTORY"
	EnvAudioEnabled = "SWIMRACE_AUDIO_ENABLED"
	EnvMasterVolume = "SWIMRACE_MASTER_VOLUME"
	EnvSFXVolumes   = "SWIMRACE_SFX_VOLUMES"
	EnvListen       = "SWIMRACE_LISTEN"
	EnvDebug        = "SWIMRACE_DEBUG"
)

// Config is the full application configuration
type Config struct {
	Track  TrackConfig  `toml:"track"`
	Race   RaceConfig   `toml:"race"`
	Audio  AudioConfig  `toml:"audio"`
	Server ServerConfig `toml:"server"`
	Debug  bool         `toml:"debug"`
}

// TrackConfig overrides geometry and layout density
type TrackConfig struct {
	Width     float64   `toml:"width"`
	Height    float64   `toml:"height"`
	StartX    float64   `toml:"start_x"`
	FinishX   float64   `toml:"finish_x"`
	MinY      float64   `toml:"min_y"`
	MaxY      float64   `toml:"max_y"`
	Lanes     []float64 `toml:"lanes"`
	Obstacles int       `toml:"obstacles"`
	Boosters  int       `toml:"boosters"`
}

// RaceConfig carries the inputs normally produced outside the game
type RaceConfig struct {
	Score     float64        `toml:"score"`
	Seed      uint64         `toml:"seed"`
	Inventory map[string]int `toml:"inventory"`
}

// AudioConfig is the on-disk form of audio settings
type AudioConfig struct {
	Enabled      bool               `toml:"enabled"`
	MasterVolume int                `toml:"master_volume"` // 0-100
	Effects      map[string]float64 `toml:"effects"`
}

// ServerConfig configures the websocket host
type ServerConfig struct {
	Listen         string `toml:"listen"`
	BroadcastEvery int    `toml:"broadcast_every"`
	Format         string `toml:"format"` // Default wire format: msgpack or json
}

// Default returns the built-in configuration
func Default() *Config {
	lanes := make([]float64, len(constants.LaneY))
	copy(lanes, constants.LaneY[:])

	return &Config{
		Track: TrackConfig{
			Width:     constants.TrackWidth,
			Height:    constants.TrackHeight,
			StartX:    constants.StartX,
			FinishX:   constants.FinishX,
			MinY:      constants.MinY,
			MaxY:      constants.MaxY,
			Lanes:     lanes,
			Obstacles: constants.ObstacleCount,
			Boosters:  constants.BoosterCount,
		},
		Race: RaceConfig{
			Inventory: map[string]int{},
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 50,
		},
		Server: ServerConfig{
			Listen:         "127.0.0.1:8080",
			BroadcastEvery: constants.BroadcastEvery,
			Format:         "msgpack",
		},
	}
}

// Load builds the configuration from path (may be empty) and envFile (missing file ignored)
func Load(path, envFile string, logger *log.Logger) (*Config, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
		for _, key := range md.Undecoded() {
			logger.Printf("config: unknown key %q in %s", key.String(), path)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, envFile, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays SWIMRACE_* variables resolved through lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvSeed, err)
		}
		c.Race.Seed = seed
	}

	if v, ok := lookup(EnvScore); ok {
		score, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvScore, err)
		}
		c.Race.Score = score
	}

	if v, ok := lookup(EnvInventory); ok {
		purchased, skipped, err := components.ParseInventory(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvInventory, err)
		}
		c.Race.Inventory = make(map[string]int, len(purchased)+len(skipped))
		for k, qty := range purchased {
			c.Race.Inventory[k.String()] = qty
		}
		// Kept so Inventory() reports them alongside unknown TOML keys
		for _, id := range skipped {
			c.Race.Inventory[id] = 0
		}
	}

	if v, ok := lookup(EnvAudioEnabled); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvAudioEnabled, err)
		}
		c.Audio.Enabled = enabled
	}

	if v, ok := lookup(EnvMasterVolume); ok {
		vol, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvMasterVolume, err)
		}
		c.Audio.MasterVolume = vol
	}

	if v, ok := lookup(EnvSFXVolumes); ok {
		vols := make(map[audio.SoundType]float64)
		if err := audio.ParseEffectVolumes(v, vols); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvSFXVolumes, err)
		}
		if c.Audio.Effects == nil {
			c.Audio.Effects = make(map[string]float64)
		}
		for st, vol := range vols {
			c.Audio.Effects[st.String()] = vol
		}
	}

	if v, ok := lookup(EnvListen); ok && v != "" {
		c.Server.Listen = v
	}

	if v, ok := lookup(EnvDebug); ok {
		debug, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvDebug, err)
		}
		c.Debug = debug
	}
	return nil
}

// Validate checks geometry and ranges
func (c *Config) Validate() error {
	t := c.Track
	switch {
	case t.Width <= 0 || t.Height <= 0:
		return fmt.Errorf("%w: track size %vx%v", ErrInvalid, t.Width, t.Height)
	case t.FinishX <= t.StartX:
		return fmt.Errorf("%w: finish_x %v must be beyond start_x %v", ErrInvalid, t.FinishX, t.StartX)
	case t.MinY >= t.MaxY:
		return fmt.Errorf("%w: min_y %v must be below max_y %v", ErrInvalid, t.MinY, t.MaxY)
	case len(t.Lanes) != constants.RacerCount:
		return fmt.Errorf("%w: expected %d lanes, got %d", ErrInvalid, constants.RacerCount, len(t.Lanes))
	case t.Obstacles < 0 || t.Boosters < 0:
		return fmt.Errorf("%w: negative object count", ErrInvalid)
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 100 {
		return fmt.Errorf("%w: master_volume %d outside 0-100", ErrInvalid, c.Audio.MasterVolume)
	}
	if c.Server.BroadcastEvery < 1 {
		return fmt.Errorf("%w: broadcast_every must be at least 1", ErrInvalid)
	}
	if c.Server.Format != "msgpack" && c.Server.Format != "json" {
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Server.Format)
	}
	return nil
}

// TrackLayout returns the geometry as a component
func (c *Config) TrackLayout() components.Track {
	track := components.Track{
		Width:   c.Track.Width,
		Height:  c.Track.Height,
		StartX:  c.Track.StartX,
		FinishX: c.Track.FinishX,
		MinY:    c.Track.MinY,
		MaxY:    c.Track.MaxY,
	}
	copy(track.Lanes[:], c.Track.Lanes)
	return track
}

// LayoutCounts returns the configured object density
func (c *Config) LayoutCounts() systems.LayoutCounts {
	return systems.LayoutCounts{Obstacles: c.Track.Obstacles, Boosters: c.Track.Boosters}
}

// Inventory resolves shop ids, returning the unknown ones for the caller to log
func (c *Config) Inventory() (map[components.PowerUpKind]int, []string) {
	inv := make(map[components.PowerUpKind]int, len(c.Race.Inventory))
	var unknown []string
	for id, qty := range c.Race.Inventory {
		kind, err := components.ParsePowerUpKind(id)
		if err != nil {
			unknown = append(unknown, id)
			continue
		}
		inv[kind] = qty
	}
	sort.Strings(unknown)
	return inv, unknown
}

// AudioSettings converts to the audio package's runtime form
func (c *Config) AudioSettings() *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = float64(c.Audio.MasterVolume) / 100
	for st := range ac.EffectVolumes {
		if v, ok := c.Audio.Effects[st.String()]; ok {
			ac.EffectVolumes[st] = v
		}
	}
	return ac
}
