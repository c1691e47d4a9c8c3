package network

import (
	"time"

	"github.com/lixenwraith/swimrace/constants"
)

// Config holds network configuration
type Config struct {
	// Address to bind
	Address string

	// Connection limits
	MaxPeers  int
	ReadLimit int64 // Largest accepted client frame in bytes

	// Timing
	FrameInterval time.Duration // Simulation step interval, 0 = FrameUpdateInterval
	WriteTimeout  time.Duration
	PongTimeout   time.Duration
	PingInterval  time.Duration // Must be below PongTimeout

	// Broadcast
	BroadcastEvery int    // Frames between snapshot pushes
	DefaultFormat  Format // Used when the client omits ?format
	SendQueueSize  int    // Per-peer buffered frames, newer frames drop when full
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:        "127.0.0.1:8080",
		MaxPeers:       16,
		ReadLimit:      4 * 1024,
		FrameInterval:  constants.FrameUpdateInterval,
		WriteTimeout:   5 * time.Second,
		PongTimeout:    30 * time.Second,
		PingInterval:   10 * time.Second,
		BroadcastEvery: constants.BroadcastEvery,
		DefaultFormat:  FormatMsgpack,
		SendQueueSize:  8,
	}
}
