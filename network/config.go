package network

import "time"

// Config holds network configuration
type Config struct {
	// Address to bind
	Address string

	// Connection limits
	MaxPeers int

	// Timing
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
	MaxMessageSize  int64

	// FrameEvery sends one frame per N ticks, 1 sends every tick
	FrameEvery int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:           ":7777",
		MaxPeers:          16,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		ReadBufferSize:    4 * 1024,
		WriteBufferSize:   64 * 1024,
		SendQueueSize:     8,
		MaxMessageSize:    4 * 1024,
		FrameEvery:        2,
	}
}

// DebugConfig returns defaults bound to addr
func DebugConfig(addr string) *Config {
	cfg := DefaultConfig()
	cfg.Address = addr
	return cfg
}
