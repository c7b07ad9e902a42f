package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Debug)
	assert.Equal(t, 60, cfg.Sim.TickRate)
	assert.Zero(t, cfg.Sim.Seed)
	assert.True(t, cfg.Records.Enabled)
	assert.Equal(t, "skyfall.db", cfg.Records.Path)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, ":7777", cfg.Network.Address)
	assert.Equal(t, 16, cfg.Network.MaxPeers)
	assert.Equal(t, 5*time.Second, cfg.Network.WriteTimeout)
	assert.Equal(t, 8, cfg.Network.SendQueue)
	assert.NotEmpty(t, cfg.Bindings.Path)
	assert.Empty(t, cfg.Source)
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[sim]
tickRate = 120
seed = 99

[records]
enabled = false

[network]
address = "127.0.0.1:9000"
writeTimeout = "250ms"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Sim.TickRate)
	assert.Equal(t, uint64(99), cfg.Sim.Seed)
	assert.False(t, cfg.Records.Enabled)
	assert.Equal(t, "127.0.0.1:9000", cfg.Network.Address)
	assert.Equal(t, 250*time.Millisecond, cfg.Network.WriteTimeout)
	assert.Equal(t, 16, cfg.Network.MaxPeers, "unset keys keep defaults")
	assert.Equal(t, FileName, filepath.Base(cfg.Source))

	explicit, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Sim, explicit.Sim)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SKYFALL_NETWORK_ADDRESS", ":8888")
	t.Setenv("SKYFALL_LOG_LEVEL", "debug")
	t.Setenv("SKYFALL_AUDIO_ENABLED", "false")

	dir := t.TempDir()
	writeConfig(t, dir, "[network]\naddress = \":9999\"\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":8888", cfg.Network.Address, "environment beats file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Audio.Enabled)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err, "explicit file must exist")

	writeConfig(t, dir, "[sim\ntickRate = ")
	_, err = Load(dir)
	assert.Error(t, err, "malformed toml")

	writeConfig(t, dir, "[sim]\ntickRate = 0\n")
	_, err = Load(dir)
	assert.ErrorContains(t, err, "sim.tickRate")
}

func TestValidate(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"peers", func(c *Config) { c.Network.MaxPeers = 0 }, "maxPeers"},
		{"queue", func(c *Config) { c.Network.SendQueue = -1 }, "sendQueue"},
		{"timeout", func(c *Config) { c.Network.WriteTimeout = 0 }, "writeTimeout"},
		{"volume", func(c *Config) { c.Audio.Volume = 1.5 }, "volume"},
		{"tick", func(c *Config) { c.Sim.TickRate = 5000 }, "tickRate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			tt.mutate(&c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
	assert.NoError(t, cfg.Validate())
}
