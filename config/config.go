package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "skyfall.toml"

// EnvPrefix prefixes environment overrides, e.g. SKYFALL_NETWORK_ADDRESS
const EnvPrefix = "SKYFALL"

// LogConfig controls the zerolog setup of both binaries
type LogConfig struct {
	Level string `mapstructure:"level"`
	Debug bool   `mapstructure:"debug"`
	Dir   string `mapstructure:"dir"`
}

// SimConfig holds simulation settings
type SimConfig struct {
	TickRate int    `mapstructure:"tickRate"`
	Seed     uint64 `mapstructure:"seed"` // 0 seeds from the clock
}

// BindingsConfig locates the persisted binding table
type BindingsConfig struct {
	Path string `mapstructure:"path"`
}

// RecordsConfig controls the final-score ledger
type RecordsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	QueueSize int    `mapstructure:"queueSize"`
}

// AudioConfig controls synthesized cues
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// NetworkConfig controls the websocket service
type NetworkConfig struct {
	Address      string        `mapstructure:"address"`
	MaxPeers     int           `mapstructure:"maxPeers"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	SendQueue    int           `mapstructure:"sendQueue"`
}

// Config is the complete runtime configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Sim      SimConfig      `mapstructure:"sim"`
	Bindings BindingsConfig `mapstructure:"bindings"`
	Records  RecordsConfig  `mapstructure:"records"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Network  NetworkConfig  `mapstructure:"network"`

	// Source is the config file that was read, empty when running on defaults
	Source string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", "logs")

	v.SetDefault("sim.tickRate", 60)
	v.SetDefault("sim.seed", 0)

	v.SetDefault("bindings.path", defaultBindingsPath())

	v.SetDefault("records.enabled", true)
	v.SetDefault("records.path", "skyfall.db")
	v.SetDefault("records.queueSize", 16)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)

	v.SetDefault("network.address", ":7777")
	v.SetDefault("network.maxPeers", 16)
	v.SetDefault("network.writeTimeout", "5s")
	v.SetDefault("network.sendQueue", 8)
}

func defaultBindingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "bindings.toml"
	}
	return filepath.Join(dir, "skyfall", "bindings.toml")
}

// Load reads configuration and applies defaults and SKYFALL_ environment overrides
// location is either a directory holding an optional skyfall.toml or the path of a
// .toml file that must exist. Empty location searches the working directory
func Load(location string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := filepath.Ext(location) != ""
	if explicit {
		v.SetConfigFile(location)
	} else {
		if location == "" {
			location = "."
		}
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("toml")
		v.AddConfigPath(location)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the binaries cannot run with
func (c Config) Validate() error {
	switch {
	case c.Sim.TickRate <= 0 || c.Sim.TickRate > 1000:
		return fmt.Errorf("sim.tickRate %d out of range (1..1000)", c.Sim.TickRate)
	case c.Network.MaxPeers <= 0:
		return fmt.Errorf("network.maxPeers must be positive, got %d", c.Network.MaxPeers)
	case c.Network.SendQueue <= 0:
		return fmt.Errorf("network.sendQueue must be positive, got %d", c.Network.SendQueue)
	case c.Network.WriteTimeout <= 0:
		return fmt.Errorf("network.writeTimeout must be positive, got %s", c.Network.WriteTimeout)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio.volume %.2f out of range (0..1)", c.Audio.Volume)
	}
	return nil
}
