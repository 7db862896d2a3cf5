package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"upnext/internal/errs"
)

const (
	// EnvPlayer overrides player.binary.
	EnvPlayer = "UPNEXT_PLAYER"
	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "UPNEXT_LOG_LEVEL"
)

// Player configures the external media player.
type Player struct {
	Binary string   `toml:"binary"`
	Args   []string `toml:"args"`
}

// Playback controls next/play behaviour.
type Playback struct {
	DelaySeconds         int  `toml:"delay_seconds"`
	VerifyEpisodeNumbers bool `toml:"verify_episode_numbers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config holds the tool settings found next to [[series]] in the document.
type Config struct {
	Player   Player   `toml:"player"`
	Playback Playback `toml:"playback"`
	Logging  Logging  `toml:"logging"`
}

// Load decodes settings from the document at path. A missing file yields
// the defaults. Environment overrides are applied before validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, errs.Wrap(errs.ErrIO, "open config", path, err)
	default:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, errs.Wrap(errs.ErrSchema, "parse config", path, err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrSchema, "validate config", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(EnvPlayer); ok && strings.TrimSpace(value) != "" {
		c.Player.Binary = value
	}
	if value, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
}

// PlayerCommand returns the binary and arguments used to play file.
func (c *Config) PlayerCommand(file string) (string, []string) {
	args := make([]string, 0, len(c.Player.Args)+1)
	args = append(args, file)
	args = append(args, c.Player.Args...)
	return c.Player.Binary, args
}
