package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlayer(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePlayer() error {
	if c.Player.Binary == "" {
		return errors.New("player.binary must be set")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.DelaySeconds < 0 {
		return fmt.Errorf("playback.delay_seconds must be zero or positive, got %d", c.Playback.DelaySeconds)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if !ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// ValidLevel reports whether level is a normalized log level name.
func ValidLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
