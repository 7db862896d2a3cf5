package config

const (
	defaultPlayerBinary  = "vlc"
	defaultDelaySeconds  = 5
	defaultLogFormat     = "console"
	defaultLogLevel      = "warn"
	defaultVerifyNumbers = true
)

func defaultPlayerArgs() []string {
	return []string{"--play-and-exit", "--fullscreen"}
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Player: Player{
			Binary: defaultPlayerBinary,
			Args:   defaultPlayerArgs(),
		},
		Playback: Playback{
			DelaySeconds:         defaultDelaySeconds,
			VerifyEpisodeNumbers: defaultVerifyNumbers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
