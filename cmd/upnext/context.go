package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"upnext/internal/config"
	"upnext/internal/errs"
	"upnext/internal/logging"
	"upnext/internal/player"
	"upnext/internal/store"
	"upnext/internal/tracker"
)

type commandContext struct {
	fileFlag     *string
	dirFlag      *string
	logLevelFlag *string

	pathOnce sync.Once
	path     string
	pathErr  error

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(fileFlag, dirFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		fileFlag:     fileFlag,
		dirFlag:      dirFlag,
		logLevelFlag: logLevelFlag,
	}
}

// documentPath resolves the series document location once per invocation.
func (c *commandContext) documentPath() (string, error) {
	c.pathOnce.Do(func() {
		locator := config.LocatorFromEnv()
		if c.fileFlag != nil {
			locator = locator.WithOverride(*c.fileFlag)
		}
		c.path, c.pathErr = locator.Resolve()
	})
	return c.path, c.pathErr
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path, err := c.documentPath()
		if err != nil {
			c.configErr = err
			return
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level := config.NormalizeLevel(*c.logLevelFlag)
			if !config.ValidLevel(level) {
				c.configErr = fmt.Errorf("--log-level: unsupported value %q", *c.logLevelFlag)
				return
			}
			cfg.Logging.Level = level
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// seriesDir returns the directory the command operates on: --dir when
// given, else the working directory, made absolute.
func (c *commandContext) seriesDir() (string, error) {
	dir := ""
	if c.dirFlag != nil {
		dir = strings.TrimSpace(*c.dirFlag)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errs.Wrap(errs.ErrIO, "resolve working directory", "", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errs.Wrap(errs.ErrIO, "resolve series directory", dir, err)
	}
	return abs, nil
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
}

// newTracker wires the store, player and terminal interaction for cmd.
func (c *commandContext) newTracker(cmd *cobra.Command, opts ...tracker.Option) (*tracker.Tracker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	path, err := c.documentPath()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, err
	}
	p, err := player.New(cfg.PlayerCommand, player.WithLogger(logger))
	if err != nil {
		return nil, errs.Wrap(errs.ErrPlayerNotFound, "configure player", "", err)
	}

	base := []tracker.Option{
		tracker.WithLogger(logger),
		tracker.WithEpisodeCheck(cfg.Playback.VerifyEpisodeNumbers),
		tracker.WithConfirmer(newPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())),
		tracker.WithReporter(newConsoleReporter(cmd.OutOrStdout())),
	}
	return tracker.New(store.New(path, logger), p, append(base, opts...)...), nil
}

// newPromptConfirmer asks on out and reads one answer line per prompt from
// in. Only y or yes accepts; end of input declines.
func newPromptConfirmer(in io.Reader, out io.Writer) tracker.Confirmer {
	reader := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(out)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
