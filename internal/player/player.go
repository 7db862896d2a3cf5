package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"upnext/internal/errs"
	"upnext/internal/logging"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

// Option configures the player.
type Option func(*Player)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(p *Player) {
		if exec != nil {
			p.exec = exec
		}
	}
}

// WithLogger sets the logger used for launch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// CommandFunc builds the binary and argument list that play file.
type CommandFunc func(file string) (binary string, args []string)

// Player runs the media player command built for each episode.
type Player struct {
	command CommandFunc
	exec    Executor
	logger  *slog.Logger
}

// New constructs a Player around command, typically config.Config.PlayerCommand.
func New(command CommandFunc, opts ...Option) (*Player, error) {
	if command == nil {
		return nil, errors.New("player command required")
	}
	p := &Player{
		command: command,
		exec:    commandExecutor{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "player")
	return p, nil
}

// Play blocks until the player exits. A missing or empty executable maps to
// errs.ErrPlayerNotFound and a non-zero exit to errs.ErrPlayerFailed.
func (p *Player) Play(ctx context.Context, file string) error {
	binary, args := p.command(file)
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return errs.Wrap(errs.ErrPlayerNotFound, "", "no player binary configured", nil)
	}

	p.logger.Debug("launching player",
		logging.String("binary", binary),
		logging.String("file", file),
		logging.Int("args", len(args)))

	output, err := p.exec.Run(ctx, binary, args)
	if err == nil {
		p.logger.Debug("player exited", logging.String("file", file))
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return errs.Wrap(errs.ErrPlayerNotFound, "", binary, err)
	case errors.As(err, &exitErr):
		detail := fmt.Sprintf("%s exited with code %d", binary, exitErr.ExitCode())
		if tail := lastLine(output); tail != "" {
			detail += ": " + tail
		}
		return errs.Wrap(errs.ErrPlayerFailed, "", detail, nil)
	default:
		return errs.Wrap(errs.ErrPlayerFailed, "", binary, err)
	}
}

func lastLine(output []byte) string {
	output = bytes.TrimSpace(output)
	if i := bytes.LastIndexByte(output, '\n'); i >= 0 {
		output = output[i+1:]
	}
	return strings.TrimSpace(string(output))
}
