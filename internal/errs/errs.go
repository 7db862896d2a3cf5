package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingSeries   = errors.New("no series found for this directory; run `upnext init` first")
	ErrAlreadyExists   = errors.New("current directory is already initialized")
	ErrSchema          = errors.New("schema error")
	ErrSeriesOver      = errors.New("no more episodes to watch")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerFailed    = errors.New("player failed")
	ErrIO              = errors.New("io error")
	ErrEpisodeMismatch = errors.New("episode number mismatch")
	ErrInvalidEpisode  = errors.New("invalid episode number")
)

// Wrap builds an error whose message carries the operation context while
// remaining classifiable through errors.Is against marker and err.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrIO
	}
	switch {
	case err != nil && detail != "":
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	case err != nil:
		return fmt.Errorf("%w: %w", marker, err)
	case detail != "":
		return fmt.Errorf("%w: %s", marker, detail)
	default:
		return marker
	}
}

// Kind returns a stable classification string for err, used as the
// error_kind log attribute.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingSeries):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrSeriesOver):
		return "series_over"
	case errors.Is(err, ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, ErrPlayerFailed):
		return "player_failed"
	case errors.Is(err, ErrEpisodeMismatch):
		return "episode_mismatch"
	case errors.Is(err, ErrInvalidEpisode):
		return "invalid_episode"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "unknown"
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	return strings.Join(parts, ": ")
}
