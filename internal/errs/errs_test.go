package errs

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestWrapKeepsMarkerAndCause(t *testing.T) {
	err := Wrap(ErrIO, "store", "read /tmp/x", fs.ErrPermission)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO marker, got %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "store: read /tmp/x") {
		t.Fatalf("expected operation detail in message, got %q", err.Error())
	}
}

func TestWrapWithoutDetailReturnsMarker(t *testing.T) {
	if err := Wrap(ErrSeriesOver, "", "", nil); err != ErrSeriesOver {
		t.Fatalf("expected bare marker, got %v", err)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{Wrap(ErrMissingSeries, "info", "", nil), "not_found"},
		{Wrap(ErrAlreadyExists, "init", "", nil), "already_exists"},
		{Wrap(ErrSchema, "load", "bad", errors.New("x")), "schema"},
		{ErrSeriesOver, "series_over"},
		{ErrPlayerNotFound, "player_not_found"},
		{ErrPlayerFailed, "player_failed"},
		{ErrEpisodeMismatch, "episode_mismatch"},
		{ErrInvalidEpisode, "invalid_episode"},
		{Wrap(ErrIO, "scan", "", fs.ErrNotExist), "io"},
		{errors.New("other"), "unknown"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
