package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"upnext/internal/config"
)

// StubPlayerName is the executable installed by WithStubPlayer.
const StubPlayerName = "upnext-stub-player"

// EnvOption allows callers to customize the generated test environment.
type EnvOption func(*Env)

// Env is an isolated home directory with an optional document, a series
// directory and stub executables on PATH.
type Env struct {
	t            testing.TB
	BaseDir      string
	HomeDir      string
	DocumentPath string
	SeriesDir    string
	playerLog    string
}

// NewEnv points HOME at a temp directory and clears the upnext environment
// overrides, then applies opts.
func NewEnv(t testing.TB, opts ...EnvOption) *Env {
	t.Helper()

	base := t.TempDir()
	env := &Env{
		t:         t,
		BaseDir:   base,
		HomeDir:   filepath.Join(base, "home"),
		SeriesDir: filepath.Join(base, "media", "show"),
	}
	env.DocumentPath = filepath.Join(env.HomeDir, config.DefaultFileName)
	for _, dir := range []string{env.HomeDir, env.SeriesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv(config.EnvDocumentPath, "")
	t.Setenv(config.EnvPlayer, "")
	t.Setenv(config.EnvLogLevel, "")

	for _, opt := range opts {
		opt(env)
	}
	return env
}

// WithDocument writes content as the user's document.
func WithDocument(content string) EnvOption {
	return func(e *Env) {
		if err := os.WriteFile(e.DocumentPath, []byte(content), 0o644); err != nil {
			e.t.Fatalf("write document: %v", err)
		}
	}
}

// WithEpisodes creates empty episode files in the series directory.
func WithEpisodes(names ...string) EnvOption {
	return func(e *Env) {
		for _, name := range names {
			WriteFile(e.t, filepath.Join(e.SeriesDir, name), 1)
		}
	}
}

// WithStubPlayer installs a player executable on PATH that records its
// arguments and exits with exitCode, and selects it through UPNEXT_PLAYER.
func WithStubPlayer(exitCode int) EnvOption {
	return func(e *Env) {
		binDir := filepath.Join(e.BaseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			e.t.Fatalf("mkdir bin dir: %v", err)
		}
		e.playerLog = filepath.Join(e.BaseDir, "player.log")
		script := fmt.Sprintf("#!/bin/sh\necho \"$@\" >> %q\nexit %d\n", e.playerLog, exitCode)
		if err := os.WriteFile(filepath.Join(binDir, StubPlayerName), []byte(script), 0o755); err != nil {
			e.t.Fatalf("write stub player: %v", err)
		}
		e.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
		e.t.Setenv(config.EnvPlayer, StubPlayerName)
	}
}

// PlayerCalls returns the argument lines the stub player received.
func (e *Env) PlayerCalls() []string {
	e.t.Helper()
	if e.playerLog == "" {
		return nil
	}
	data, err := os.ReadFile(e.playerLog)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		e.t.Fatalf("read player log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// Document returns the current document text, or "" when it does not exist.
func (e *Env) Document() string {
	e.t.Helper()
	data, err := os.ReadFile(e.DocumentPath)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		e.t.Fatalf("read document: %v", err)
	}
	return string(data)
}
