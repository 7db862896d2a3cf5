package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"upnext/internal/errs"
	"upnext/internal/testsupport"
)

func TestNextPlaysAndAdvances(t *testing.T) {
	env := testsupport.NewEnv(t,
		testsupport.WithEpisodes(testsupport.EpisodeNames(3)...),
		testsupport.WithStubPlayer(0),
	)
	testsupport.WithDocument("# watching\n" + seriesTable(env.SeriesDir, 2))(env)

	stdout, _, err := runCLI(t, env, "", "next")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !strings.Contains(stdout, "Starting episode 2 at ") {
		t.Fatalf("expected start message, got %q", stdout)
	}
	if !strings.HasSuffix(stdout, seriesTable(env.SeriesDir, 3)) {
		t.Fatalf("expected updated record last, got %q", stdout)
	}
	calls := env.PlayerCalls()
	want := filepath.Join(env.SeriesDir, "Show S01E02.mkv") + " --play-and-exit --fullscreen"
	if len(calls) != 1 || calls[0] != want {
		t.Fatalf("unexpected player calls %q", calls)
	}
	if got := env.Document(); got != "# watching\n"+seriesTable(env.SeriesDir, 3) {
		t.Fatalf("unexpected document %q", got)
	}
}

func TestNextSeriesOver(t *testing.T) {
	env := testsupport.NewEnv(t,
		testsupport.WithEpisodes(testsupport.EpisodeNames(2)...),
		testsupport.WithStubPlayer(0),
	)
	testsupport.WithDocument(seriesTable(env.SeriesDir, 3))(env)

	if _, _, err := runCLI(t, env, "", "next"); !errors.Is(err, errs.ErrSeriesOver) {
		t.Fatalf("expected ErrSeriesOver, got %v", err)
	}
	if calls := env.PlayerCalls(); len(calls) != 0 {
		t.Fatalf("player must not run, got %q", calls)
	}
}

func TestNextPlayerFailureKeepsProgress(t *testing.T) {
	env := testsupport.NewEnv(t,
		testsupport.WithEpisodes(testsupport.EpisodeNames(2)...),
		testsupport.WithStubPlayer(3),
	)
	doc := seriesTable(env.SeriesDir, 1)
	testsupport.WithDocument(doc)(env)

	if _, _, err := runCLI(t, env, "", "next"); !errors.Is(err, errs.ErrPlayerFailed) {
		t.Fatalf("expected ErrPlayerFailed, got %v", err)
	}
	if got := env.Document(); got != doc {
		t.Fatalf("document changed: %q", got)
	}
}

func TestNextPlayerNotFound(t *testing.T) {
	env := testsupport.NewEnv(t, testsupport.WithEpisodes(testsupport.EpisodeNames(1)...))
	t.Setenv("UPNEXT_PLAYER", "upnext-no-such-player")
	testsupport.WithDocument(seriesTable(env.SeriesDir, 1))(env)

	if _, _, err := runCLI(t, env, "", "next"); !errors.Is(err, errs.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestNextEpisodeNumberCheck(t *testing.T) {
	env := testsupport.NewEnv(t,
		testsupport.WithEpisodes("Pilot 7.mkv"),
		testsupport.WithStubPlayer(0),
	)
	doc := seriesTable(env.SeriesDir, 1)
	testsupport.WithDocument(doc)(env)

	stdout, _, err := runCLI(t, env, "n\n", "next")
	if !errors.Is(err, errs.ErrEpisodeMismatch) {
		t.Fatalf("expected ErrEpisodeMismatch, got %v", err)
	}
	if !strings.Contains(stdout, "Play anyway? [y/N]") {
		t.Fatalf("expected prompt, got %q", stdout)
	}
	if calls := env.PlayerCalls(); len(calls) != 0 {
		t.Fatalf("player must not run after declining, got %q", calls)
	}
	if got := env.Document(); got != doc {
		t.Fatalf("document changed: %q", got)
	}

	if _, _, err := runCLI(t, env, "y\n", "next"); err != nil {
		t.Fatalf("next with confirmation: %v", err)
	}
	if calls := env.PlayerCalls(); len(calls) != 1 {
		t.Fatalf("expected one player call, got %q", calls)
	}
}

func TestNextYesSkipsCheck(t *testing.T) {
	env := testsupport.NewEnv(t,
		testsupport.WithEpisodes("Pilot 7.mkv"),
		testsupport.WithStubPlayer(0),
	)
	testsupport.WithDocument(seriesTable(env.SeriesDir, 1))(env)

	stdout, _, err := runCLI(t, env, "", "next", "--yes")
	if err != nil {
		t.Fatalf("next --yes: %v", err)
	}
	if strings.Contains(stdout, "Play anyway?") {
		t.Fatalf("unexpected prompt in %q", stdout)
	}
}

func TestPlayBingesUntilSeriesOver(t *testing.T) {
	env := testsupport.NewEnv(t,
		testsupport.WithEpisodes(testsupport.EpisodeNames(3)...),
		testsupport.WithStubPlayer(0),
	)
	testsupport.WithDocument(seriesTable(env.SeriesDir, 2))(env)

	stdout, _, err := runCLI(t, env, "", "play", "-d", "0")
	if !errors.Is(err, errs.ErrSeriesOver) {
		t.Fatalf("expected ErrSeriesOver, got %v", err)
	}
	for _, want := range []string{"Starting episode 2 at ", "Starting episode 3 at "} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in %q", want, stdout)
		}
	}
	if calls := env.PlayerCalls(); len(calls) != 2 {
		t.Fatalf("expected two player calls, got %q", calls)
	}
	if got := env.Document(); got != seriesTable(env.SeriesDir, 4) {
		t.Fatalf("unexpected document %q", got)
	}
}

func TestPlayCountdown(t *testing.T) {
	env := testsupport.NewEnv(t,
		testsupport.WithEpisodes(testsupport.EpisodeNames(2)...),
		testsupport.WithStubPlayer(0),
	)
	testsupport.WithDocument(seriesTable(env.SeriesDir, 1) + "\n[playback]\ndelay_seconds = 1\n")(env)

	stdout, _, err := runCLI(t, env, "", "play")
	if !errors.Is(err, errs.ErrSeriesOver) {
		t.Fatalf("expected ErrSeriesOver, got %v", err)
	}
	if !strings.Contains(stdout, "Playing next episode in 1 seconds...\n1\n") {
		t.Fatalf("expected countdown in %q", stdout)
	}
}

func TestPlayRejectsNegativeDelay(t *testing.T) {
	env := testsupport.NewEnv(t)
	testsupport.WithDocument(seriesTable(env.SeriesDir, 1))(env)

	if _, _, err := runCLI(t, env, "", "play", "--delay-seconds=-1"); err == nil {
		t.Fatal("expected error for negative delay")
	}
}
