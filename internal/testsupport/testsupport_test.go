package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEpisodeNames(t *testing.T) {
	got := EpisodeNames(10)
	if got[0] != "Show S01E01.mkv" || got[9] != "Show S01E10.mkv" {
		t.Fatalf("unexpected names %q", got)
	}
}

func TestNewEnv(t *testing.T) {
	env := NewEnv(t, WithDocument("# hi\n"), WithEpisodes("a.mkv"), WithStubPlayer(0))
	if os.Getenv("HOME") != env.HomeDir {
		t.Fatalf("HOME not redirected")
	}
	if env.Document() != "# hi\n" {
		t.Fatalf("unexpected document %q", env.Document())
	}
	if _, err := os.Stat(filepath.Join(env.SeriesDir, "a.mkv")); err != nil {
		t.Fatalf("episode missing: %v", err)
	}
	if calls := env.PlayerCalls(); calls != nil {
		t.Fatalf("expected no calls, got %q", calls)
	}
}

func TestMustLoad(t *testing.T) {
	env := NewEnv(t, WithDocument("[[series]]\npath = \"/a\"\nnext_episode = 2\n"))
	s, list := MustLoad(t, env.DocumentPath)
	if s.Path() != env.DocumentPath {
		t.Fatalf("unexpected store path %q", s.Path())
	}
	if items := list.Items(); len(items) != 1 || items[0].NextEpisode != 2 {
		t.Fatalf("unexpected items %+v", items)
	}
}
