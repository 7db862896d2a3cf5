package library

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"upnext/internal/errs"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestFindEpisodesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b02.mkv", "a10.MP4", "b01.mkv", "notes.txt", "cover.jpg", ".hidden", ".upnext.toml.tmp")
	if err := os.Mkdir(filepath.Join(dir, "extras.mkv"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := FindEpisodes(dir)
	if err != nil {
		t.Fatalf("FindEpisodes: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a10.MP4"),
		filepath.Join(dir, "b01.mkv"),
		filepath.Join(dir, "b02.mkv"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("got %q want %q", files, want)
	}
}

func TestFindEpisodesFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	touch(t, other, "real.mkv")
	if err := os.Symlink(filepath.Join(other, "real.mkv"), filepath.Join(dir, "e01.mkv")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(other, "gone.mkv"), filepath.Join(dir, "e02.mkv")); err != nil {
		t.Fatal(err)
	}

	files, err := FindEpisodes(dir)
	if err != nil {
		t.Fatalf("FindEpisodes: %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(dir, "e01.mkv") {
		t.Fatalf("unexpected files %q", files)
	}
}

func TestFindEpisodesRejectsMissingExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "e01.mkv", "README")

	_, err := FindEpisodes(dir)
	if !errors.Is(err, ErrNoExtension) || !errors.Is(err, errs.ErrIO) {
		t.Fatalf("expected ErrNoExtension, got %v", err)
	}
}

func TestFindEpisodesMissingDirectory(t *testing.T) {
	_, err := FindEpisodes(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, errs.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestMatchesEpisode(t *testing.T) {
	tests := []struct {
		file string
		n    int64
		want bool
	}{
		{file: "/tv/show/Show - 03.mkv", n: 3, want: true},
		{file: "/tv/show/Show S01E03.mkv", n: 3, want: true},
		{file: "/tv/show/Show S01E04.mkv", n: 3, want: false},
		{file: "/tv/show/Pilot.mkv", n: 1, want: true},
		{file: "/tv/show/episode 012.mp4", n: 12, want: true},
		{file: "/tv/show2/finale.mkv", n: 9, want: true},
		{file: "/tv/show/1080p.mkv", n: 2, want: false},
	}
	for _, tt := range tests {
		if got := MatchesEpisode(tt.file, tt.n); got != tt.want {
			t.Errorf("MatchesEpisode(%q, %d) = %v, want %v", tt.file, tt.n, got, tt.want)
		}
	}
}
