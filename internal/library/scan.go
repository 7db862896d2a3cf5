package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"upnext/internal/errs"
)

// VideoExtensions is the allow-list of episode container formats, without
// the leading dot.
var VideoExtensions = []string{"mkv", "mp4", "avi", "flv", "mov", "wmv", "webm", "mpg", "mpeg", "m4v"}

var videoExtensionSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(VideoExtensions))
	for _, ext := range VideoExtensions {
		set["."+ext] = struct{}{}
	}
	return set
}()

// ErrNoExtension reports a regular file in a series directory whose name has
// no extension.
var ErrNoExtension = errors.New("file has no extension")

// FindEpisodes returns the video files of dir sorted by full path. Symlinks
// are followed; directories and hidden files are ignored. A visible regular
// file without an extension fails the whole scan.
func FindEpisodes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, "scan series", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if entry.Type()&os.ModeSymlink != 0 {
				continue
			}
			return nil, errs.Wrap(errs.ErrIO, "scan series", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		ext := filepath.Ext(name)
		if ext == "" || ext == name {
			return nil, fmt.Errorf("%w: %w: %s", errs.ErrIO, ErrNoExtension, path)
		}
		if _, ok := videoExtensionSet[strings.ToLower(ext)]; !ok {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
