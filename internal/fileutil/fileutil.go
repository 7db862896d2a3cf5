package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultPerm is used when the destination does not exist yet.
const DefaultPerm os.FileMode = 0o644

// WriteFileAtomic replaces path with data by writing a sibling temp file and
// renaming it over the destination. A symlinked destination is resolved so
// the link itself survives, and an existing file keeps its permissions.
func WriteFileAtomic(path string, data []byte) error {
	target, perm, err := resolveTarget(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmpName := filepath.Join(dir, "."+filepath.Base(target)+"."+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpName, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp to %s: %w", target, err)
	}
	return nil
}

// maxLinks bounds the symlink chain followed before giving up.
const maxLinks = 40

// resolveTarget follows path through symlinks, including a final link whose
// target does not exist yet, and returns the file to replace.
func resolveTarget(path string) (string, os.FileMode, error) {
	current := path
	for range maxLinks {
		info, err := os.Lstat(current)
		if errors.Is(err, fs.ErrNotExist) {
			return current, DefaultPerm, nil
		}
		if err != nil {
			return "", 0, fmt.Errorf("stat %s: %w", current, err)
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			if info.IsDir() {
				return "", 0, fmt.Errorf("%s is a directory", current)
			}
			return current, info.Mode().Perm(), nil
		}
		link, err := os.Readlink(current)
		if err != nil {
			return "", 0, fmt.Errorf("read link %s: %w", current, err)
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(current), link)
		}
		current = link
	}
	return "", 0, fmt.Errorf("resolve %s: too many levels of symbolic links", path)
}

// ReadFileOptional returns the contents of path, or nil when it does not exist.
func ReadFileOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}
