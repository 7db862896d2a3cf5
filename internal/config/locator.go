package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvDocumentPath overrides the document location.
	EnvDocumentPath = "UPNEXT_TOML_PATH"
	// DefaultFileName is the document name inside the home directory.
	DefaultFileName = ".upnext.toml"
)

// ErrNoHome is returned when neither an override nor a home directory is known.
var ErrNoHome = errors.New("cannot locate document: no home directory and " + EnvDocumentPath + " is unset")

// Locator holds the inputs of document location resolution.
type Locator struct {
	OverridePath string
	HomeDir      string
}

// LocatorFromEnv reads the override and home directory from the process
// environment.
func LocatorFromEnv() Locator {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return Locator{
		OverridePath: strings.TrimSpace(os.Getenv(EnvDocumentPath)),
		HomeDir:      home,
	}
}

// WithOverride returns a copy of l using path when it is non-empty.
func (l Locator) WithOverride(path string) Locator {
	if path = strings.TrimSpace(path); path != "" {
		l.OverridePath = path
	}
	return l
}

// Resolve returns the document path: the override when set, with a leading
// ~ expanded against HomeDir, else HomeDir/.upnext.toml.
func (l Locator) Resolve() (string, error) {
	if l.OverridePath != "" {
		return expandPath(l.OverridePath, l.HomeDir)
	}
	if l.HomeDir == "" {
		return "", ErrNoHome
	}
	return filepath.Join(l.HomeDir, DefaultFileName), nil
}

func expandPath(pathValue, home string) (string, error) {
	if strings.HasPrefix(pathValue, "~") {
		if home == "" {
			return "", ErrNoHome
		}
		if pathValue == "~" {
			pathValue = home
		} else if pathValue[1] == '/' || pathValue[1] == '\\' {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	return filepath.Clean(pathValue), nil
}
