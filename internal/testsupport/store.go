package testsupport

import (
	"testing"

	"upnext/internal/series"
	"upnext/internal/store"
)

// MustLoad opens the store at path and loads its series list.
func MustLoad(t testing.TB, path string) (*store.Store, *series.List) {
	t.Helper()

	s := store.New(path, nil)
	list, err := s.Load()
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	return s, list
}
