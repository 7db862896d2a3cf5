package series

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"

	"upnext/internal/errs"
)

// FirstEpisode is the next_episode value of a freshly initialized series.
const FirstEpisode int64 = 1

// Series tracks the next episode to play in one directory.
type Series struct {
	Path        string `toml:"path"`
	NextEpisode int64  `toml:"next_episode"`
}

// Over reports whether every one of total episodes has been watched.
func (s Series) Over(total int) bool {
	return s.NextEpisode > int64(total)
}

// List is an ordered set of Series, unique by Path, kept in the order the
// series were added.
type List struct {
	items []Series
}

// NewList builds a List from items, rejecting duplicate paths.
func NewList(items ...Series) (*List, error) {
	l := &List{items: make([]Series, 0, len(items))}
	for _, item := range items {
		if l.Contains(item.Path) {
			return nil, fmt.Errorf("%w: duplicate series path %q", errs.ErrSchema, item.Path)
		}
		l.items = append(l.items, item)
	}
	return l, nil
}

func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the series in list order.
func (l *List) Items() []Series {
	return append([]Series(nil), l.items...)
}

func (l *List) Contains(path string) bool {
	return l.index(path) >= 0
}

// Add appends a new series starting at the first episode.
func (l *List) Add(path string) (Series, error) {
	if l.Contains(path) {
		return Series{}, errs.ErrAlreadyExists
	}
	s := Series{Path: path, NextEpisode: FirstEpisode}
	l.items = append(l.items, s)
	return s, nil
}

// Remove drops the series for path, reporting whether it was present.
func (l *List) Remove(path string) bool {
	i := l.index(path)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Find returns the series tracked for path.
func (l *List) Find(path string) (Series, error) {
	i := l.index(path)
	if i < 0 {
		return Series{}, errs.ErrMissingSeries
	}
	return l.items[i], nil
}

// Advance moves the next episode of path by delta.
func (l *List) Advance(path string, delta int64) (Series, error) {
	i := l.index(path)
	if i < 0 {
		return Series{}, errs.ErrMissingSeries
	}
	current := l.items[i].NextEpisode
	if delta > 0 && current > math.MaxInt64-delta {
		return Series{}, fmt.Errorf("%w: advancing episode %d by %d overflows", errs.ErrInvalidEpisode, current, delta)
	}
	return l.SetNext(path, current+delta)
}

// SetNext sets the next episode of path. Values below FirstEpisode are
// rejected and leave the list unchanged.
func (l *List) SetNext(path string, next int64) (Series, error) {
	i := l.index(path)
	if i < 0 {
		return Series{}, errs.ErrMissingSeries
	}
	if next < FirstEpisode {
		return Series{}, fmt.Errorf("%w: next episode must be at least %d, got %d", errs.ErrInvalidEpisode, FirstEpisode, next)
	}
	l.items[i].NextEpisode = next
	return l.items[i], nil
}

// Search returns the series whose path contains term. With foldCase the
// comparison uses Unicode case folding.
func (l *List) Search(term string, foldCase bool) []Series {
	var matches []Series
	if foldCase {
		folder := cases.Fold()
		term = folder.String(term)
		for _, s := range l.items {
			if strings.Contains(folder.String(s.Path), term) {
				matches = append(matches, s)
			}
		}
		return matches
	}
	for _, s := range l.items {
		if strings.Contains(s.Path, term) {
			matches = append(matches, s)
		}
	}
	return matches
}

func (l *List) index(path string) int {
	for i, s := range l.items {
		if s.Path == path {
			return i
		}
	}
	return -1
}
