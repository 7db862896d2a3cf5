// Package library lists the playable episodes of a series directory.
//
// Episodes are the regular files whose extension is a known video container,
// sorted by full path so that next_episode indexes a stable order. The
// package also carries the file-name heuristic used to double check that the
// file about to be played looks like the expected episode.
package library
