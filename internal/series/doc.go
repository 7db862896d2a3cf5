// Package series holds the in-memory model of watching progress: a Series
// record per tracked directory and the insertion-ordered List of them that a
// command loads, mutates once and hands back to the store.
package series
