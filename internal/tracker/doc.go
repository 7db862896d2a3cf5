// Package tracker implements the upnext operations on top of the store, the
// directory scan and the player.
//
// Every operation follows the same shape: load the series list once, apply
// a single mutation, save once, and return the resulting record. Nothing is
// saved when an operation fails. Binge repeats the single-episode operation,
// saving after each episode before waiting out the countdown, so an
// interrupt never loses watched progress.
package tracker
