// Package player launches the external media player for one episode and
// provides the interruptible countdown used between binge episodes.
//
// Command execution goes through the Executor interface so tests can
// substitute a fake and assert on the binary and arguments without spawning
// processes.
package player
