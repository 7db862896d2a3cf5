package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"upnext/internal/series"
	"upnext/internal/tracker"
)

// printRecord writes record the way the document stores it.
func printRecord(out io.Writer, tr *tracker.Tracker, record series.Series) error {
	text, err := tr.Render(record)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, strings.TrimRight(text, "\n"))
	return nil
}

// consoleReporter prints playback progress for a person watching.
type consoleReporter struct {
	out io.Writer
}

func newConsoleReporter(out io.Writer) consoleReporter {
	return consoleReporter{out: out}
}

func (r consoleReporter) EpisodeStarting(record series.Series, _ string, at time.Time) {
	fmt.Fprintf(r.out, "Starting episode %d at %s.\n\n", record.NextEpisode, at.Format("15:04"))
}

func (r consoleReporter) CountdownStarted(seconds int) {
	fmt.Fprintf(r.out, "Playing next episode in %d seconds...\n", seconds)
}

func (r consoleReporter) CountdownTick(remaining int) {
	fmt.Fprintln(r.out, remaining)
}
