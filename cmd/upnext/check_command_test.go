package main

import (
	"strings"
	"testing"

	"upnext/internal/testsupport"
)

func TestCheckPasses(t *testing.T) {
	env := testsupport.NewEnv(t, testsupport.WithStubPlayer(0))
	testsupport.WithDocument(seriesTable(env.SeriesDir, 1))(env)

	stdout, _, err := runCLI(t, env, "", "check")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, stdout)
	}
	for _, want := range []string{"== upnext check ==", "Settings:", "Document:", "Player:", "Series directory:"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in %q", want, stdout)
		}
	}
	if strings.Contains(stdout, "[ERROR]") {
		t.Fatalf("unexpected failure in %q", stdout)
	}
}

func TestCheckReportsProblems(t *testing.T) {
	env := testsupport.NewEnv(t)
	t.Setenv("PATH", env.BaseDir)
	testsupport.WithDocument("[playback]\ndelay_seconds = -4\n")(env)

	stdout, _, err := runCLI(t, env, "", "check")
	if err == nil {
		t.Fatalf("expected failure, got output %q", stdout)
	}
	for _, want := range []string{"Settings:", "Player:"} {
		line := lineContaining(stdout, want)
		if !strings.Contains(line, "[ERROR]") {
			t.Fatalf("expected %s to fail, got %q", want, line)
		}
	}
}

func lineContaining(text, needle string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	return ""
}
