package preflight

import (
	"upnext/internal/config"
	"upnext/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Target names what RunAll inspects.
type Target struct {
	DocumentPath string
	SeriesDir    string
}

// RunAll executes every check for the given config and target.
func RunAll(cfg *config.Config, target Target) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{CheckDocumentAccess("Document", target.DocumentPath)}
	results = append(results, CheckPlayer(cfg)...)
	if target.SeriesDir != "" {
		results = append(results, CheckReadableDirectory("Series directory", target.SeriesDir))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return true
		}
	}
	return false
}

// CheckPlayer verifies the configured player binary is available.
func CheckPlayer(cfg *config.Config) []Result {
	statuses := deps.CheckBinaries([]deps.Requirement{{
		Name:        "Player",
		Command:     cfg.Player.Binary,
		Description: "Required for next and play",
	}})
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		result := Result{Name: status.Name, Passed: status.Available || status.Optional, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Path
		}
		results = append(results, result)
	}
	return results
}
