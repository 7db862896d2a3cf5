package library

import (
	"path/filepath"
	"strconv"
	"strings"
)

// MatchesEpisode reports whether the base name of file is consistent with
// episode number n. Names without digits always match, as do names where
// any run of digits has the value n.
func MatchesEpisode(file string, n int64) bool {
	name := filepath.Base(file)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	runs := digitRuns(name)
	if len(runs) == 0 {
		return true
	}
	for _, run := range runs {
		value, err := strconv.ParseInt(run, 10, 64)
		if err == nil && value == n {
			return true
		}
	}
	return false
}

func digitRuns(s string) []string {
	var runs []string
	start := -1
	for i := 0; i <= len(s); i++ {
		digit := i < len(s) && s[i] >= '0' && s[i] <= '9'
		switch {
		case digit && start < 0:
			start = i
		case !digit && start >= 0:
			runs = append(runs, s[start:i])
			start = -1
		}
	}
	return runs
}
