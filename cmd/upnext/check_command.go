package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"upnext/internal/config"
	"upnext/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "check",
		Short:       "Check the document, the player and the series directory",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			path, err := ctx.documentPath()
			if err != nil {
				return err
			}
			dir, err := ctx.seriesDir()
			if err != nil {
				return err
			}

			results := make([]preflight.Result, 0, 4)
			cfg, cfgErr := ctx.ensureConfig()
			if cfgErr != nil {
				fallback := config.Default()
				cfg = &fallback
				results = append(results, preflight.Result{Name: "Settings", Detail: cfgErr.Error()})
			} else {
				results = append(results, preflight.Result{Name: "Settings", Passed: true, Detail: "valid"})
			}
			results = append(results, preflight.RunAll(cfg, preflight.Target{DocumentPath: path, SeriesDir: dir})...)

			for _, line := range renderSectionHeader("upnext check", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range preflightLines(results, colorize) {
				fmt.Fprintln(out, line)
			}
			if preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, result := range results {
		kind := statusOK
		if !result.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
	return lines
}
