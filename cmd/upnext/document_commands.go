package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"upnext/internal/errs"
	"upnext/internal/fileutil"
	"upnext/internal/tracker"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every tracked series",
		Long: "Print the series document as it is stored, comments included.\n" +
			"With --table, print each series with its progress through the directory instead.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asTable {
				tr, err := ctx.newTracker(cmd)
				if err != nil {
					return err
				}
				overview, err := tr.Overview()
				if err != nil {
					return err
				}
				if len(overview) == 0 {
					fmt.Fprintln(out, "No series tracked yet.")
					return nil
				}
				fmt.Fprintln(out, renderProgressTable(overview, shouldColorize(out)))
				return nil
			}

			path, err := ctx.documentPath()
			if err != nil {
				return err
			}
			data, err := fileutil.ReadFileOptional(path)
			if err != nil {
				return errs.Wrap(errs.ErrIO, "read document", path, err)
			}
			text := string(data)
			if text != "" && !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			fmt.Fprint(out, text)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asTable, "table", "t", false, "Show progress as a table")
	return cmd
}

func renderProgressTable(overview []tracker.Progress, colorize bool) string {
	rows := make([][]string, 0, len(overview))
	for _, entry := range overview {
		episodes := strconv.Itoa(entry.Episodes)
		state := statusOK
		stateText := "watching"
		switch {
		case entry.Err != nil:
			episodes = "-"
			state = statusError
			stateText = "unreadable"
		case entry.Series.Over(entry.Episodes):
			state = statusInfo
			stateText = "finished"
		}
		if colorize {
			stateText = statusKindColor(state) + stateText + ansiReset
		}
		rows = append(rows, []string{
			entry.Series.Path,
			strconv.FormatInt(entry.Series.NextEpisode, 10),
			episodes,
			stateText,
		})
	}
	return renderTable(
		[]string{"Path", "Next", "Episodes", "State"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	)
}

func newWhichCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "which",
		Short:       "Print the path of the series document",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.documentPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "edit",
		Short:       "Open the series document in an editor",
		Long:        "Open the series document in $VISUAL or $EDITOR, falling back to xdg-open.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.documentPath()
			if err != nil {
				return err
			}
			editor := editorCommand()
			if len(editor) == 0 {
				return errors.New("no editor found: set $VISUAL or $EDITOR")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opening %s in %s.\n", path, editor[0])

			run := exec.CommandContext(cmd.Context(), editor[0], append(editor[1:], path)...)
			run.Stdin = cmd.InOrStdin()
			run.Stdout = cmd.OutOrStdout()
			run.Stderr = cmd.ErrOrStderr()
			if err := run.Run(); err != nil {
				return fmt.Errorf("run editor %s: %w", editor[0], err)
			}
			return nil
		},
	}
}

// editorCommand returns the editor invocation split into fields, or nil
// when neither an editor variable nor xdg-open is available.
func editorCommand() []string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(name)); len(fields) > 0 {
			return fields
		}
	}
	if path, err := exec.LookPath("xdg-open"); err == nil {
		return []string{path}
	}
	return nil
}
