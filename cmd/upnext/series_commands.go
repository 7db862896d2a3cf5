package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"upnext/internal/errs"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Start tracking the series in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.seriesDir()
			if err != nil {
				return err
			}
			tr, err := ctx.newTracker(cmd)
			if err != nil {
				return err
			}
			record, err := tr.Init(dir)
			if err != nil {
				return err
			}
			return printRecord(cmd.OutOrStdout(), tr, record)
		},
	}
}

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the series tracked for the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.seriesDir()
			if err != nil {
				return err
			}
			tr, err := ctx.newTracker(cmd)
			if err != nil {
				return err
			}
			record, err := tr.Current(dir)
			if err != nil {
				return err
			}
			return printRecord(cmd.OutOrStdout(), tr, record)
		},
	}
}

func newFindCommand(ctx *commandContext) *cobra.Command {
	var ignoreCase bool

	cmd := &cobra.Command{
		Use:   "find TERM",
		Short: "Print every series whose path contains TERM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := ctx.newTracker(cmd)
			if err != nil {
				return err
			}
			matches, err := tr.Find(args[0], ignoreCase)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No series matches %q.\n", args[0])
				return nil
			}
			for _, record := range matches {
				if err := printRecord(out, tr, record); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Match regardless of case")
	return cmd
}

func newIncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inc [N]",
		Short: "Move the next episode forward by N (default 1)",
		Long: "Move the next episode forward by N (default 1). A negative N moves it back.\n" +
			"Once the next episode is past the last file, the series is finished.\n" +
			"Separate a negative N from the flags: upnext inc -- -2",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := int64(1)
			if len(args) == 1 {
				parsed, err := parseEpisodeArg(args[0])
				if err != nil {
					return err
				}
				n = parsed
			}
			dir, err := ctx.seriesDir()
			if err != nil {
				return err
			}
			tr, err := ctx.newTracker(cmd)
			if err != nil {
				return err
			}
			before, after, err := tr.Increment(dir, n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := printRecord(out, tr, before); err != nil {
				return err
			}
			return printRecord(out, tr, after)
		},
	}
}

func newSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set N",
		Short: "Set the next episode number (starting at 1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseEpisodeArg(args[0])
			if err != nil {
				return err
			}
			dir, err := ctx.seriesDir()
			if err != nil {
				return err
			}
			tr, err := ctx.newTracker(cmd)
			if err != nil {
				return err
			}
			before, err := tr.Current(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := printRecord(out, tr, before); err != nil {
				return err
			}
			after, err := tr.Set(dir, n)
			if err != nil {
				return err
			}
			return printRecord(out, tr, after)
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Stop tracking the series in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.seriesDir()
			if err != nil {
				return err
			}
			tr, err := ctx.newTracker(cmd)
			if err != nil {
				return err
			}
			record, err := tr.Current(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := printRecord(out, tr, record); err != nil {
				return err
			}
			if _, err := tr.Remove(dir); err != nil {
				return err
			}
			fmt.Fprintln(out, "Series removed.")
			return nil
		},
	}
}

func parseEpisodeArg(value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", errs.ErrInvalidEpisode, value)
	}
	return n, nil
}
