package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newNextCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Play the next episode and advance the series",
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
			playback, err := tr.PlayNext(cmd.Context(), dir, assumeYes)
			if err != nil {
				return err
			}
			return printRecord(out, tr, playback.Series)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Play without the episode number check")
	return cmd
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var delaySeconds int
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play episodes back to back until the series is over",
		Long: "Play the next episode, then keep playing the following ones with a countdown\n" +
			"in between. Progress is saved after every episode, so interrupting the\n" +
			"countdown or the player keeps what was watched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			delay := cfg.Playback.DelaySeconds
			if cmd.Flags().Changed("delay-seconds") {
				if delaySeconds < 0 {
					return errors.New("--delay-seconds must not be negative")
				}
				delay = delaySeconds
			}
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
			if err := printRecord(cmd.OutOrStdout(), tr, record); err != nil {
				return err
			}
			return tr.Binge(cmd.Context(), dir, delay, assumeYes)
		},
	}

	cmd.Flags().IntVarP(&delaySeconds, "delay-seconds", "d", 0, "Delay between episodes in seconds (default from [playback] delay_seconds)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Play without the episode number check")
	return cmd
}
