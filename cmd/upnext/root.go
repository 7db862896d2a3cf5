package main

import (
	"github.com/spf13/cobra"
)

const rootLongDescription = `upnext keeps track of the progress in the series you are watching.

Progress lives in ~/.upnext.toml: for each series directory it records the
path and the number of the next episode, counted in the sorted list of video
files of that directory. Renaming, adding or removing episodes shifts the
numbering; fix it by editing the file (upnext edit). Comments and layout of
the file are kept when upnext writes it.

Set UPNEXT_TOML_PATH (or pass --file) to use another location.`

func newRootCommand() *cobra.Command {
	var fileFlag string
	var dirFlag string
	var logLevelFlag string

	ctx := newCommandContext(&fileFlag, &dirFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "upnext",
		Short:         "Track and play the next episode of a series",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Series document path (overrides UPNEXT_TOML_PATH)")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Series directory (defaults to the working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newInitCommand(ctx))
	rootCmd.AddCommand(newInfoCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newFindCommand(ctx))
	rootCmd.AddCommand(newIncCommand(ctx))
	rootCmd.AddCommand(newSetCommand(ctx))
	rootCmd.AddCommand(newRemoveCommand(ctx))
	rootCmd.AddCommand(newNextCommand(ctx))
	rootCmd.AddCommand(newPlayCommand(ctx))
	rootCmd.AddCommand(newWhichCommand(ctx))
	rootCmd.AddCommand(newEditCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}
