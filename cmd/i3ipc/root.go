package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var (
		socketFlag   string
		configFlag   string
		logLevelFlag string
	)

	ctx := newCommandContext(&socketFlag, &configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "i3ipc",
		Short:         "Send messages to and receive events from i3 or sway",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}

			_, err := ctx.ensureOptions(cmd)

			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "Path to the IPC socket (skips discovery)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newMsgCommand(ctx))
	rootCmd.AddCommand(newSubscribeCommand(ctx))
	rootCmd.AddCommand(newTypesCommand())
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newSocketCommand(ctx))
	rootCmd.AddCommand(newMCPCommand(ctx))

	return rootCmd
}
