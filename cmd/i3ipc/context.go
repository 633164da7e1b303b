package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	i3ipc "github.com/wagiedev/i3ipc-go"
	"github.com/wagiedev/i3ipc-go/internal/config"
)

type commandContext struct {
	socketFlag   *string
	configFlag   *string
	logLevelFlag *string

	optionsOnce sync.Once
	options     *i3ipc.Options
	optionsErr  error
}

func newCommandContext(socketFlag, configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		socketFlag:   socketFlag,
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureOptions merges the flags over the config file and builds the logger.
func (c *commandContext) ensureOptions(cmd *cobra.Command) (*i3ipc.Options, error) {
	c.optionsOnce.Do(func() {
		file, err := config.LoadFile(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.optionsErr = err

			return
		}

		levelName := file.LogLevel
		if flag := strings.TrimSpace(*c.logLevelFlag); flag != "" {
			levelName = flag
		}

		level, err := config.ParseLogLevel(levelName)
		if err != nil {
			c.optionsErr = fmt.Errorf("--log-level: %w", err)

			return
		}

		options := &i3ipc.Options{
			SocketPath: strings.TrimSpace(*c.socketFlag),
			Logger: slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})),
		}

		file.Apply(options)

		c.options = options
	})

	return c.options, c.optionsErr
}

func (c *commandContext) withClient(cmd *cobra.Command, fn func(context.Context, i3ipc.Client) error) error {
	options, err := c.ensureOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return i3ipc.WithClient(ctx, func(client i3ipc.Client) error {
		return fn(ctx, client)
	}, i3ipc.WithOptions(options))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}

	return false
}
