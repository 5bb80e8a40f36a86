package main

import (
	"strings"

	"github.com/spf13/cobra"

	"logwatch/internal/daemonrun"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var fresh bool
	var logLevel string
	var bind string
	var dev bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the log streaming server in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if b := strings.TrimSpace(bind); b != "" {
				cfg.Paths.APIBind = b
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{
				LogLevel:    logLevel,
				Development: dev,
				Fresh:       fresh,
			})
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "Replace the watched file with a startup line before serving")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	cmd.Flags().StringVar(&bind, "bind", "", "Override the configured listen address")
	cmd.Flags().BoolVar(&dev, "dev", false, "Include source locations in log output")
	return cmd
}
