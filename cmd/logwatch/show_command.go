package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"logwatch/internal/logs"
	"logwatch/internal/logstream"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int
	var file string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the last lines of the watched file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Paths.WatchFile
			if f := strings.TrimSpace(file); f != "" {
				path = f
			}
			out := cmd.OutOrStdout()

			client, err := logs.NewStreamClient(cfg.Paths.APIBind)
			if err != nil {
				return fmt.Errorf("resolve api bind: %w", err)
			}
			printed, err := logstream.Stream(cmd.Context(), nil, client, logstream.Options{
				Path:         path,
				ServerPath:   cfg.Paths.WatchFile,
				Lines:        lines,
				ChunkSize:    cfg.Tail.ChunkSize,
				Follow:       follow,
				PollInterval: cfg.PollInterval(),
			}, func(line string) {
				fmt.Fprintln(out, line)
			})
			if err != nil {
				return err
			}
			if !printed && !follow {
				fmt.Fprintln(out, "No log entries available")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow new lines (through the running server when reachable)")
	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "Number of lines to show")
	cmd.Flags().StringVar(&file, "file", "", "Read this file instead of the configured watch file")
	return cmd
}
