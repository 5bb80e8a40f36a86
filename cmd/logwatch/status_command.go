package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"logwatch/internal/daemonctl"
	"logwatch/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server and watched file status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			view := newStatusView(out)

			view.section("Server")
			running, pid, procErr := daemonctl.ProcessInfo(cfg)
			switch {
			case procErr != nil:
				view.item("Process", levelWarn, procErr.Error())
			case running && pid > 0:
				view.item("Process", levelOK, "running (pid "+strconv.Itoa(pid)+")")
			case running:
				view.item("Process", levelOK, "running")
			default:
				view.item("Process", levelInfo, "not running")
			}

			server := preflight.CheckServer(cmd.Context(), cfg.Paths.APIBind)
			switch {
			case server.Passed:
				view.item("HTTP", levelOK, server.Detail)
			case running:
				// lock held but nothing answering on the bind address
				view.item("HTTP", levelError, server.Detail)
			default:
				view.item("HTTP", levelInfo, server.Detail)
			}
			view.item("Config", levelInfo, configLabel(ctx.configPath))
			view.item("Watching", levelInfo, cfg.Paths.WatchFile)

			view.section("Checks")
			view.checks(preflight.RunAll(cmd.Context(), cfg))

			fmt.Fprintln(out, view.String())
			return nil
		},
	}
}

func configLabel(path string) string {
	if strings.TrimSpace(path) == "" {
		return "defaults"
	}
	return path
}
