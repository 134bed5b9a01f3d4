// SPDX-License-Identifier: EPL-2.0

package main

import (
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record one clip and exit",
	Long: `Record starts a recording session immediately and runs until the
session cap is reached or the process is interrupted. Interrupting
stops the recording cleanly; the clip recorded so far is kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.Default()

		rig, cleanup, err := buildRig(cfg, log, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		log.Info("recording", "file", cfg.FileName, "max_seconds", cfg.MaxSessionSeconds)
		if err := rig.RecordOnce(ctx, cfg.FileName); err != nil {
			return err
		}
		log.Info("recording finished", "file", cfg.FileName)
		return nil
	},
}
