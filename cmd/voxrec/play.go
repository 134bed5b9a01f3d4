// SPDX-License-Identifier: EPL-2.0

package main

import (
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the recorded clip and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.Default()

		rig, cleanup, err := buildRig(cfg, log, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		log.Info("playing", "file", cfg.FileName)
		if err := rig.PlayOnce(ctx, cfg.FileName); err != nil {
			return err
		}
		log.Info("playback finished", "file", cfg.FileName)
		return nil
	},
}
