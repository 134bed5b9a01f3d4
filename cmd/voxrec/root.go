// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/voxrec/internal/config"
)

var (
	cfg          *config.Config
	cfgFile      string
	outputDir    string
	streamName   string
	simDevices   bool
	verboseLevel int
)

var rootCmd = &cobra.Command{
	Use:   "voxrec",
	Short: "Push-button voice recorder",
	Long: `voxrec is a one-slot voice recorder: record a clip up to a fixed
length, play it back, stop either at any time. Recordings are stored
as 8-bit mono WAV; playback runs through a 3:2 sample-rate expander.

The 'run' command drives the full record/play/stop state machine from
the keyboard; 'record', 'play' and 'import' are one-shot variants.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verboseLevel)

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		if streamName != "" {
			cfg.FileName = streamName
		}
		return cfg.Validate()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults apply when omitted)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "dir", "o", "", "stream directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&streamName, "file", "f", "", "stream file name (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&simDevices, "sim", false, "use simulated audio devices instead of the sound card")
	rootCmd.PersistentFlags().IntVarP(&verboseLevel, "verbose", "v", 0, "verbose level: 0=info, 1=debug")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(infoCmd)
}

func setupLogging(level int) {
	lvl := slog.LevelInfo
	if level >= 1 {
		lvl = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}
