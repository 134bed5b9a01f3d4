// SPDX-License-Identifier: EPL-2.0

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/voxrec/importer"
	"github.com/ik5/voxrec/store"
)

var importCmd = &cobra.Command{
	Use:   "import <audio-file>",
	Short: "Convert an audio file into the recorder's clip slot",
	Long: `Import decodes a WAV, AIFF, MP3 or Ogg Vorbis file, mixes it down to mono,
resamples it to the capture rate and stores it as the current clip, so
'play' renders it exactly like a recording.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.Default()

		st, err := store.NewWavStore(cfg.OutputDir, cfg.SampleRate)
		if err != nil {
			return err
		}

		im := importer.New(st, cfg.SampleRate, cfg.PageSize, log)
		n, err := im.Import(args[0], cfg.FileName)
		if err != nil {
			return err
		}

		log.Info("imported",
			"source", args[0],
			"file", cfg.FileName,
			"samples", n,
			"seconds", float64(n)/float64(cfg.SampleRate),
		)
		return nil
	},
}
