// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/voxrec/store"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the recorded clip and the active settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("capture rate:  %d Hz\n", cfg.SampleRate)
		fmt.Printf("tick rate:     %d Hz\n", cfg.TickRate())
		fmt.Printf("page size:     %d bytes\n", cfg.PageSize)
		fmt.Printf("session cap:   %d s (%d pages)\n", cfg.MaxSessionSeconds, cfg.MaxSessionPages())
		fmt.Printf("clip:          %s/%s\n", cfg.OutputDir, cfg.FileName)

		st, err := store.NewWavStore(cfg.OutputDir, cfg.SampleRate)
		if err != nil {
			return err
		}
		r, err := st.Open(cfg.FileName)
		if err != nil {
			fmt.Println("clip length:   none recorded")
			return nil
		}
		defer r.Close()

		n := r.SampleCount()
		fmt.Printf("clip length:   %d samples (%.2f s)\n", n, float64(n)/float64(cfg.SampleRate))
		return nil
	},
}
