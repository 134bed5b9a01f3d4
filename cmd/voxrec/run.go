// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/voxrec/device"
	"github.com/ik5/voxrec/dvr"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the recorder interactively from the keyboard",
	Long: `Run starts the record/play/stop state machine and maps keyboard
input onto it:

  r  start recording
  p  play the recorded clip
  s  stop the active session
  q  quit

Each key must be followed by Enter. Recording stops on its own at the
session cap.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.Default()

		inputs := device.NewChanInput()
		rig, cleanup, err := buildRig(cfg, log, inputs)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		go readKeys(os.Stdin, inputs, cancel)

		fmt.Println("voxrec ready: r=record p=play s=stop q=quit")
		if err := rig.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// readKeys translates line-buffered keyboard input into controller
// events. Unknown keys are ignored.
func readKeys(r *os.File, inputs *device.ChanInput, quit func()) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		switch strings.TrimSpace(sc.Text()) {
		case "r":
			inputs.C <- dvr.InputRecord
		case "p":
			inputs.C <- dvr.InputPlay
		case "s":
			inputs.C <- dvr.InputStop
		case "q":
			quit()
			return
		}
	}
	quit()
}
