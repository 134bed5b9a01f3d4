// SPDX-License-Identifier: EPL-2.0

package store

import "errors"

var (
	ErrNotWavFile        = errors.New("not a WAV container")
	ErrUnsupportedLayout = errors.New("container must be 8-bit mono PCM")
	ErrClosed            = errors.New("stream already closed")
)
