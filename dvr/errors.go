// SPDX-License-Identifier: EPL-2.0

package dvr

import "errors"

var (
	ErrSessionActive = errors.New("a session is already active")
	ErrNoSession     = errors.New("no active session")
	ErrEmptyStream   = errors.New("stored stream holds no samples")
	ErrTickViolation = errors.New("tick-path protocol violation")
)
