// SPDX-License-Identifier: EPL-2.0

package ring

import "errors"

var (
	ErrOverrun       = errors.New("ring overrun: no free page for producer")
	ErrUnderrun      = errors.New("ring underrun: no full page for consumer")
	ErrPageHeld      = errors.New("ring page already checked out on this side")
	ErrDepthTooSmall = errors.New("ring depth must be at least 2 pages")
	ErrPageSize      = errors.New("ring page size must be positive")
)
