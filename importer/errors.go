// SPDX-License-Identifier: EPL-2.0

package importer

import "errors"

var (
	ErrUnknownFormat = errors.New("no decoder registered for format")
	ErrNotPCM        = errors.New("input is not PCM-decodable")
	ErrEmptyInput    = errors.New("input holds no samples")
)
