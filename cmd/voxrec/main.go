// SPDX-License-Identifier: EPL-2.0

// Command voxrec records, plays back and imports voice streams using
// the recorder core.
package main

func main() {
	Execute()
}
