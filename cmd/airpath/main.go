// SPDX-License-Identifier: MIT

// Command airpath plans walking and cycling routes that avoid air pollution
// above configurable limits, from the command line or as an HTTP service.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "airpath:", err)
		os.Exit(1)
	}
}
