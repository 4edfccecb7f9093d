package main

import (
	"fmt"

	"github.com/ido50/mccs/internal/version"
)

// printVersion prints the build-time version and commit info.
func printVersion() {
	fmt.Fprintln(stdOut, version.Full())
}
