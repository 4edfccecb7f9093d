package main

import (
	"bytes"
)

// captureOutput swaps stdOut/stdErr for the duration of fn and returns
// what was written to each, letting tests assert on CLI output
// without touching the real os.Stdout/os.Stderr.
func captureOutput(fn func()) (out string, errOut string) {
	var outBuf, errBuf bytes.Buffer
	prevOut, prevErr := stdOut, stdErr
	stdOut, stdErr = &outBuf, &errBuf
	defer func() { stdOut, stdErr = prevOut, prevErr }()

	fn()

	return outBuf.String(), errBuf.String()
}
