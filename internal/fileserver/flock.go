package fileserver

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockShared/lockExclusive take an advisory flock on an already-open
// file descriptor, blocking until available. Sidecar reads take a
// shared lock, sidecar writes take an exclusive lock, and the
// filesystem — not an in-process mutex — arbitrates races between
// requests, since multiple processes may share the same cache
// directory. Plain advisory locks, no timeout or retry loop: callers
// simply block.
func lockShared(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_SH)
}

func lockExclusive(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX)
}

func unlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
