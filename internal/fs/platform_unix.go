//go:build unix

package fs

import "golang.org/x/sys/unix"

func isReadable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}

// hostRoots returns the single root of a unix file system. Mount points
// live below it and are reached by expansion.
func hostRoots() []string {
	return []string{"/"}
}
