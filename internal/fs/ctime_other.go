//go:build !linux && !darwin && !windows

package fs

import (
	"os"
	"time"
)

// creationTime is unavailable on this platform.
func creationTime(string, os.FileInfo) time.Time {
	return time.Time{}
}
