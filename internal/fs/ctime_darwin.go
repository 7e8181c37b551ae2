//go:build darwin

package fs

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func creationTime(path string, _ os.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
}
