//go:build windows

package fs

import (
	"os"

	"golang.org/x/sys/windows"
)

func isReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// hostRoots returns the drive roots reported by GetLogicalDrives. It does
// not query volume information, which can block on disconnected drives.
func hostRoots() []string {
	mask, err := windows.GetLogicalDrives()
	if err != nil || mask == 0 {
		return nil
	}

	var roots []string
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		root := string(rune('A'+i)) + `:\`
		ptr, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}
		switch windows.GetDriveType(ptr) {
		case windows.DRIVE_UNKNOWN, windows.DRIVE_NO_ROOT_DIR:
			continue
		}
		roots = append(roots, root)
	}
	return roots
}
