//go:build !unix && !windows

package fs

import "os"

func isReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func hostRoots() []string {
	return []string{string(os.PathSeparator)}
}
