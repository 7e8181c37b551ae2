package fs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/justyntemme/fstree/internal/debug"
)

// EntryType classifies a directory entry by the type of its target.
type EntryType int

const (
	TypeOther EntryType = iota // special files, broken symlinks
	TypeFile
	TypeDir
)

func (t EntryType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDir:
		return "dir"
	default:
		return "other"
	}
}

// DirEntry is one immediate child of an enumerated directory.
type DirEntry struct {
	Name string
	Path string
	Type EntryType
}

// Attributes are the basic attributes of a path. A zero time means the
// value is unavailable; a negative Size means the size is unknown.
type Attributes struct {
	Created  time.Time
	Modified time.Time
	Size     int64
}

// Provider supplies file-system metadata to the tree controller.
type Provider interface {
	Roots() ([]string, error)
	Exists(path string) bool
	IsReadable(path string) bool
	IsSymlink(path string) (bool, error)
	IsEmptyDir(path string) (bool, error)
	ReadDir(path string) ([]DirEntry, error)
	Attributes(path string) (Attributes, error)
}

// OSProvider reads metadata from the host file system.
type OSProvider struct {
	roots []string
}

// NewOSProvider creates a provider. When roots is non-empty it replaces the
// host's root directories.
func NewOSProvider(roots ...string) *OSProvider {
	p := &OSProvider{}
	for _, r := range roots {
		if r == "" {
			continue
		}
		if abs, err := filepath.Abs(r); err == nil {
			r = abs
		}
		p.roots = append(p.roots, r)
	}
	return p
}

// Roots returns the configured roots, or the host's root directories.
func (p *OSProvider) Roots() ([]string, error) {
	if len(p.roots) > 0 {
		return append([]string(nil), p.roots...), nil
	}
	roots := hostRoots()
	if len(roots) == 0 {
		return nil, errors.New("no root directories found")
	}
	debug.Log(debug.FS, "Roots: %v", roots)
	return roots, nil
}

// Exists reports whether path exists, following symlinks.
func (p *OSProvider) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsReadable reports whether the current user may read path.
func (p *OSProvider) IsReadable(path string) bool {
	return isReadable(path)
}

// IsSymlink reports whether path itself is a symbolic link.
func (p *OSProvider) IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, fmt.Errorf("lstat %s: %w", path, err)
	}
	return info.Mode()&fs.ModeSymlink != 0, nil
}

// IsEmptyDir reports whether path is a directory without entries. Paths
// that are not directories are not empty directories.
func (p *OSProvider) IsEmptyDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.ReadDir(1); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return false, nil
}

// ReadDir lists the immediate children of path sorted by name. Entries
// whose type cannot be determined are reported as TypeOther.
func (p *OSProvider) ReadDir(path string) ([]DirEntry, error) {
	debug.Log(debug.FS, "ReadDir: reading %q", path)

	root := filepath.Clean(path)
	var result []DirEntry
	var mu sync.Mutex

	// Symlinks are resolved with StatDirEntry but never traversed.
	conf := &fastwalk.Config{Follow: false}

	err := fastwalk.Walk(conf, root, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			if fullPath == root {
				return err
			}
			debug.Log(debug.FS_ENTRY, "ReadDir: walk error at %q: %v", fullPath, err)
			return nil
		}
		if fullPath == root {
			return nil
		}

		// Only direct children.
		if filepath.Dir(fullPath) != root {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		entry := DirEntry{Name: d.Name(), Path: fullPath, Type: TypeOther}
		info, statErr := fastwalk.StatDirEntry(fullPath, d)
		switch {
		case statErr != nil:
			debug.Log(debug.FS_ENTRY, "ReadDir: %q: stat error: %v", d.Name(), statErr)
		case info.IsDir():
			entry.Type = TypeDir
		case info.Mode().IsRegular():
			entry.Type = TypeFile
		}

		mu.Lock()
		result = append(result, entry)
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		debug.Log(debug.FS, "ReadDir: walk error: %v", err)
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	debug.Log(debug.FS, "ReadDir: returning %d entries", len(result))
	return result, nil
}

// Attributes reads the basic attributes of path, following symlinks.
func (p *OSProvider) Attributes(path string) (Attributes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attributes{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Attributes{
		Created:  creationTime(path, info),
		Modified: info.ModTime(),
		Size:     info.Size(),
	}, nil
}
