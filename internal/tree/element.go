// Package tree holds the lazily populated file-system tree: immutable
// elements, the node arena with its path index, and published snapshots.
package tree

import (
	"path/filepath"
	"strings"
)

// Meta is the metadata shared by every element variant.
// An empty Attributes string means no attributes could be read.
type Meta struct {
	Path           string
	Readable       bool
	Symlink        bool
	ShowAttributes bool
	Attributes     string
}

// Element is either a Directory or a File. The set is closed.
type Element interface {
	Metadata() Meta
	Name() string
	// Expandable reports whether the element may become a branch:
	// a readable directory that is not a symlink.
	Expandable() bool
	WithAttributesToggled() Element
	isElement()
}

// Directory is a directory entry. Empty is only meaningful for directories
// that were probed; unreadable and symlinked directories are marked empty.
type Directory struct {
	Meta
	Empty bool
}

// File is a regular file entry.
type File struct {
	Meta
}

func (d Directory) Metadata() Meta { return d.Meta }

func (d Directory) Name() string { return displayName(d.Path) }

func (d Directory) Expandable() bool { return d.Readable && !d.Symlink }

func (d Directory) WithAttributesToggled() Element {
	d.ShowAttributes = !d.ShowAttributes
	return d
}

func (Directory) isElement() {}

func (f File) Metadata() Meta { return f.Meta }

func (f File) Name() string { return displayName(f.Path) }

func (File) Expandable() bool { return false }

func (f File) WithAttributesToggled() Element {
	f.ShowAttributes = !f.ShowAttributes
	return f
}

func (File) isElement() {}

const separators = string(filepath.Separator) + "/"

// displayName is the final name component of path, or path itself when it
// has none.
func displayName(path string) string {
	if name := baseName(path); name != "" {
		return name
	}
	return path
}

// baseName returns the final name component of path, or "" for roots.
func baseName(path string) string {
	rest := strings.TrimRight(path[len(filepath.VolumeName(path)):], separators)
	if rest == "" {
		return ""
	}
	if i := strings.LastIndexAny(rest, separators); i >= 0 {
		return rest[i+1:]
	}
	return rest
}
