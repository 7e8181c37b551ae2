package tree

import (
	"path/filepath"
	"strings"
)

// Components splits path into its root followed by each name component,
// e.g. "/a/b/c" -> ["/", "a", "b", "c"]. A path without name components
// (a bare root) is returned as a single component.
func Components(path string) []string {
	vol := filepath.VolumeName(path)
	rest := path[len(vol):]

	root := vol
	if rest != "" && strings.ContainsRune(separators, rune(rest[0])) {
		root += rest[:1]
	}

	names := strings.FieldsFunc(rest, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
	if len(names) == 0 {
		return []string{path}
	}

	components := make([]string, 0, len(names)+1)
	if root != "" {
		components = append(components, root)
	}
	return append(components, names...)
}

// Parent returns the parent directory of path. ok is false for roots.
func Parent(path string) (parent string, ok bool) {
	parent = filepath.Dir(path)
	if parent == path || parent == "." {
		return "", false
	}
	return parent, true
}

// Ancestors returns every ancestor of path from its root down to its
// immediate parent.
func Ancestors(path string) []string {
	var chain []string
	for p, ok := Parent(path); ok; p, ok = Parent(p) {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
