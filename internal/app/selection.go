package app

import (
	"fmt"

	"github.com/justyntemme/fstree/internal/tree"
)

// Selection describes the current selection for the info bar. It is either
// PathComponents or Summary.
type Selection interface {
	isSelection()
}

// PathComponents is the breadcrumb of a single selected path, root first.
// No selection is PathComponents with no components.
type PathComponents struct {
	Path       string
	Components []string
}

// Summary describes a multi-element selection.
type Summary struct {
	Count int
	Text  string
}

func (PathComponents) isSelection() {}
func (Summary) isSelection()        {}

// Summarize builds the selection description for elements.
func Summarize(elements []tree.Element) Selection {
	switch len(elements) {
	case 0:
		return PathComponents{Components: []string{}}
	case 1:
		path := elements[0].Metadata().Path
		return PathComponents{Path: path, Components: tree.Components(path)}
	default:
		return Summary{
			Count: len(elements),
			Text:  fmt.Sprintf("%d elements selected", len(elements)),
		}
	}
}
