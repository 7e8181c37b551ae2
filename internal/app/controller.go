package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/justyntemme/fstree/internal/debug"
	"github.com/justyntemme/fstree/internal/fs"
	"github.com/justyntemme/fstree/internal/tree"
)

var errNotExist = errors.New("does not exist")

// ControllerOptions tune element construction.
type ControllerOptions struct {
	// ShowAttributes is the initial attribute display flag of new elements.
	ShowAttributes bool
}

// Controller owns the tree store and is the only code that mutates it.
//
// Every mutation runs inside one critical section that covers both the
// store write and the publication of the resulting snapshot, so published
// snapshots appear in mutation order and two mutations never interleave.
// The critical section is a weighted semaphore so waiting on it honours
// context cancellation; once entered, a mutation always runs to completion.
type Controller struct {
	provider fs.Provider
	opts     ControllerOptions

	sem        *semaphore.Weighted
	tree       *tree.Store
	discovered bool

	snapshots  *Broadcast[tree.Snapshot]
	selections *Broadcast[Selection]

	// Request workers
	reqMu    sync.RWMutex
	requests chan Request
	closed   bool
	wg       sync.WaitGroup
}

// NewController creates a controller reading metadata from provider.
func NewController(provider fs.Provider, opts ControllerOptions) *Controller {
	return &Controller{
		provider:   provider,
		opts:       opts,
		sem:        semaphore.NewWeighted(1),
		tree:       tree.NewStore(),
		snapshots:  NewBroadcast[tree.Snapshot](),
		selections: NewBroadcast[Selection](),
		requests:   make(chan Request, 64),
	}
}

// Snapshots subscribes to published tree snapshots.
func (c *Controller) Snapshots() (<-chan Update[tree.Snapshot], func()) {
	return c.snapshots.Subscribe()
}

// Snapshot returns the most recently published snapshot.
func (c *Controller) Snapshot() (Update[tree.Snapshot], bool) {
	return c.snapshots.Latest()
}

// Selections subscribes to selection summaries.
func (c *Controller) Selections() (<-chan Update[Selection], func()) {
	return c.selections.Subscribe()
}

// update runs action inside the critical section and publishes a snapshot
// when action reports a change.
func (c *Controller) update(ctx context.Context, action func(t *tree.Store) bool) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire tree: %w", err)
	}
	defer c.sem.Release(1)

	if action(c.tree) {
		version := c.snapshots.Publish(c.tree.Snapshot())
		debug.Log(debug.APP, "published snapshot v%d (%d nodes)", version, c.tree.Len())
	}
	return nil
}

// Discover populates the tree with the host's root directories and
// publishes the initial snapshot. Roots that cannot be probed are skipped.
// Only the first call has any effect.
func (c *Controller) Discover(ctx context.Context) error {
	return c.update(ctx, func(t *tree.Store) bool {
		if c.discovered {
			return false
		}
		c.discovered = true

		roots, err := c.provider.Roots()
		if err != nil {
			log.Printf("Discover: cannot determine root directories: %v", err)
		}
		for _, root := range roots {
			kind, e, err := c.probeRoot(root)
			if err != nil {
				log.Printf("Discover: skipping root %s: %v", root, err)
				continue
			}
			t.AddRoot(kind, e)
		}
		debug.Log(debug.APP, "Discover: %d roots", len(roots))
		return true
	})
}

func (c *Controller) probeRoot(root string) (tree.Kind, tree.Element, error) {
	if !c.provider.Exists(root) {
		return tree.Leaf, nil, errNotExist
	}
	readable := c.provider.IsReadable(root)
	symlink, err := c.provider.IsSymlink(root)
	if err != nil {
		return tree.Leaf, nil, err
	}

	empty := true
	if readable && !symlink {
		if empty, err = c.provider.IsEmptyDir(root); err != nil {
			return tree.Leaf, nil, err
		}
	}

	e := tree.Directory{Meta: c.meta(root, readable, symlink), Empty: empty}
	if empty {
		return tree.Leaf, e, nil
	}
	return tree.Branch, e, nil
}

// Expand enumerates the children of every listed branch that has not been
// expanded yet. Paths that are not branches, or were already expanded, are
// ignored. One snapshot is published for the whole batch.
func (c *Controller) Expand(ctx context.Context, paths []string) error {
	return c.update(ctx, func(t *tree.Store) bool {
		changed := false
		for _, path := range paths {
			if c.expandLocked(t, path) {
				changed = true
			}
		}
		return changed
	})
}

// Reveal expands every ancestor of path, from its root down, so that path
// itself becomes part of the tree.
func (c *Controller) Reveal(ctx context.Context, path string) error {
	return c.update(ctx, func(t *tree.Store) bool {
		changed := false
		for _, ancestor := range tree.Ancestors(path) {
			if c.expandLocked(t, ancestor) {
				changed = true
			}
		}
		return changed
	})
}

func (c *Controller) expandLocked(t *tree.Store, path string) bool {
	if !t.IsBranch(path) {
		debug.Log(debug.APP, "Expand: %q is not a branch", path)
		return false
	}
	if t.IsExpanded(path) || t.HasChildren(path) {
		debug.Log(debug.APP, "Expand: %q already expanded", path)
		return false
	}

	entries, err := c.provider.ReadDir(path)
	if err != nil {
		log.Printf("Expand: cannot list %s: %v", path, err)
		return false
	}

	for _, entry := range entries {
		kind, e, err := c.classify(entry)
		if err != nil {
			log.Printf("Expand: cannot fetch info about element at %s: %v", entry.Path, err)
			continue
		}
		if e == nil {
			debug.Log(debug.FS_ENTRY, "Expand: ignoring %q (%s)", entry.Path, entry.Type)
			continue
		}
		if kind == tree.Branch {
			t.AttachBranch(path, e)
		} else {
			t.AttachLeaf(path, e)
		}
	}
	t.MarkExpanded(path)
	debug.Log(debug.APP, "Expand: %q -> %d of %d entries attached", path, len(t.Children(path)), len(entries))
	return true
}

// classify builds the element for a directory entry. Entries that are
// neither regular files nor directories yield a nil element.
func (c *Controller) classify(entry fs.DirEntry) (tree.Kind, tree.Element, error) {
	switch entry.Type {
	case fs.TypeFile:
		readable := c.provider.IsReadable(entry.Path)
		symlink, err := c.provider.IsSymlink(entry.Path)
		if err != nil {
			return tree.Leaf, nil, err
		}
		return tree.Leaf, tree.File{Meta: c.meta(entry.Path, readable, symlink)}, nil

	case fs.TypeDir:
		readable := c.provider.IsReadable(entry.Path)
		symlink, err := c.provider.IsSymlink(entry.Path)
		if err != nil {
			return tree.Leaf, nil, err
		}
		// Unreadable and symlinked directories are never expanded.
		if !readable || symlink {
			return tree.Leaf, tree.Directory{Meta: c.meta(entry.Path, readable, symlink), Empty: true}, nil
		}
		empty, err := c.provider.IsEmptyDir(entry.Path)
		if err != nil {
			return tree.Leaf, nil, err
		}
		return tree.Branch, tree.Directory{Meta: c.meta(entry.Path, true, false), Empty: empty}, nil
	}
	return tree.Leaf, nil, nil
}

// meta builds element metadata. Attributes are read only for readable
// paths; a failed read leaves them empty.
func (c *Controller) meta(path string, readable, symlink bool) tree.Meta {
	m := tree.Meta{
		Path:           path,
		Readable:       readable,
		Symlink:        symlink,
		ShowAttributes: c.opts.ShowAttributes,
	}
	if readable {
		attrs, err := c.provider.Attributes(path)
		if err != nil {
			log.Printf("Attributes: %s: %v", path, err)
		} else {
			m.Attributes = fs.FormatAttributes(attrs)
		}
	}
	return m
}

// ToggleAttributes flips the attribute display flag of the element at e's
// path. Expandable elements that are branches are updated in place; all
// others are updated as leaves.
func (c *Controller) ToggleAttributes(ctx context.Context, e tree.Element) error {
	path := e.Metadata().Path
	flip := func(cur tree.Element) tree.Element { return cur.WithAttributesToggled() }

	return c.update(ctx, func(t *tree.Store) bool {
		if e.Expandable() && t.IsBranch(path) {
			return t.UpdateBranchElement(path, flip)
		}
		return t.UpdateLeafElement(path, flip)
	})
}

// SetShowAttributes sets the attribute display flag of elements created
// from now on. Elements already in the tree keep theirs.
func (c *Controller) SetShowAttributes(ctx context.Context, show bool) error {
	return c.update(ctx, func(*tree.Store) bool {
		c.opts.ShowAttributes = show
		return false
	})
}

// Select summarizes the selected elements and publishes the summary.
func (c *Controller) Select(elements []tree.Element) Selection {
	sel := Summarize(elements)
	c.selections.Publish(sel)
	return sel
}
