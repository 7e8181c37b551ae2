package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/justyntemme/fstree/internal/config"
	"github.com/justyntemme/fstree/internal/debug"
	"github.com/justyntemme/fstree/internal/tree"
)

var errStopped = errors.New("controller stopped")

const consoleHelp = `commands:
  ls                    print the tree
  expand <path>...      expand directories
  reveal <path>         expand every ancestor of path
  toggle <path>         show or hide attributes of an entry
  select [<path>...]    report the selection
  default-attrs on|off  show attributes of newly listed entries
  help                  show this help
  quit                  exit`

// Console is a line-oriented presentation of the tree. It only talks to the
// controller through requests and published snapshots.
type Console struct {
	ctrl  *Controller
	out   io.Writer
	prefs *config.Manager // optional; persists default-attrs
}

// NewConsole creates a console writing to out.
func NewConsole(ctrl *Controller, out io.Writer) *Console {
	return &Console{ctrl: ctrl, out: out}
}

// Run reads commands from in until EOF, "quit" or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		quit, err := c.Exec(ctx, scanner.Text())
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, errStopped) {
				return err
			}
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line.
func (c *Console) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]
	debug.Log(debug.APP, "console: %s %v", cmd, args)

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(c.out, consoleHelp)
	case "ls", "tree":
		c.printTree()
	case "expand":
		if len(args) == 0 {
			return false, errors.New("expand: missing path")
		}
		if err := c.dispatch(ctx, Request{Op: ExpandDirs, Paths: args}); err != nil {
			return false, err
		}
		c.printTree()
	case "reveal":
		if len(args) != 1 {
			return false, errors.New("reveal: expected one path")
		}
		if err := c.dispatch(ctx, Request{Op: RevealPath, Paths: args}); err != nil {
			return false, err
		}
		c.printTree()
	case "toggle":
		if len(args) != 1 {
			return false, errors.New("toggle: expected one path")
		}
		e, ok := c.element(args[0])
		if !ok {
			return false, fmt.Errorf("toggle: %s is not in the tree", args[0])
		}
		if err := c.dispatch(ctx, Request{Op: ToggleAttrs, Element: e}); err != nil {
			return false, err
		}
		c.printTree()
	case "select":
		c.selectPaths(args)
	case "default-attrs":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return false, errors.New("default-attrs: expected on or off")
		}
		if err := c.setDefaultAttributes(ctx, args[0] == "on"); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, nil
}

// dispatch submits req and waits until a worker has handled it.
func (c *Console) dispatch(ctx context.Context, req Request) error {
	req.Done = make(chan struct{})
	if !c.ctrl.Submit(req) {
		return errStopped
	}
	select {
	case <-req.Done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// selectPaths reports the selection of the entries at paths. Paths that are
// not in the tree are skipped.
func (c *Console) selectPaths(paths []string) {
	var elements []tree.Element
	for _, path := range paths {
		e, ok := c.element(path)
		if !ok {
			fmt.Fprintf(c.out, "skipping %s: not in the tree\n", path)
			continue
		}
		elements = append(elements, e)
	}
	RenderSelection(c.out, c.ctrl.Select(elements))
}

// setDefaultAttributes changes the attribute display of entries listed from
// now on and records it in the config file when one is attached.
func (c *Console) setDefaultAttributes(ctx context.Context, show bool) error {
	if err := c.ctrl.SetShowAttributes(ctx, show); err != nil {
		return err
	}
	if c.prefs != nil {
		if err := c.prefs.SetShowAttributes(show); err != nil {
			return fmt.Errorf("default-attrs: %w", err)
		}
	}
	state := "hidden"
	if show {
		state = "shown"
	}
	fmt.Fprintf(c.out, "attributes of new entries are %s\n", state)
	return nil
}

func (c *Console) element(path string) (tree.Element, bool) {
	u, ok := c.ctrl.Snapshot()
	if !ok {
		return nil, false
	}
	n, ok := u.Value.Find(path)
	if !ok {
		return nil, false
	}
	return n.Element, true
}

func (c *Console) printTree() {
	u, ok := c.ctrl.Snapshot()
	if !ok {
		fmt.Fprintln(c.out, "(discovering roots)")
		return
	}
	Render(c.out, u.Value)
}

// Render writes snapshot as an indented list. Branches are marked "+" until
// expanded and "-" afterwards; terminal entries are marked "*".
func Render(w io.Writer, snapshot tree.Snapshot) {
	snapshot.Walk(func(n tree.SnapshotNode, depth int) bool {
		indent := strings.Repeat("  ", depth)
		marker := "*"
		if n.Expandable {
			marker = "+"
			if n.Expanded {
				marker = "-"
			}
		}

		m := n.Element.Metadata()
		name := n.Element.Name()
		if depth == 0 {
			name = n.ID
		}
		var flags []string
		if m.Symlink {
			flags = append(flags, "symlink")
		}
		if !m.Readable {
			flags = append(flags, "unreadable")
		}
		if d, ok := n.Element.(tree.Directory); ok && d.Empty && d.Expandable() {
			flags = append(flags, "empty")
		}

		line := indent + marker + " " + name
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
		fmt.Fprintln(w, line)

		if m.ShowAttributes {
			attrs := m.Attributes
			if attrs == "" {
				attrs = "attributes unavailable"
			}
			fmt.Fprintf(w, "%s    [%s]\n", indent, attrs)
		}
		return true
	})
}

// RenderSelection writes the selection info bar.
func RenderSelection(w io.Writer, sel Selection) {
	switch s := sel.(type) {
	case PathComponents:
		if len(s.Components) == 0 {
			fmt.Fprintln(w, "(no selection)")
			return
		}
		fmt.Fprintln(w, strings.Join(s.Components, " > "))
	case Summary:
		fmt.Fprintln(w, s.Text)
	}
}
