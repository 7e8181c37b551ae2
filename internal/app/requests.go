package app

import (
	"context"

	"github.com/justyntemme/fstree/internal/debug"
	"github.com/justyntemme/fstree/internal/tree"
)

type OpType int

const (
	DiscoverRoots OpType = iota
	ExpandDirs
	ToggleAttrs
	RevealPath
)

func (op OpType) String() string {
	switch op {
	case DiscoverRoots:
		return "discover"
	case ExpandDirs:
		return "expand"
	case ToggleAttrs:
		return "toggle"
	case RevealPath:
		return "reveal"
	default:
		return "unknown"
	}
}

// Request is a unit of work for the controller's workers. Done, when set,
// is closed once the request has been handled.
type Request struct {
	Op      OpType
	Paths   []string     // ExpandDirs; RevealPath uses Paths[0]
	Element tree.Element // ToggleAttrs
	Done    chan struct{}
}

// Start launches workers goroutines that handle submitted requests until
// Stop is called. ctx bounds how long a request may wait for the tree.
func (c *Controller) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		c.wg.Add(1)
		go func(id int) {
			defer c.wg.Done()
			for req := range c.requests {
				debug.Log(debug.APP, "worker %d: %s %v", id, req.Op, req.Paths)
				c.handle(ctx, req)
			}
		}(i)
	}
}

// Submit queues req for the workers. It reports false once the controller
// has been stopped.
func (c *Controller) Submit(req Request) bool {
	c.reqMu.RLock()
	defer c.reqMu.RUnlock()
	if c.closed {
		return false
	}
	c.requests <- req
	return true
}

// Stop stops accepting requests and waits for queued and in-flight ones to
// finish.
func (c *Controller) Stop() {
	c.reqMu.Lock()
	if !c.closed {
		c.closed = true
		close(c.requests)
	}
	c.reqMu.Unlock()
	c.wg.Wait()
}

func (c *Controller) handle(ctx context.Context, req Request) {
	if req.Done != nil {
		defer close(req.Done)
	}

	var err error
	switch req.Op {
	case DiscoverRoots:
		err = c.Discover(ctx)
	case ExpandDirs:
		err = c.Expand(ctx, req.Paths)
	case ToggleAttrs:
		if req.Element != nil {
			err = c.ToggleAttributes(ctx, req.Element)
		}
	case RevealPath:
		if len(req.Paths) > 0 {
			err = c.Reveal(ctx, req.Paths[0])
		}
	}
	if err != nil {
		debug.Log(debug.APP, "%s request dropped: %v", req.Op, err)
	}
}
