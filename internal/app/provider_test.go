package app

import (
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/justyntemme/fstree/internal/fs"
)

// fakeEntry describes one path of a fakeProvider.
type fakeEntry struct {
	dir        bool
	unreadable bool
	symlink    bool
	other      bool // neither file nor directory
	readErr    error
	symlinkErr error
	attrErr    error
}

// fakeProvider is an in-memory fs.Provider with injectable failures.
type fakeProvider struct {
	mu      sync.Mutex
	roots   []string
	rootErr error
	entries map[string]fakeEntry
	reads   map[string]int
}

var errInjected = errors.New("injected failure")

var fakeTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newFakeProvider(roots ...string) *fakeProvider {
	return &fakeProvider{
		roots:   roots,
		entries: make(map[string]fakeEntry),
		reads:   make(map[string]int),
	}
}

func (p *fakeProvider) dir(path string) *fakeProvider {
	return p.set(path, fakeEntry{dir: true})
}

func (p *fakeProvider) file(path string) *fakeProvider {
	return p.set(path, fakeEntry{})
}

func (p *fakeProvider) set(path string, e fakeEntry) *fakeProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[path] = e
	return p
}

func (p *fakeProvider) readCount(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reads[path]
}

func (p *fakeProvider) lookup(path string) (fakeEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[path]
	return e, ok
}

func (p *fakeProvider) children(path string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for child := range p.entries {
		if child != path && filepath.Dir(child) == path {
			out = append(out, child)
		}
	}
	sort.Strings(out)
	return out
}

func (p *fakeProvider) Roots() ([]string, error) {
	return p.roots, p.rootErr
}

func (p *fakeProvider) Exists(path string) bool {
	_, ok := p.lookup(path)
	return ok
}

func (p *fakeProvider) IsReadable(path string) bool {
	e, ok := p.lookup(path)
	return ok && !e.unreadable
}

func (p *fakeProvider) IsSymlink(path string) (bool, error) {
	e, ok := p.lookup(path)
	if !ok {
		return false, errInjected
	}
	return e.symlink, e.symlinkErr
}

func (p *fakeProvider) IsEmptyDir(path string) (bool, error) {
	e, ok := p.lookup(path)
	if !ok || !e.dir {
		return false, nil
	}
	return len(p.children(path)) == 0, nil
}

func (p *fakeProvider) ReadDir(path string) ([]fs.DirEntry, error) {
	e, _ := p.lookup(path)
	p.mu.Lock()
	p.reads[path]++
	p.mu.Unlock()
	if e.readErr != nil {
		return nil, e.readErr
	}

	var out []fs.DirEntry
	for _, child := range p.children(path) {
		ce, _ := p.lookup(child)
		typ := fs.TypeFile
		switch {
		case ce.other:
			typ = fs.TypeOther
		case ce.dir:
			typ = fs.TypeDir
		}
		out = append(out, fs.DirEntry{Name: filepath.Base(child), Path: child, Type: typ})
	}
	return out, nil
}

func (p *fakeProvider) Attributes(path string) (fs.Attributes, error) {
	e, ok := p.lookup(path)
	if !ok {
		return fs.Attributes{}, errInjected
	}
	if e.attrErr != nil {
		return fs.Attributes{}, e.attrErr
	}
	size := int64(1536)
	if e.dir {
		size = 4096
	}
	return fs.Attributes{Created: fakeTime, Modified: fakeTime, Size: size}, nil
}
