package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/justyntemme/fstree/internal/config"
	"github.com/justyntemme/fstree/internal/debug"
	"github.com/justyntemme/fstree/internal/fs"
	"github.com/justyntemme/fstree/internal/store"
)

// Options are the command-line settings; non-zero values override the
// config file.
type Options struct {
	ConfigPath string
	Roots      []string
	Workers    int
	Debug      bool
	NoStore    bool
}

// Main wires configuration, the settings store and the controller, then
// runs the console on stdin/stdout until it exits or the process is
// interrupted.
func Main(opts Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, opts, os.Stdin, os.Stdout)
}

func run(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	if opts.Debug {
		debug.EnableAll()
	}

	cfgManager := config.NewManager(opts.ConfigPath)
	if err := cfgManager.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfgManager.ParseError(); err != nil {
		fmt.Fprintf(out, "config %s is invalid, using defaults: %v\n", cfgManager.Path(), err)
	}
	cfg := cfgManager.Get()
	if len(opts.Roots) > 0 {
		cfg.Tree.Roots = opts.Roots
	}
	if opts.Workers > 0 {
		cfg.Tree.Workers = opts.Workers
	}

	var db *store.DB
	if !opts.NoStore {
		db = store.NewDB()
		if err := db.Open(cfg.Store.Path); err != nil {
			log.Printf("Failed to open settings store: %v", err)
			db = nil
		} else {
			storeDone := make(chan struct{})
			go func() {
				defer close(storeDone)
				db.Start()
			}()
			defer func() {
				close(db.RequestChan)
				<-storeDone
				db.Close()
			}()
		}
	}

	ctrl := NewController(fs.NewOSProvider(cfg.Tree.Roots...), ControllerOptions{
		ShowAttributes: cfg.Tree.ShowAttributes,
	})
	ctrl.Start(ctx, cfg.Tree.Workers)
	defer ctrl.Stop()

	console := NewConsole(ctrl, out)
	console.prefs = cfgManager
	if err := console.dispatch(ctx, Request{Op: DiscoverRoots}); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	if db != nil {
		if cfg.Behavior.RestoreLastSelection {
			restoreSelection(ctx, console, db)
		}
		sels, unsubscribe := ctrl.Selections()
		saved := make(chan struct{})
		go func() {
			defer close(saved)
			saveSelections(sels, db)
		}()
		defer func() {
			unsubscribe()
			<-saved
		}()
	}

	console.printTree()
	err := console.Run(ctx, in)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// restoreSelection reveals and reselects the path selected in the previous
// session. Settings are fetched through the store's request loop.
func restoreSelection(ctx context.Context, console *Console, db *store.DB) {
	db.RequestChan <- store.Request{Op: store.FetchSettings}

	var resp store.Response
	select {
	case resp = <-db.ResponseChan:
	case <-ctx.Done():
		return
	}
	if resp.Err != nil {
		log.Printf("Store Error fetching settings: %v", resp.Err)
		return
	}
	last := resp.Settings[store.KeyLastSelection]
	if last == "" {
		return
	}
	debug.Log(debug.APP, "restoring selection %q", last)
	if err := console.dispatch(ctx, Request{Op: RevealPath, Paths: []string{last}}); err != nil {
		return
	}
	console.selectPaths([]string{last})
}

// saveSelections records single-path selections until sels is closed.
func saveSelections(sels <-chan Update[Selection], db *store.DB) {
	for u := range sels {
		pc, ok := u.Value.(PathComponents)
		if !ok || pc.Path == "" {
			continue
		}
		db.RequestChan <- store.Request{Op: store.SaveSetting, Key: store.KeyLastSelection, Value: pc.Path}
	}
}
