package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	patternlib "github.com/goodtwin/go-patternlib"
	"github.com/goodtwin/go-patternlib/internal/sources"
)

// watchScope decides which file events trigger a rebuild.
type watchScope struct {
	sources  []string // configured source globs
	template string   // template directory, empty for the built-in one
	output   string   // output directory, never watched
}

// newWatchScope captures the paths relevant to cfg, cleaned once.
func newWatchScope(cfg *patternlib.Config) watchScope {
	s := watchScope{sources: cfg.Sources, output: filepath.Clean(cfg.Output)}
	if cfg.Template != "" {
		s.template = filepath.Clean(cfg.Template)
	}
	return s
}

// roots returns the directories to watch recursively.
func (s watchScope) roots() []string {
	roots := sources.Roots(s.sources)
	if s.template != "" {
		roots = append(roots, s.template)
	}
	return roots
}

// shouldRebuild reports whether ev touches a source or template file.
// Chmod-only events and anything under the output directory are ignored.
func (s watchScope) shouldRebuild(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || ev.Name == "" {
		return false
	}
	name := filepath.Clean(ev.Name)
	if within(s.output, name) {
		return false
	}
	if s.template != "" && within(s.template, name) {
		return true
	}
	return sources.Match(s.sources, name)
}

// within reports whether path equals dir or lies beneath it.
func within(dir, path string) bool {
	if dir == "" || dir == "." {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// runWatch builds once and rebuilds after every relevant change until ctx
// is cancelled. Failed rebuilds are logged and watching continues.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, logger, err := prepare(&f.buildFlags, positional, env)
	if err != nil {
		return withHint(err, nil)
	}

	cache := patternlib.NewParseCache(0)
	builder, err := patternlib.NewBuilder(cfg,
		patternlib.WithLogger(logger),
		patternlib.WithCache(cache))
	if err != nil {
		return withHint(err, cfg)
	}

	// The first build must succeed: a missing template or bad config will
	// not fix itself by watching.
	report, err := builder.Build(ctx, nil, "")
	if err != nil {
		return withHint(err, cfg)
	}
	printReport(report, f.common, env)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	scope := newWatchScope(cfg)
	dirs := 0
	for _, root := range scope.roots() {
		n, err := addRecursive(watcher, root, scope.output)
		if err != nil {
			logger.Warn("cannot watch", "dir", root, "err", err)
			continue
		}
		dirs += n
	}
	if dirs == 0 {
		return fmt.Errorf("%w: nothing to watch", patternlib.ErrSourceNotFound)
	}
	logger.Info("watching for changes", "dirs", dirs, "debounce", f.debounce)

	return watchLoop(ctx, watcher, scope, f.debounce, cache, logger, func() {
		if !f.common.quiet {
			fmt.Fprintf(env.Stdout, "\n[%s] change detected, rebuilding\n", env.Now().Format("15:04:05"))
		}
		report, err := builder.Build(ctx, nil, "")
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("rebuild failed", "err", err)
			}
			return
		}
		printReport(report, f.common, env)
	})
}

// watchLoop dispatches watcher events, coalescing bursts into one rebuild
// per debounce window.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, scope watchScope, debounce time.Duration, cache *patternlib.ParseCache, logger *log.Logger, rebuild func()) error {
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				// New directories are not covered by existing watches.
				if _, err := addRecursive(w, ev.Name, scope.output); err != nil && !errors.Is(err, fs.ErrNotExist) {
					logger.Debug("cannot watch new path", "path", ev.Name, "err", err)
				}
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				cache.Forget(ev.Name)
			}
			if !scope.shouldRebuild(ev) {
				continue
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op)
			pending = time.After(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)

		case <-pending:
			pending = nil
			rebuild()
		}
	}
}

// addRecursive watches root and every directory below it except skip.
// Returns the number of directories added. A regular file root is ignored.
func addRecursive(w *fsnotify.Watcher, root, skip string) (int, error) {
	n := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if within(skip, filepath.Clean(path)) {
			return filepath.SkipDir
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		n++
		return nil
	})
	return n, err
}
