package docshell

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher reloads the theme and drops the page cache when fragment files or
// content change on disk.
type Watcher struct {
	app       *App
	fsw       *fsnotify.Watcher
	fragments map[string]bool
	content   string

	mu          sync.Mutex
	timer       *time.Timer
	reloadTheme bool
	closeOnce   sync.Once
}

// Watch starts watching the fragment files and, unless content comes from
// WithContentFS, the content directory. The watcher stops when ctx is done or
// the returned Watcher is closed.
func (a *App) Watch(ctx context.Context) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("docshell: create watcher: %w", err)
	}
	w := &Watcher{
		app:       a,
		fsw:       fsw,
		fragments: make(map[string]bool, len(a.Config.Fragments)),
	}

	// Editors replace files by rename, so watch the directory, not the file.
	dirs := make(map[string]bool)
	for _, f := range a.Config.Fragments {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("docshell: watch %s: %w", f, err)
		}
		w.fragments[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("docshell: watch %s: %w", dir, err)
		}
	}

	if a.contentFS == nil {
		content, err := filepath.Abs(a.Config.ContentDir)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("docshell: watch content: %w", err)
		}
		w.content = content
		if err := w.addTree(content); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	log.Info().
		Int("fragments", len(w.fragments)).
		Str("content", w.content).
		Msg("watching for changes")

	go w.loop(ctx)
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fsw.Add(p); err != nil {
				return fmt.Errorf("docshell: watch %s: %w", p, err)
			}
		}
		return nil
	})
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	switch {
	case w.fragments[name]:
		log.Debug().Str("file", name).Str("op", event.Op.String()).Msg("fragment changed")
		w.schedule(true)
	case w.content != "" && within(w.content, name):
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(name); err == nil && info.IsDir() {
				if err := w.addTree(name); err != nil {
					log.Error().Err(err).Msg("watch new directory")
				}
			}
		}
		log.Debug().Str("file", name).Str("op", event.Op.String()).Msg("content changed")
		w.schedule(false)
	}
}

// schedule debounces bursts of events into one reload.
func (w *Watcher) schedule(theme bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reloadTheme = w.reloadTheme || theme
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.app.Config.WatchDebounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	theme := w.reloadTheme
	w.reloadTheme = false
	w.mu.Unlock()

	if !theme {
		w.app.Cache.Invalidate()
		log.Info().Msg("content reloaded")
		return
	}
	if err := w.app.Reload(context.Background()); err != nil {
		log.Error().Err(err).Msg("theme reload failed; keeping previous configuration")
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}

func within(root, name string) bool {
	rel, err := filepath.Rel(root, name)
	return err == nil && rel != ".." && !filepath.IsAbs(rel) && !startsWithDotDot(rel)
}

func startsWithDotDot(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
