// Package watcher re-runs a callback when PNG files appear or change in a
// directory.
package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before triggering.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors one directory, non-recursively.
type Watcher struct {
	dir      string
	debounce time.Duration
	trigger  func()

	fs    *fsnotify.Watcher
	done  chan struct{}
	runMu sync.Mutex // one trigger at a time

	timerMu sync.Mutex
	timer   *time.Timer
}

// New creates a watcher calling trigger after PNG activity in dir.
func New(dir string, debounce time.Duration, trigger func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		trigger:  trigger,
		fs:       fsWatcher,
		done:     make(chan struct{}),
	}, nil
}

// Start begins monitoring the directory.
func (w *Watcher) Start() error {
	if err := w.fs.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", w.dir, err)
	}
	log.Printf("Watching folder: %s", w.dir)

	go w.processEvents()
	return nil
}

// Close stops the watcher. A trigger already running is allowed to finish.
func (w *Watcher) Close() error {
	close(w.done)
	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()
	return w.fs.Close()
}

// Relevant reports whether an event should schedule a run: a create or
// write of a visible .png file.
func Relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".png")
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !Relevant(event) {
				continue
			}
			w.schedule()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}
	w.runMu.Lock()
	defer w.runMu.Unlock()
	w.trigger()
}
