package config

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// selfWriteWindow is how long after one of the store's own writes that file
// events on the config path are attributed to the store rather than to an
// external editor.
const selfWriteWindow = time.Second

// Watcher reports out-of-band edits to the config file, e.g. from the
// "Edit config.json" menu action. The store is the single writer; external
// edits only take effect after an application restart, so the watcher's job
// is to surface that fact, not to reload anything.
type Watcher struct {
	store    *Store
	onChange func()
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher watches the store's backing file. onChange runs once per
// external modification; pass nil to just log.
func NewWatcher(store *Store, onChange func()) *Watcher {
	return &Watcher{store: store, onChange: onChange}
}

func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}

	// Watch the directory, not the file: editors typically replace the file,
	// which drops a direct watch.
	if err := fsw.Add(filepath.Dir(w.store.Path())); err != nil {
		fsw.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	go w.run()

	return nil
}

func (w *Watcher) Stop() {
	if w.fsw == nil {
		return
	}
	w.fsw.Close()
	<-w.done
	w.fsw = nil
}

func (w *Watcher) run() {
	defer close(w.done)

	target := filepath.Clean(w.store.Path())
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if time.Since(w.store.LastWriteAt()) < selfWriteWindow {
				continue
			}
			log.Printf("config: %s edited externally, restart to apply", target)
			if w.onChange != nil {
				w.onChange()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher: %v", err)
		}
	}
}
