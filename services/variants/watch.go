package variants

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce groups the burst of events editors emit for one save
const reloadDebounce = 150 * time.Millisecond

// Watch reloads the registry whenever its file changes, until ctx is done.
// onReload, when set, receives the outcome of every reload attempt.
func (r *Registry) Watch(ctx context.Context, onReload func(error)) error {
	if r.path == "" {
		return errors.New("variants come from the embedded defaults, nothing to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: editors often replace the file instead of writing it
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", r.path, err)
	}
	target := filepath.Clean(r.path)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	reload := func() {
		err := r.Reload()
		if err != nil {
			log.Printf("[WARNING] Variants reload failed, keeping previous definitions: %v", err)
		} else {
			log.Printf("[INFO] Variants reloaded from %s (%d variants)", r.path, len(r.Keys()))
		}
		if onReload != nil {
			onReload(err)
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, reload)
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[WARNING] Variants watcher error: %v", err)
			}
		}
	}()

	return nil
}
