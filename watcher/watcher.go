package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"iconforge/config"
	"iconforge/generator"
)

// Watcher monitors the source directory and regenerates assets when the
// logo or a convertible source image changes.
type Watcher struct {
	cfg      *config.Config
	gen      *generator.Generator
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer

	// Regenerated is signalled after each completed regeneration run.
	Regenerated chan string
}

// NewWatcher creates a new file watcher
func NewWatcher(cfg *config.Config, gen *generator.Generator) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		cfg:         cfg,
		gen:         gen,
		watcher:     fsWatcher,
		debounce:    time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		timers:      make(map[string]*time.Timer),
		Regenerated: make(chan string, 16),
	}, nil
}

// Start begins monitoring the source directory
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.cfg.Source.Dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.cfg.Source.Dir, err)
	}
	log.Printf("Watching directory: %s", w.cfg.Source.Dir)

	go w.processEvents()

	return nil
}

// processEvents handles fsnotify events, debouncing rapid successive
// writes to the same file before regenerating.
func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			// Skip temp files
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}

			if !w.triggers(event.Name) {
				continue
			}

			w.mu.Lock()
			if timer, exists := w.timers[event.Name]; exists {
				timer.Stop()
			}
			name := event.Name
			w.timers[name] = time.AfterFunc(w.debounce, func() {
				w.mu.Lock()
				delete(w.timers, name)
				w.mu.Unlock()
				w.regenerate(name)
			})
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// triggers reports whether a change to the named file should cause a
// regeneration run. A derive run that writes preview.webp matches the
// convert extension and triggers one convert pass, but that pass only
// emits .ico files, so runs converge instead of cascading.
func (w *Watcher) triggers(name string) bool {
	base := filepath.Base(name)
	if base == w.cfg.Source.Logo {
		return true
	}
	return strings.EqualFold(filepath.Ext(base), w.cfg.Convert.Extension)
}

// regenerate runs the mode matching the changed file.
func (w *Watcher) regenerate(name string) {
	base := filepath.Base(name)

	var (
		results []generator.Result
		err     error
	)
	if base == w.cfg.Source.Logo {
		log.Printf("Logo changed: %s - regenerating derived assets", base)
		results, err = w.gen.DeriveFromLogo()
	} else {
		log.Printf("Source image changed: %s - converting", base)
		results, err = w.gen.ConvertDirectory()
	}
	if err != nil {
		log.Printf("❌ Regeneration failed: %v", err)
		return
	}

	for _, r := range results {
		if r.Err != nil {
			log.Printf("❌ Error generating '%s': %v", r.Name, r.Err)
		}
	}

	select {
	case w.Regenerated <- base:
	default:
	}
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
