// Package css applies stylesheets to browser content that the shell does not
// own. Injections are scheduled up front and applied on every load
// completion, so they survive navigations and reloads of the remote page.
package css

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
)

// Target is the browser-content surface the injector writes to.
type Target interface {
	ExecJS(js string)
	OnContentLoaded(fn func()) (cancel func())
}

type entry struct {
	key     string
	source  func() (string, error)
	applied func()
}

// Injector tracks pending stylesheets for a single target. Entries
// accumulate for the target's lifetime and every load-completion event
// re-applies all of them; registering the same source again only replaces
// its completion callback.
type Injector struct {
	mu        sync.Mutex
	target    Target
	entries   []entry
	positions map[string]int
	observing bool
}

func NewInjector(target Target) *Injector {
	return &Injector{
		target:    target,
		positions: make(map[string]int),
	}
}

// ScheduleInline registers literal CSS text. onApplied (optional) runs after
// each application; applications are independent fire-and-forget tasks, so
// no ordering is guaranteed between a callback and later entries.
func (i *Injector) ScheduleInline(cssText string, onApplied func()) {
	i.schedule("inline:"+cssText, func() (string, error) {
		return cssText, nil
	}, onApplied)
}

// ScheduleFile registers a stylesheet read from disk at application time.
// A missing file is reported up front but the entry is still registered; the
// file may appear before the next load.
func (i *Injector) ScheduleFile(path string, onApplied func()) {
	FileExists(path, nil, func(err error) {
		log.Printf("css: stylesheet %s not readable yet: %v", path, err)
	})

	i.schedule("file:"+path, func() (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read stylesheet %s: %w", path, err)
		}
		return string(data), nil
	}, onApplied)
}

func (i *Injector) schedule(key string, source func() (string, error), applied func()) {
	i.mu.Lock()

	if pos, ok := i.positions[key]; ok {
		i.entries[pos].applied = applied
		i.mu.Unlock()
		return
	}

	i.positions[key] = len(i.entries)
	i.entries = append(i.entries, entry{key: key, source: source, applied: applied})

	attach := !i.observing
	i.observing = true
	i.mu.Unlock()

	if attach {
		// The observer lives as long as the target; the cancel func is
		// deliberately discarded.
		i.target.OnContentLoaded(i.applyAll)
	}
}

// applyAll injects every registered entry, in registration order. Failures
// on one entry do not stop the rest.
func (i *Injector) applyAll() {
	i.mu.Lock()
	entries := make([]entry, len(i.entries))
	copy(entries, i.entries)
	i.mu.Unlock()

	for _, e := range entries {
		cssText, err := e.source()
		if err != nil {
			log.Printf("css: apply %s: %v", e.key, err)
			continue
		}
		i.target.ExecJS(injectScript(cssText))
		if e.applied != nil {
			e.applied()
		}
	}
}

// injectScript appends a style element carrying cssText to the document.
func injectScript(cssText string) string {
	quoted, err := json.Marshal(cssText)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(
		`(function(){var s=document.createElement("style");s.textContent=%s;document.head.appendChild(s);})();`,
		quoted,
	)
}

// FileExists reports on path through independent callbacks so callers can
// treat "present" and "not readable" differently. Either callback may be
// nil.
func FileExists(path string, onExists func(), onError func(error)) {
	if _, err := os.Stat(path); err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}
	if onExists != nil {
		onExists()
	}
}
