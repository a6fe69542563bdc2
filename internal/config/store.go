package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const restartFlagPath = "options.restartOnConfigChange"

// restartExempt lists dotted-path prefixes whose writes never trigger an
// application restart, even when restart-on-config-change is enabled.
// Window geometry changes on every resize, and toggling the restart flag
// itself must not relaunch the app.
var restartExempt = []string{
	"window-size",
	restartFlagPath,
}

// RestartFunc asks the host to relaunch the application. The config write is
// durable before it is invoked.
type RestartFunc func()

// Store is a persisted key-value configuration layered over the default
// table. Values are addressed by dotted paths ("options.proxy") and written
// through to a flat JSON document on every Set.
type Store struct {
	mu          sync.Mutex
	path        string
	raw         []byte
	restart     RestartFunc
	lastWriteAt time.Time
}

// OpenStore loads the persisted config document at path, starting from an
// empty document when the file does not exist yet.
func OpenStore(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		raw = nil
	} else if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	return &Store{path: path, raw: raw}, nil
}

// SetRestartFunc installs the host's restart action. Writes performed before
// this is called never trigger a restart.
func (s *Store) SetRestartFunc(restart RestartFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restart = restart
}

func (s *Store) Path() string {
	return s.path
}

// LastWriteAt reports when the store last wrote its own file, so file
// watchers can tell self-writes from external edits.
func (s *Store) LastWriteAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastWriteAt
}

// Get returns the stored value at a dotted path, falling back to the default
// configuration table when nothing has been persisted for it.
func (s *Store) Get(path string) any {
	s.mu.Lock()
	result := gjson.GetBytes(s.raw, path)
	s.mu.Unlock()

	if result.Exists() {
		return result.Value()
	}

	value, _ := DefaultValue(path)
	return value
}

// GetBool reads a boolean at a dotted path; any non-boolean value reads as
// false.
func (s *Store) GetBool(path string) bool {
	value, _ := s.Get(path).(bool)
	return value
}

// GetString reads a string at a dotted path; any non-string value reads as
// the empty string.
func (s *Store) GetString(path string) string {
	value, _ := s.Get(path).(string)
	return value
}

// GetInt reads an integer at a dotted path. Persisted JSON numbers decode as
// float64, defaults are declared as int; both are accepted.
func (s *Store) GetInt(path string) int {
	switch value := s.Get(path).(type) {
	case int:
		return value
	case float64:
		return int(value)
	default:
		return 0
	}
}

// Set persists value at a dotted path immediately. When the restart flag is
// enabled and the path is not exempt, the application restart is triggered
// after the write is durable.
func (s *Store) Set(path string, value any) error {
	s.mu.Lock()
	raw, err := sjson.SetBytes(s.raw, path, value)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("set config %q: %w", path, err)
	}
	s.raw = raw

	if err := s.writeLocked(); err != nil {
		s.mu.Unlock()
		return err
	}

	restart := s.restart
	shouldRestart := restart != nil && s.shouldRestartLocked(path)
	s.mu.Unlock()

	if shouldRestart {
		log.Printf("config: %s changed, restarting to apply", path)
		restart()
	}

	return nil
}

// SetMenuOption is the Set variant used by menu click handlers. The menu
// rebuild itself is driven by the refresh callback threaded through the menu
// builder, not by the store.
func (s *Store) SetMenuOption(path string, value any) error {
	return s.Set(path, value)
}

// IsEnabled reports whether the named plugin is enabled.
func (s *Store) IsEnabled(name string) bool {
	return s.GetBool("plugins." + name + ".enabled")
}

// Enable turns the named plugin on.
func (s *Store) Enable(name string) error {
	return s.Set("plugins."+name+".enabled", true)
}

// Disable turns the named plugin off.
func (s *Store) Disable(name string) error {
	return s.Set("plugins."+name+".enabled", false)
}

// PluginOptions returns the named plugin's options: its defaults overlaid
// with any persisted overrides. Returns nil for an undeclared plugin.
func (s *Store) PluginOptions(name string) map[string]any {
	options := DefaultPluginOptions(name)
	if options == nil {
		return nil
	}

	s.mu.Lock()
	stored := gjson.GetBytes(s.raw, "plugins."+name)
	s.mu.Unlock()

	if stored.IsObject() {
		stored.ForEach(func(key, value gjson.Result) bool {
			options[key.String()] = value.Value()
			return true
		})
	}

	return options
}

func (s *Store) shouldRestartLocked(path string) bool {
	if !gjson.GetBytes(s.raw, restartFlagPath).Bool() {
		return false
	}
	for _, exempt := range restartExempt {
		if path == exempt || strings.HasPrefix(path, exempt+".") {
			return false
		}
	}
	return true
}

// writeLocked persists the document, indented so the "Edit config.json" flow
// hands the user something readable.
func (s *Store) writeLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	out := s.raw
	var indented bytes.Buffer
	if err := json.Indent(&indented, s.raw, "", "  "); err == nil {
		out = indented.Bytes()
	}

	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	s.lastWriteAt = time.Now()
	return nil
}
