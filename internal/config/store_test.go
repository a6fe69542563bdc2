package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newStoreForTest(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func TestGetFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)

	if got := store.GetString("url"); got != DefaultURL {
		t.Fatalf("expected default url %q, got %q", DefaultURL, got)
	}
	if got := store.GetInt("window-size.width"); got != 1100 {
		t.Fatalf("expected default width 1100, got %d", got)
	}
	if store.GetBool("options.tray") {
		t.Fatalf("expected tray disabled by default")
	}
}

func TestSetThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)

	if err := store.Set("options.proxy", "socks5://127.0.0.1:9999"); err != nil {
		t.Fatalf("set proxy: %v", err)
	}
	if got := store.GetString("options.proxy"); got != "socks5://127.0.0.1:9999" {
		t.Fatalf("expected stored proxy value, got %q", got)
	}

	if err := store.Set("window-size.width", 1280); err != nil {
		t.Fatalf("set width: %v", err)
	}
	if got := store.GetInt("window-size.width"); got != 1280 {
		t.Fatalf("expected stored width 1280, got %d", got)
	}

	// Untouched siblings still come from defaults.
	if got := store.GetInt("window-size.height"); got != 550 {
		t.Fatalf("expected default height 550, got %d", got)
	}
}

func TestSetPersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if err := store.Set("options.hideMenu", true); err != nil {
		t.Fatalf("set hideMenu: %v", err)
	}

	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if !reopened.GetBool("options.hideMenu") {
		t.Fatalf("expected hideMenu to survive reopen")
	}
}

func TestPluginEnableDisable(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)

	if !store.IsEnabled("adblocker") {
		t.Fatalf("expected adblocker enabled by default")
	}
	if store.IsEnabled("downloader") {
		t.Fatalf("expected downloader disabled by default")
	}

	if err := store.Enable("downloader"); err != nil {
		t.Fatalf("enable downloader: %v", err)
	}
	if !store.IsEnabled("downloader") {
		t.Fatalf("expected downloader enabled after Enable")
	}

	if err := store.Disable("adblocker"); err != nil {
		t.Fatalf("disable adblocker: %v", err)
	}
	if store.IsEnabled("adblocker") {
		t.Fatalf("expected adblocker disabled after Disable")
	}
}

func TestPluginOptionsMergeStoredOverDefaults(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)

	if err := store.Set("plugins.downloader.preset", "opus"); err != nil {
		t.Fatalf("set preset: %v", err)
	}

	options := store.PluginOptions("downloader")
	if options["preset"] != "opus" {
		t.Fatalf("expected stored preset to win, got %v", options["preset"])
	}
	if options["downloadFolder"] != "" {
		t.Fatalf("expected default downloadFolder, got %v", options["downloadFolder"])
	}
	if options["enabled"] != false {
		t.Fatalf("expected default enabled=false, got %v", options["enabled"])
	}

	if store.PluginOptions("does-not-exist") != nil {
		t.Fatalf("expected nil options for undeclared plugin")
	}
}

func TestSetTriggersRestartWhenFlagEnabled(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)
	if err := store.Set(restartFlagPath, true); err != nil {
		t.Fatalf("enable restart flag: %v", err)
	}

	restarts := 0
	store.SetRestartFunc(func() {
		restarts++

		// The write must be durable before the restart fires.
		raw, err := os.ReadFile(store.Path())
		if err != nil {
			t.Errorf("read config during restart: %v", err)
			return
		}
		if !strings.Contains(string(raw), "socks5://127.0.0.1:9999") {
			t.Errorf("expected config file to contain the new value before restart")
		}
	})

	if err := store.Set("options.proxy", "socks5://127.0.0.1:9999"); err != nil {
		t.Fatalf("set proxy: %v", err)
	}
	if restarts != 1 {
		t.Fatalf("expected exactly one restart, got %d", restarts)
	}
}

func TestRestartExemptPaths(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)
	restarts := 0
	store.SetRestartFunc(func() { restarts++ })

	// Enabling the flag is itself exempt.
	if err := store.Set(restartFlagPath, true); err != nil {
		t.Fatalf("enable restart flag: %v", err)
	}
	if err := store.Set("window-size.width", 900); err != nil {
		t.Fatalf("set width: %v", err)
	}
	if err := store.Set("window-size.height", 600); err != nil {
		t.Fatalf("set height: %v", err)
	}
	if restarts != 0 {
		t.Fatalf("expected no restart for exempt paths, got %d", restarts)
	}

	if err := store.Set("options.hideMenu", true); err != nil {
		t.Fatalf("set hideMenu: %v", err)
	}
	if restarts != 1 {
		t.Fatalf("expected restart for non-exempt path, got %d", restarts)
	}
}

func TestNoRestartWhenFlagDisabled(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)
	restarts := 0
	store.SetRestartFunc(func() { restarts++ })

	if err := store.Set("options.proxy", "http://proxy:8080"); err != nil {
		t.Fatalf("set proxy: %v", err)
	}
	if restarts != 0 {
		t.Fatalf("expected no restart with flag disabled, got %d", restarts)
	}
}

func TestOpenStoreToleratesMissingAndEmptyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := OpenStore(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("open missing: %v", err)
	}
	if got := store.GetString("url"); got != DefaultURL {
		t.Fatalf("expected defaults from missing file, got %q", got)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}
	store, err = OpenStore(empty)
	if err != nil {
		t.Fatalf("open empty: %v", err)
	}
	if err := store.Set("options.tray", true); err != nil {
		t.Fatalf("set on empty-backed store: %v", err)
	}
}

func TestSetMenuOptionWritesThrough(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)

	if err := store.SetMenuOption("options.tray", true); err != nil {
		t.Fatalf("set menu option: %v", err)
	}
	if !store.GetBool("options.tray") {
		t.Fatalf("expected tray enabled after SetMenuOption")
	}
}
