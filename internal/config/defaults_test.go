package config

import "testing"

func TestDefaultValueNestedLookup(t *testing.T) {
	t.Parallel()

	value, ok := DefaultValue("window-size.width")
	if !ok {
		t.Fatalf("expected window-size.width to exist in defaults")
	}
	if value != 1100 {
		t.Fatalf("expected default width 1100, got %v", value)
	}

	value, ok = DefaultValue("plugins.adblocker.enabled")
	if !ok {
		t.Fatalf("expected plugins.adblocker.enabled to exist in defaults")
	}
	if value != true {
		t.Fatalf("expected adblocker enabled by default, got %v", value)
	}
}

func TestDefaultValueMissingPath(t *testing.T) {
	t.Parallel()

	if _, ok := DefaultValue("options.unknown"); ok {
		t.Fatalf("expected options.unknown to be absent")
	}
	if _, ok := DefaultValue("plugins.adblocker.enabled.deeper"); ok {
		t.Fatalf("expected lookup through a leaf to fail")
	}
	if _, ok := DefaultValue(""); ok {
		t.Fatalf("expected empty path to fail")
	}
}

func TestPluginNamesMatchDeclarationOrder(t *testing.T) {
	t.Parallel()

	names := PluginNames()
	if len(names) != len(DefaultPlugins) {
		t.Fatalf("expected %d names, got %d", len(DefaultPlugins), len(names))
	}
	for i, decl := range DefaultPlugins {
		if names[i] != decl.Name {
			t.Fatalf("expected %q at position %d, got %q", decl.Name, i, names[i])
		}
	}
}

func TestEveryPluginDeclaresEnabledFlag(t *testing.T) {
	t.Parallel()

	for _, decl := range DefaultPlugins {
		if _, ok := decl.Options["enabled"].(bool); !ok {
			t.Fatalf("plugin %q is missing a boolean enabled flag", decl.Name)
		}
	}
}

func TestDefaultPluginOptionsReturnsCopy(t *testing.T) {
	t.Parallel()

	options := DefaultPluginOptions("downloader")
	if options == nil {
		t.Fatalf("expected options for downloader")
	}
	options["preset"] = "mutated"

	fresh := DefaultPluginOptions("downloader")
	if fresh["preset"] != "mp3" {
		t.Fatalf("expected defaults to be unaffected by caller mutation, got %v", fresh["preset"])
	}

	if DefaultPluginOptions("does-not-exist") != nil {
		t.Fatalf("expected nil options for undeclared plugin")
	}
}
