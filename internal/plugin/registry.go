// Package plugin enumerates the shell's optional feature modules. Plugins
// are opaque units identified by name: the registry only knows their enabled
// state, their options, and an optional menu contribution registered through
// an explicit hook, never loaded dynamically.
package plugin

import (
	"runtime"

	"strum/internal/config"
	"strum/internal/menu"
	"strum/internal/webview"
)

// Store is the configuration surface the registry reads.
type Store interface {
	IsEnabled(name string) bool
	PluginOptions(name string) map[string]any
}

// Descriptor is a plugin's derived state, computed on demand; it has no
// identity beyond its name.
type Descriptor struct {
	Name    string         `json:"name"`
	Enabled bool           `json:"enabled"`
	Options map[string]any `json:"options"`
}

// MenuHook builds the items a plugin contributes beneath its enabled toggle.
type MenuHook func(view webview.View, options map[string]any, refresh func()) []menu.Item

// platformOnly maps plugin names reserved for a single platform; they are
// filtered out everywhere else.
var platformOnly = map[string]string{
	"touchbar":             "darwin",
	"taskbar-mediacontrol": "windows",
}

type Registry struct {
	store Store
	goos  string
	hooks map[string]MenuHook
}

func NewRegistry(store Store) *Registry {
	return NewRegistryFor(store, runtime.GOOS)
}

// NewRegistryFor pins the platform, for callers that need determinism across
// platforms (tests, listings).
func NewRegistryFor(store Store, goos string) *Registry {
	return &Registry{
		store: store,
		goos:  goos,
		hooks: make(map[string]MenuHook),
	}
}

// RegisterMenu installs a plugin's menu contribution. Re-registering
// replaces the previous hook.
func (r *Registry) RegisterMenu(name string, hook MenuHook) {
	r.hooks[name] = hook
}

// AvailableNames returns the plugin names declared in the default table,
// minus names reserved for other platforms, in declaration order. Pure
// filter: same platform and table always yield the same list.
func (r *Registry) AvailableNames() []string {
	names := make([]string, 0, len(config.DefaultPlugins))
	for _, decl := range config.DefaultPlugins {
		if only, ok := platformOnly[decl.Name]; ok && only != r.goos {
			continue
		}
		names = append(names, decl.Name)
	}
	return names
}

// Describe computes a plugin's current descriptor from the store.
func (r *Registry) Describe(name string) Descriptor {
	return Descriptor{
		Name:    name,
		Enabled: r.store.IsEnabled(name),
		Options: r.store.PluginOptions(name),
	}
}

// List describes every available plugin, in declaration order.
func (r *Registry) List() []Descriptor {
	names := r.AvailableNames()
	descriptors := make([]Descriptor, 0, len(names))
	for _, name := range names {
		descriptors = append(descriptors, r.Describe(name))
	}
	return descriptors
}

// MenuItems invokes the plugin's registered menu hook, if any. Absence of a
// hook is not an error; the caller renders a bare toggle instead.
func (r *Registry) MenuItems(name string, view webview.View, refresh func()) ([]menu.Item, bool) {
	hook, ok := r.hooks[name]
	if !ok {
		return nil, false
	}
	return hook(view, r.store.PluginOptions(name), refresh), true
}
