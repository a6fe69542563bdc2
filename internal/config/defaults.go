package config

// DefaultURL is the web app the shell loads when the config carries no
// override.
const DefaultURL = "https://music.youtube.com"

// PluginDefault declares a plugin known to the shell together with its
// default options. The options map always carries an "enabled" flag.
// Declaration order here is the order plugins appear in menus and listings.
type PluginDefault struct {
	Name    string
	Options map[string]any
}

// DefaultPlugins is the authoritative plugin table. Every plugin name used
// anywhere in the app must be declared here.
var DefaultPlugins = []PluginDefault{
	{Name: "adblocker", Options: map[string]any{
		"enabled": true,
		"cache":   true,
	}},
	{Name: "downloader", Options: map[string]any{
		"enabled":        false,
		"downloadFolder": "",
		"preset":         "mp3",
	}},
	{Name: "navigation", Options: map[string]any{
		"enabled": true,
	}},
	{Name: "shortcuts", Options: map[string]any{
		"enabled": false,
	}},
	{Name: "notifications", Options: map[string]any{
		"enabled": false,
		"urgency": "normal",
	}},
	{Name: "touchbar", Options: map[string]any{
		"enabled": false,
	}},
	{Name: "taskbar-mediacontrol", Options: map[string]any{
		"enabled": false,
	}},
}

var defaults = buildDefaultTree()

func buildDefaultTree() map[string]any {
	plugins := make(map[string]any, len(DefaultPlugins))
	for _, decl := range DefaultPlugins {
		plugins[decl.Name] = decl.Options
	}

	return map[string]any{
		"window-size": map[string]any{
			"width":  1100,
			"height": 550,
		},
		"url": DefaultURL,
		"options": map[string]any{
			"tray":                        false,
			"appVisible":                  true,
			"autoUpdates":                 true,
			"hideMenu":                    false,
			"startAtLogin":                false,
			"disableHardwareAcceleration": false,
			"restartOnConfigChange":       false,
			"proxy":                       "",
		},
		"plugins": plugins,
	}
}

// PluginNames returns all declared plugin names in declaration order.
func PluginNames() []string {
	names := make([]string, 0, len(DefaultPlugins))
	for _, decl := range DefaultPlugins {
		names = append(names, decl.Name)
	}
	return names
}

// DefaultValue resolves a dotted path against the default configuration
// table. Maps are returned as-is; callers must not mutate them.
func DefaultValue(path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = defaults
	start := 0
	for start <= len(path) {
		end := start
		for end < len(path) && path[end] != '.' {
			end++
		}
		key := path[start:end]

		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}

		start = end + 1
	}

	return current, true
}

// DefaultPluginOptions returns a copy of a plugin's default options, or nil
// for an undeclared plugin.
func DefaultPluginOptions(name string) map[string]any {
	for _, decl := range DefaultPlugins {
		if decl.Name != name {
			continue
		}
		options := make(map[string]any, len(decl.Options))
		for key, value := range decl.Options {
			options[key] = value
		}
		return options
	}
	return nil
}
