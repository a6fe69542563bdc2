package menu

import (
	"log"
	"strings"

	"strum/internal/webview"
)

// Config is the configuration surface menu handlers mutate.
type Config interface {
	Get(path string) any
	SetMenuOption(path string, value any) error
	IsEnabled(name string) bool
	Enable(name string) error
	Disable(name string) error
}

// PluginSource enumerates available plugins and their menu contributions.
type PluginSource interface {
	AvailableNames() []string
	MenuItems(name string, view webview.View, refresh func()) ([]Item, bool)
}

// Prompter collects a line of text from the user and hands the outcome to
// reply, off the click path. ok is false when the dialog was cancelled,
// which is distinct from submitting an empty string.
type Prompter interface {
	Prompt(title, label, value string, reply func(result string, ok bool))
}

// Builder assembles the menu bar and tray templates from configuration
// state. Handlers mutate Config synchronously and call the refresh callback
// passed into Build whenever rendered checked/visible state depends on the
// change.
type Builder struct {
	Config  Config
	Plugins PluginSource
	View    webview.View
	Prompt  Prompter
	GOOS    string
	AppName string

	// Host actions injected by the owner.
	EditConfig       func()
	OpenConfigFolder func()
	SetStartAtLogin  func(enabled bool) error
	PlayPause        func()
	ShowWindow       func()
	HideWindow       func()
}

// BuildMenuTemplate composes the menu bar template. refresh rebuilds and
// reinstalls the menus; it is threaded down into every handler that needs
// it.
func (b *Builder) BuildMenuTemplate(refresh func()) []Item {
	var items []Item

	if b.GOOS == "darwin" {
		items = append(items, Submenu(b.AppName,
			Role(RoleAbout, "About "+b.AppName, ""),
			Separator(),
			Role(RoleQuit, "Quit "+b.AppName, "CmdOrCtrl+Q"),
		))
	}

	items = append(items,
		b.pluginsMenu(refresh),
		b.optionsMenu(refresh),
		b.viewMenu(),
	)

	if b.GOOS != "darwin" {
		items = append(items, Submenu("Help",
			Role(RoleAbout, "About "+b.AppName, ""),
		))
	}

	return items
}

// BuildTrayTemplate composes the tray menu template.
func (b *Builder) BuildTrayTemplate(refresh func()) []Item {
	return []Item{
		Normal("Show", b.ShowWindow),
		Normal("Hide", b.HideWindow),
		Separator(),
		Normal("Play / Pause", b.PlayPause),
		Separator(),
		b.pluginsMenu(refresh),
		Separator(),
		Role(RoleQuit, "Quit", "CmdOrCtrl+Q"),
	}
}

func (b *Builder) pluginsMenu(refresh func()) Item {
	var items []Item
	for _, name := range b.Plugins.AvailableNames() {
		items = append(items, b.pluginItem(name, refresh))
	}
	return Submenu("Plugins", items...)
}

// pluginItem renders a bare enabled-checkbox, or, when the plugin is enabled
// and contributes its own items, a submenu holding the checkbox and the
// contribution below a separator. Toggling triggers a rebuild so the submenu
// appears and disappears with the enabled state.
func (b *Builder) pluginItem(name string, refresh func()) Item {
	enabled := b.Config.IsEnabled(name)
	label := titleCase(name)

	toggle := Checkbox("Enabled", enabled, func() {
		b.togglePlugin(name, enabled)
		refresh()
	})

	if enabled {
		if contributed, ok := b.Plugins.MenuItems(name, b.View, refresh); ok {
			children := append([]Item{toggle, Separator()}, contributed...)
			return Submenu(label, children...)
		}
	}

	toggle.Label = label
	return toggle
}

func (b *Builder) togglePlugin(name string, enabled bool) {
	var err error
	if enabled {
		err = b.Config.Disable(name)
	} else {
		err = b.Config.Enable(name)
	}
	if err != nil {
		log.Printf("menu: toggle plugin %s: %v", name, err)
	}
}

func (b *Builder) optionsMenu(refresh func()) Item {
	items := []Item{
		b.trayMenu(refresh),
		b.proxyItem(refresh),
	}

	if b.GOOS == "windows" || b.GOOS == "darwin" {
		items = append(items, b.startAtLoginItem(refresh))
	}
	if b.GOOS == "windows" || b.GOOS == "linux" {
		items = append(items, b.optionCheckbox("Hide menu", "options.hideMenu", refresh))
	}

	items = append(items,
		b.optionCheckbox("Auto-updates", "options.autoUpdates", refresh),
		b.optionCheckbox("Disable hardware acceleration", "options.disableHardwareAcceleration", refresh),
		b.optionCheckbox("Restart on config change", "options.restartOnConfigChange", refresh),
		Separator(),
		Submenu("Advanced",
			Normal("Edit config.json", b.EditConfig),
			Normal("Show config folder", b.OpenConfigFolder),
		),
	)

	return Submenu("Options", items...)
}

// trayMenu encodes the three-way tray state as a radio group. Each state is
// a fixed combination of the tray and appVisible flags, written together in
// the same handler.
func (b *Builder) trayMenu(refresh func()) Item {
	tray := b.boolAt("options.tray")
	visible := b.boolAt("options.appVisible")

	setBoth := func(tray, visible bool) func() {
		return func() {
			b.setOption("options.tray", tray)
			b.setOption("options.appVisible", visible)
			refresh()
		}
	}

	return Submenu("Tray",
		Radio("Disabled", !tray, setBoth(false, true)),
		Radio("Enabled + app visible", tray && visible, setBoth(true, true)),
		Radio("Enabled + app hidden", tray && !visible, setBoth(true, false)),
	)
}

// proxyItem is checked while a proxy address is configured. Clicking prompts
// for an address: cancelling reverts the checkbox with no write, submitting
// an empty string disables the proxy, and any other value is stored
// verbatim.
func (b *Builder) proxyItem(refresh func()) Item {
	current, _ := b.Config.Get("options.proxy").(string)

	return Checkbox("Proxy", current != "", func() {
		b.Prompt.Prompt("Proxy", "Proxy address (e.g. socks5://127.0.0.1:9999, empty to disable)", current, func(value string, ok bool) {
			if !ok {
				refresh()
				return
			}
			b.setOption("options.proxy", value)
			refresh()
		})
	})
}

func (b *Builder) startAtLoginItem(refresh func()) Item {
	enabled := b.boolAt("options.startAtLogin")

	return Checkbox("Start at login", enabled, func() {
		next := !enabled
		if b.SetStartAtLogin != nil {
			if err := b.SetStartAtLogin(next); err != nil {
				log.Printf("menu: start at login: %v", err)
				refresh()
				return
			}
		}
		b.setOption("options.startAtLogin", next)
		refresh()
	})
}

func (b *Builder) optionCheckbox(label, path string, refresh func()) Item {
	checked := b.boolAt(path)
	return Checkbox(label, checked, func() {
		b.setOption(path, !checked)
		refresh()
	})
}

func (b *Builder) viewMenu() Item {
	items := []Item{
		Role(RoleReload, "Reload", "CmdOrCtrl+R"),
	}

	// Dev tools are a host role on macOS and an explicit handler elsewhere.
	if b.GOOS == "darwin" {
		items = append(items, Role(RoleToggleDevTools, "Toggle Developer Tools", "Cmd+Option+I"))
	} else {
		devtools := Normal("Toggle Developer Tools", b.View.OpenDevTools)
		devtools.Accelerator = "Ctrl+Shift+I"
		items = append(items, devtools)
	}

	items = append(items,
		Separator(),
		Role(RoleResetZoom, "Actual Size", "CmdOrCtrl+0"),
		Role(RoleZoomIn, "Zoom In", "CmdOrCtrl+Plus"),
		Role(RoleZoomOut, "Zoom Out", "CmdOrCtrl+-"),
		Separator(),
		Role(RoleToggleFullscreen, "Toggle Full Screen", "F11"),
	)

	return Submenu("View", items...)
}

func (b *Builder) setOption(path string, value any) {
	if err := b.Config.SetMenuOption(path, value); err != nil {
		log.Printf("menu: set %s: %v", path, err)
	}
}

func (b *Builder) boolAt(path string) bool {
	value, _ := b.Config.Get(path).(bool)
	return value
}

// titleCase turns a plugin name like "taskbar-mediacontrol" into
// "Taskbar Mediacontrol" for display.
func titleCase(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "-", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
