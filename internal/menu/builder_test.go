package menu_test

import (
	"path/filepath"
	"testing"

	"strum/internal/config"
	"strum/internal/menu"
	"strum/internal/plugin"
)

type fakeView struct {
	scripts  []string
	devtools int
	reloads  int
}

func (v *fakeView) ExecJS(js string) { v.scripts = append(v.scripts, js) }

func (v *fakeView) OnContentLoaded(fn func()) func() { return func() {} }

func (v *fakeView) Reload() { v.reloads++ }

func (v *fakeView) OpenDevTools() { v.devtools++ }

type fakePrompter struct {
	result string
	ok     bool
	calls  int
}

func (p *fakePrompter) Prompt(title, label, value string, reply func(string, bool)) {
	p.calls++
	reply(p.result, p.ok)
}

func newBuilderForTest(t *testing.T, goos string) (*menu.Builder, *config.Store, *fakePrompter) {
	t.Helper()

	store, err := config.OpenStore(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	prompt := &fakePrompter{}
	builder := &menu.Builder{
		Config:  store,
		Plugins: plugin.NewRegistryFor(store, goos),
		View:    &fakeView{},
		Prompt:  prompt,
		GOOS:    goos,
		AppName: "Strum",
	}
	return builder, store, prompt
}

func findSubmenu(t *testing.T, items []menu.Item, label string) menu.Item {
	t.Helper()
	for _, item := range items {
		if item.Type == menu.TypeSubmenu && item.Label == label {
			return item
		}
	}
	t.Fatalf("submenu %q not found in %d items", label, len(items))
	return menu.Item{}
}

func findItem(items []menu.Item, label string) (menu.Item, bool) {
	for _, item := range items {
		if item.Label == label {
			return item, true
		}
	}
	return menu.Item{}, false
}

func TestTrayRadioGroupExactlyOneChecked(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		tray    bool
		visible bool
		checked string
	}{
		{name: "disabled", tray: false, visible: true, checked: "Disabled"},
		{name: "enabled visible", tray: true, visible: true, checked: "Enabled + app visible"},
		{name: "enabled hidden", tray: true, visible: false, checked: "Enabled + app hidden"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			builder, store, _ := newBuilderForTest(t, "linux")
			if err := store.Set("options.tray", tc.tray); err != nil {
				t.Fatalf("set tray: %v", err)
			}
			if err := store.Set("options.appVisible", tc.visible); err != nil {
				t.Fatalf("set appVisible: %v", err)
			}

			options := findSubmenu(t, builder.BuildMenuTemplate(func() {}), "Options")
			tray := findSubmenu(t, options.Items, "Tray")

			var checked []string
			for _, item := range tray.Items {
				if item.Type != menu.TypeRadio {
					t.Fatalf("expected radio item, got %q", item.Type)
				}
				if item.Checked {
					checked = append(checked, item.Label)
				}
			}
			if len(checked) != 1 || checked[0] != tc.checked {
				t.Fatalf("expected only %q checked, got %v", tc.checked, checked)
			}
		})
	}
}

func TestTrayRadioWritesBothFlags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label   string
		tray    bool
		visible bool
	}{
		{label: "Disabled", tray: false, visible: true},
		{label: "Enabled + app visible", tray: true, visible: true},
		{label: "Enabled + app hidden", tray: true, visible: false},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			t.Parallel()

			builder, store, _ := newBuilderForTest(t, "linux")

			refreshes := 0
			options := findSubmenu(t, builder.BuildMenuTemplate(func() { refreshes++ }), "Options")
			tray := findSubmenu(t, options.Items, "Tray")

			item, ok := findItem(tray.Items, tc.label)
			if !ok {
				t.Fatalf("radio %q not found", tc.label)
			}
			item.OnClick()

			if got := store.GetBool("options.tray"); got != tc.tray {
				t.Fatalf("options.tray = %v, want %v", got, tc.tray)
			}
			if got := store.GetBool("options.appVisible"); got != tc.visible {
				t.Fatalf("options.appVisible = %v, want %v", got, tc.visible)
			}
			if refreshes != 1 {
				t.Fatalf("expected one refresh, got %d", refreshes)
			}
		})
	}
}

func TestProxyPromptCancelWritesNothing(t *testing.T) {
	t.Parallel()

	builder, store, prompt := newBuilderForTest(t, "linux")
	prompt.ok = false

	refreshes := 0
	options := findSubmenu(t, builder.BuildMenuTemplate(func() { refreshes++ }), "Options")
	proxy, ok := findItem(options.Items, "Proxy")
	if !ok {
		t.Fatalf("proxy item not found")
	}
	if proxy.Checked {
		t.Fatalf("expected proxy unchecked while unset")
	}

	proxy.OnClick()

	if prompt.calls != 1 {
		t.Fatalf("expected one prompt, got %d", prompt.calls)
	}
	if got := store.GetString("options.proxy"); got != "" {
		t.Fatalf("cancel must not write, got %q", got)
	}
	// The checkbox still toggled visually, so a rebuild restores it.
	if refreshes != 1 {
		t.Fatalf("expected one refresh, got %d", refreshes)
	}
}

func TestProxyPromptEmptyDisables(t *testing.T) {
	t.Parallel()

	builder, store, prompt := newBuilderForTest(t, "linux")
	if err := store.Set("options.proxy", "socks5://127.0.0.1:9999"); err != nil {
		t.Fatalf("set proxy: %v", err)
	}
	prompt.result, prompt.ok = "", true

	options := findSubmenu(t, builder.BuildMenuTemplate(func() {}), "Options")
	proxy, _ := findItem(options.Items, "Proxy")
	if !proxy.Checked {
		t.Fatalf("expected proxy checked while configured")
	}

	proxy.OnClick()

	if got := store.GetString("options.proxy"); got != "" {
		t.Fatalf("empty submission must clear the proxy, got %q", got)
	}
}

func TestProxyPromptValueStoredVerbatim(t *testing.T) {
	t.Parallel()

	builder, store, prompt := newBuilderForTest(t, "linux")
	prompt.result, prompt.ok = "socks5://127.0.0.1:9999", true

	options := findSubmenu(t, builder.BuildMenuTemplate(func() {}), "Options")
	proxy, _ := findItem(options.Items, "Proxy")
	proxy.OnClick()

	if got := store.GetString("options.proxy"); got != "socks5://127.0.0.1:9999" {
		t.Fatalf("unexpected stored proxy %q", got)
	}
}

func TestPluginSubmenuOnlyWhenEnabledAndContributing(t *testing.T) {
	t.Parallel()

	builder, store, _ := newBuilderForTest(t, "linux")
	registry := builder.Plugins.(*plugin.Registry)
	registry.RegisterMenu("downloader", plugin.DownloaderMenu(store, func(string, any) {}))

	// Disabled: a bare checkbox even though a hook is registered.
	plugins := findSubmenu(t, builder.BuildMenuTemplate(func() {}), "Plugins")
	item, ok := findItem(plugins.Items, "Downloader")
	if !ok {
		t.Fatalf("downloader entry not found")
	}
	if item.Type != menu.TypeCheckbox || item.Checked {
		t.Fatalf("expected unchecked checkbox, got type %q checked %v", item.Type, item.Checked)
	}

	if err := store.Enable("downloader"); err != nil {
		t.Fatalf("enable downloader: %v", err)
	}

	// Enabled with a hook: submenu holding the toggle, a separator, then
	// the contribution.
	plugins = findSubmenu(t, builder.BuildMenuTemplate(func() {}), "Plugins")
	item, _ = findItem(plugins.Items, "Downloader")
	if item.Type != menu.TypeSubmenu {
		t.Fatalf("expected submenu, got %q", item.Type)
	}
	if item.Items[0].Label != "Enabled" || !item.Items[0].Checked {
		t.Fatalf("expected checked Enabled toggle first, got %+v", item.Items[0])
	}
	if item.Items[1].Type != menu.TypeSeparator {
		t.Fatalf("expected separator after toggle")
	}
	if _, ok := findItem(item.Items, "Download current track"); !ok {
		t.Fatalf("expected contributed download action")
	}

	// Enabled without a hook: still a bare checkbox, now checked.
	if err := store.Enable("shortcuts"); err != nil {
		t.Fatalf("enable shortcuts: %v", err)
	}
	plugins = findSubmenu(t, builder.BuildMenuTemplate(func() {}), "Plugins")
	item, ok = findItem(plugins.Items, "Shortcuts")
	if !ok {
		t.Fatalf("shortcuts entry not found")
	}
	if item.Type != menu.TypeCheckbox || !item.Checked {
		t.Fatalf("expected checked checkbox, got type %q checked %v", item.Type, item.Checked)
	}
}

func TestPluginToggleWritesAndRefreshes(t *testing.T) {
	t.Parallel()

	builder, store, _ := newBuilderForTest(t, "linux")

	refreshes := 0
	plugins := findSubmenu(t, builder.BuildMenuTemplate(func() { refreshes++ }), "Plugins")

	item, ok := findItem(plugins.Items, "Adblocker")
	if !ok {
		t.Fatalf("adblocker entry not found")
	}
	// Adblocker is enabled by default and has no hook here, so it renders
	// as a checked checkbox.
	if !item.Checked {
		t.Fatalf("expected adblocker checked by default")
	}

	item.OnClick()
	if store.IsEnabled("adblocker") {
		t.Fatalf("expected adblocker disabled after toggle")
	}
	if refreshes != 1 {
		t.Fatalf("expected one refresh, got %d", refreshes)
	}
}

func TestMenuBarPlatformConditionals(t *testing.T) {
	t.Parallel()

	find := func(items []menu.Item, label string) bool {
		_, ok := findItem(items, label)
		return ok
	}

	t.Run("darwin", func(t *testing.T) {
		t.Parallel()

		builder, _, _ := newBuilderForTest(t, "darwin")
		items := builder.BuildMenuTemplate(func() {})

		// The app menu comes first and carries About and Quit.
		if items[0].Type != menu.TypeSubmenu || items[0].Label != "Strum" {
			t.Fatalf("expected app menu first, got %+v", items[0])
		}
		if !find(items[0].Items, "About Strum") || !find(items[0].Items, "Quit Strum") {
			t.Fatalf("app menu missing About/Quit: %+v", items[0].Items)
		}
		for _, item := range items {
			if item.Label == "Help" {
				t.Fatalf("no Help menu expected on darwin")
			}
		}

		options := findSubmenu(t, items, "Options")
		if !find(options.Items, "Start at login") {
			t.Fatalf("expected Start at login on darwin")
		}
		if find(options.Items, "Hide menu") {
			t.Fatalf("Hide menu must not appear on darwin")
		}
	})

	t.Run("windows", func(t *testing.T) {
		t.Parallel()

		builder, _, _ := newBuilderForTest(t, "windows")
		items := builder.BuildMenuTemplate(func() {})

		help := findSubmenu(t, items, "Help")
		if !find(help.Items, "About Strum") {
			t.Fatalf("expected About under Help on windows")
		}

		options := findSubmenu(t, items, "Options")
		if !find(options.Items, "Start at login") || !find(options.Items, "Hide menu") {
			t.Fatalf("expected Start at login and Hide menu on windows")
		}
	})

	t.Run("linux", func(t *testing.T) {
		t.Parallel()

		builder, _, _ := newBuilderForTest(t, "linux")
		items := builder.BuildMenuTemplate(func() {})

		options := findSubmenu(t, items, "Options")
		if find(options.Items, "Start at login") {
			t.Fatalf("Start at login must not appear on linux")
		}
		if !find(options.Items, "Hide menu") {
			t.Fatalf("expected Hide menu on linux")
		}
	})
}

func TestStartAtLoginFailureLeavesConfigUntouched(t *testing.T) {
	t.Parallel()

	builder, store, _ := newBuilderForTest(t, "windows")
	builder.SetStartAtLogin = func(bool) error {
		return errTestLogin
	}

	options := findSubmenu(t, builder.BuildMenuTemplate(func() {}), "Options")
	item, ok := findItem(options.Items, "Start at login")
	if !ok {
		t.Fatalf("Start at login not found")
	}
	item.OnClick()

	if store.GetBool("options.startAtLogin") {
		t.Fatalf("failed registration must not persist the flag")
	}
}

var errTestLogin = errLogin("registry unavailable")

type errLogin string

func (e errLogin) Error() string { return string(e) }

func TestDevToolsHandlerOutsideDarwin(t *testing.T) {
	t.Parallel()

	builder, _, _ := newBuilderForTest(t, "linux")
	view := builder.View.(*fakeView)

	viewMenu := findSubmenu(t, builder.BuildMenuTemplate(func() {}), "View")
	devtools, ok := findItem(viewMenu.Items, "Toggle Developer Tools")
	if !ok {
		t.Fatalf("devtools item not found")
	}
	if devtools.Type == menu.TypeRole {
		t.Fatalf("devtools must be an explicit handler off darwin")
	}
	devtools.OnClick()
	if view.devtools != 1 {
		t.Fatalf("expected devtools opened once, got %d", view.devtools)
	}
}

func TestTrayTemplateShape(t *testing.T) {
	t.Parallel()

	builder, _, _ := newBuilderForTest(t, "linux")

	shown, hidden, played := 0, 0, 0
	builder.ShowWindow = func() { shown++ }
	builder.HideWindow = func() { hidden++ }
	builder.PlayPause = func() { played++ }

	items := builder.BuildTrayTemplate(func() {})

	for _, label := range []string{"Show", "Hide", "Play / Pause", "Plugins", "Quit"} {
		if _, ok := findItem(items, label); !ok {
			t.Fatalf("tray template missing %q", label)
		}
	}

	show, _ := findItem(items, "Show")
	show.OnClick()
	hide, _ := findItem(items, "Hide")
	hide.OnClick()
	play, _ := findItem(items, "Play / Pause")
	play.OnClick()

	if shown != 1 || hidden != 1 || played != 1 {
		t.Fatalf("handlers fired %d/%d/%d times", shown, hidden, played)
	}
}
