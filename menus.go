package main

import (
	"log"
	"runtime"
	"sync"

	"github.com/pkg/browser"
	"github.com/wailsapp/wails/v3/pkg/application"

	"strum/internal/config"
	"strum/internal/menu"
	"strum/internal/platform"
	"strum/internal/plugin"
	"strum/internal/webview"
)

// shell owns the menu bar and tray for the lifetime of the app. Any handler
// that changes rendered state calls refresh, which rebuilds both from the
// current configuration and swaps them in.
type shell struct {
	app      *application.App
	store    *config.Store
	view     *webview.WindowView
	window   *application.WebviewWindow
	builder  *menu.Builder
	tray     *application.SystemTray
	goos     string
	mu       sync.Mutex
	quitting bool
}

func newShell(
	app *application.App,
	store *config.Store,
	registry *plugin.Registry,
	view *webview.WindowView,
	window *application.WebviewWindow,
	controls *pageControls,
	paths config.Paths,
) *shell {
	s := &shell{
		app:    app,
		store:  store,
		view:   view,
		window: window,
		goos:   runtime.GOOS,
	}

	s.builder = &menu.Builder{
		Config:  store,
		Plugins: registry,
		View:    view,
		Prompt:  newJSPrompter(app, view),
		GOOS:    s.goos,
		AppName: "Strum",
		EditConfig: func() {
			if err := browser.OpenFile(store.Path()); err != nil {
				log.Printf("open config file: %v", err)
			}
		},
		OpenConfigFolder: func() {
			if err := browser.OpenURL("file://" + paths.BaseDir); err != nil {
				log.Printf("open config folder: %v", err)
			}
		},
		SetStartAtLogin: func(enabled bool) error {
			return platform.SetStartAtLogin("Strum", enabled)
		},
		PlayPause:  controls.PlayPause,
		ShowWindow: func() { window.Show() },
		HideWindow: func() { window.Hide() },
	}

	return s
}

func (s *shell) isQuitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quitting
}

func (s *shell) quit() {
	s.mu.Lock()
	s.quitting = true
	s.mu.Unlock()
	s.app.Quit()
}

func (s *shell) roleActions() menu.RoleActions {
	return menu.RoleActions{
		Quit:             s.quit,
		Reload:           s.view.Reload,
		ToggleDevTools:   s.view.OpenDevTools,
		ZoomIn:           s.view.ZoomIn,
		ZoomOut:          s.view.ZoomOut,
		ResetZoom:        s.view.ZoomReset,
		ToggleFullscreen: s.view.ToggleFullscreen,
		About:            s.showAbout,
	}
}

func (s *shell) showAbout() {
	s.app.Menu.ShowAbout()
}

// installMenus renders and installs the menu bar and, when enabled, the tray.
// It doubles as the refresh callback threaded through the builder.
func (s *shell) installMenus() {
	roles := s.roleActions()

	// "Hide menu" only suppresses the in-window menu bar; macOS keeps its
	// global one.
	hideMenu := s.store.GetBool("options.hideMenu") && s.goos != "darwin"
	if !hideMenu {
		template := s.builder.BuildMenuTemplate(s.installMenus)
		s.app.Menu.SetApplicationMenu(menu.Render(s.app, template, roles))
	}

	if !s.store.GetBool("options.tray") {
		return
	}

	if s.tray == nil {
		s.tray = s.app.SystemTray.New()
		s.tray.SetLabel("Strum")
		if icon, err := trayIconFS.ReadFile("icons/tray.png"); err == nil {
			s.tray.SetIcon(icon)
		}
	}

	trayTemplate := s.builder.BuildTrayTemplate(s.installMenus)
	s.tray.SetMenu(menu.Render(s.app, trayTemplate, roles))
}
