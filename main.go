package main

import (
	"embed"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/bep/debounce"
	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"strum/internal/config"
	"strum/internal/css"
	"strum/internal/platform"
	"strum/internal/plugin"
	"strum/internal/webview"
)

//go:embed icons/tray.png
var trayIconFS embed.FS

// EventNowPlaying carries playback snapshots emitted by the page script.
const EventNowPlaying = "player:state"

func init() {
	application.RegisterEvent[platform.NowPlaying](EventNowPlaying)
	application.RegisterEvent[map[string]any](plugin.EventDownloadTrack)
	application.RegisterEvent[map[string]any](promptResultEvent)
}

func main() {
	paths, err := config.ResolvePaths("strum")
	if err != nil {
		log.Fatal(err)
	}

	store, err := config.OpenStore(paths.ConfigPath)
	if err != nil {
		log.Fatal(err)
	}

	// Must be set before the webview process spawns.
	if store.GetBool("options.disableHardwareAcceleration") {
		os.Setenv("WEBKIT_DISABLE_COMPOSITING_MODE", "1")
	}

	if err := platform.InitAppIdentity(); err != nil {
		log.Printf("app identity setup failed: %v", err)
	}

	registry := plugin.NewRegistry(store)

	configService := NewConfigService(store)
	pluginService := NewPluginService(registry, store)

	trayEnabled := store.GetBool("options.tray")
	appVisible := store.GetBool("options.appVisible")

	app := application.New(application.Options{
		Name:        "Strum",
		Description: "Desktop shell for web music players",
		Services: []application.Service{
			application.NewService(configService),
			application.NewService(pluginService),
		},
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: !trayEnabled,
		},
	})

	store.SetRestartFunc(func() {
		relaunch(app)
	})

	window := app.Window.NewWithOptions(application.WebviewWindowOptions{
		Title:  "Strum",
		URL:    store.GetString("url"),
		Width:  store.GetInt("window-size.width"),
		Height: store.GetInt("window-size.height"),
		Hidden: trayEnabled && !appVisible,
		Mac: application.MacWindow{
			InvisibleTitleBarHeight: 50,
		},
		BackgroundColour: application.NewRGB(18, 18, 18),
	})

	view := webview.NewWindowView(window)
	injector := css.NewInjector(view)
	controls := newPageControls(view)

	registerPlugins(app, store, registry, view, injector)
	applyShortcuts(app, store, controls)

	shell := newShell(app, store, registry, view, window, controls, paths)
	shell.installMenus()

	persistWindowGeometry(window, store)

	// Closing the window hides to tray instead of quitting while the tray
	// is active.
	window.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		if trayEnabled && !shell.isQuitting() {
			window.Hide()
			e.Cancel()
		}
	})

	if registry.Describe("taskbar-mediacontrol").Enabled {
		media := platform.NewMediaService(app, controls)
		if err := media.Start(); err != nil {
			log.Printf("media controls disabled: %v", err)
		} else {
			defer media.Stop()
			app.Event.On(EventNowPlaying, func(event *application.CustomEvent) {
				media.HandleNowPlaying(decodeNowPlaying(event.Data))
			})
		}
	}

	watcher := config.NewWatcher(store, externalConfigEdit(store, func() {
		relaunch(app)
	}))
	if err := watcher.Start(); err != nil {
		log.Printf("config watcher disabled: %v", err)
	} else {
		defer watcher.Stop()
	}

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

// persistWindowGeometry saves the window size after resizes settle. Geometry
// writes are exempt from restart-on-config-change.
func persistWindowGeometry(window *application.WebviewWindow, store *config.Store) {
	debounced := debounce.New(300 * time.Millisecond)
	window.RegisterHook(events.Common.WindowDidResize, func(_ *application.WindowEvent) {
		debounced(func() {
			width, height := window.Size()
			if width <= 0 || height <= 0 {
				return
			}
			if err := store.Set("window-size.width", width); err != nil {
				log.Printf("persist window width: %v", err)
				return
			}
			if err := store.Set("window-size.height", height); err != nil {
				log.Printf("persist window height: %v", err)
			}
		})
	})
}

// decodeNowPlaying tolerates whatever shape the page emits; a failed decode
// yields the zero snapshot, which reads as "nothing playing".
func decodeNowPlaying(data any) platform.NowPlaying {
	var state platform.NowPlaying
	raw, err := json.Marshal(data)
	if err != nil {
		return state
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("now playing event decode: %v", err)
	}
	return state
}
