package plugin

import (
	"log"

	"strum/internal/menu"
	"strum/internal/webview"
)

// OptionWriter persists a plugin option changed from a menu item.
type OptionWriter interface {
	SetMenuOption(path string, value any) error
}

// Emitter publishes an application event; the page-side handler is an
// external collaborator.
type Emitter func(name string, payload any)

// EventDownloadTrack asks the downloader's page script to capture the
// current track.
const EventDownloadTrack = "downloader:download"

var downloaderPresets = []string{"mp3", "opus", "source"}

// DownloaderMenu is the downloader plugin's menu contribution: a download
// action plus a preset radio group persisted under the plugin's options.
func DownloaderMenu(store OptionWriter, emit Emitter) MenuHook {
	return func(_ webview.View, options map[string]any, refresh func()) []menu.Item {
		current, _ := options["preset"].(string)

		items := []menu.Item{
			menu.Normal("Download current track", func() {
				emit(EventDownloadTrack, options)
			}),
			menu.Separator(),
		}

		for _, preset := range downloaderPresets {
			preset := preset
			items = append(items, menu.Radio(preset, preset == current, func() {
				setPluginOption(store, "plugins.downloader.preset", preset)
				refresh()
			}))
		}

		return items
	}
}

var notificationUrgencies = []string{"low", "normal", "critical"}

// NotificationsMenu is the notifications plugin's menu contribution: an
// urgency radio group.
func NotificationsMenu(store OptionWriter) MenuHook {
	return func(_ webview.View, options map[string]any, refresh func()) []menu.Item {
		current, _ := options["urgency"].(string)

		var items []menu.Item
		for _, urgency := range notificationUrgencies {
			urgency := urgency
			items = append(items, menu.Radio(urgency, urgency == current, func() {
				setPluginOption(store, "plugins.notifications.urgency", urgency)
				refresh()
			}))
		}

		return items
	}
}

func setPluginOption(store OptionWriter, path string, value any) {
	if err := store.SetMenuOption(path, value); err != nil {
		log.Printf("plugin: set %s: %v", path, err)
	}
}
