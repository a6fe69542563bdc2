package main

import (
	"github.com/wailsapp/wails/v3/pkg/application"

	"strum/internal/config"
)

const (
	acceleratorMediaPlayPause = "MEDIA_PLAY_PAUSE"
	acceleratorMediaNextTrack = "MEDIA_NEXT_TRACK"
	acceleratorMediaPrevTrack = "MEDIA_PREV_TRACK"
)

// applyShortcuts binds the hardware media keys to the page controls while
// the shortcuts plugin is enabled.
func applyShortcuts(app *application.App, store *config.Store, controls *pageControls) {
	if !store.IsEnabled("shortcuts") {
		return
	}

	bind := func(accelerator string, action func()) {
		app.KeyBinding.Add(accelerator, func(_ application.Window) {
			action()
		})
	}

	bind(acceleratorMediaPlayPause, controls.PlayPause)
	bind(acceleratorMediaNextTrack, controls.Next)
	bind(acceleratorMediaPrevTrack, controls.Previous)
}
