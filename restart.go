package main

import (
	"log"
	"os"
	"os/exec"

	"github.com/wailsapp/wails/v3/pkg/application"

	"strum/internal/config"
)

// externalConfigEdit decides what an out-of-band edit of config.json does:
// with restart-on-config-change enabled the new file is applied by
// relaunching, otherwise the watcher's log line is all the user gets. The
// flag is read from the edited file, not from the running process's stale
// view of it.
func externalConfigEdit(store *config.Store, restart func()) func() {
	return func() {
		edited, err := config.OpenStore(store.Path())
		if err != nil {
			log.Printf("config reread after external edit: %v", err)
			return
		}
		if edited.GetBool("options.restartOnConfigChange") {
			restart()
		}
	}
}

// relaunch starts a fresh process with the same arguments and quits this one.
// The caller guarantees the config write that triggered it is already on
// disk, so the replacement reads the new state.
func relaunch(app *application.App) {
	exe, err := os.Executable()
	if err != nil {
		log.Printf("restart skipped, executable path unknown: %v", err)
		return
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		log.Printf("restart skipped: %v", err)
		return
	}

	app.Quit()
}
