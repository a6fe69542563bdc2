// Package platform hosts the per-OS integrations: taskbar media controls on
// Windows, start-at-login registration, and process identity. Everything else
// compiles to a no-op.
package platform

// Controls are the media commands the host forwards into the page.
type Controls interface {
	PlayPause()
	Next()
	Previous()
}

// NowPlaying is a playback snapshot reported by the page script.
type NowPlaying struct {
	Playing bool   `json:"playing"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
}

// MediaService mirrors playback state into the OS media surfaces.
type MediaService interface {
	Start() error
	Stop() error
	HandleNowPlaying(state NowPlaying)
}
