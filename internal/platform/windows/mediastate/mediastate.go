// Package mediastate carries the playback snapshot shared by the Windows
// media surfaces.
package mediastate

// Controls are the media commands a surface can trigger.
type Controls interface {
	PlayPause()
	Next()
	Previous()
}

// Snapshot is the playback state a surface renders.
type Snapshot struct {
	Playing bool
	Title   string
	Artist  string
	Album   string
}
