//go:build !windows && !darwin

package platform

import "errors"

// SetStartAtLogin is unsupported here; the menu never offers it.
func SetStartAtLogin(string, bool) error {
	return errors.New("start at login is not supported on this platform")
}
