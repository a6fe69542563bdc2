//go:build !windows

package platform

// InitAppIdentity is only meaningful on Windows.
func InitAppIdentity() error {
	return nil
}
