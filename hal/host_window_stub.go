//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow needs ebiten, which needs cgo on desktop platforms.
func RunWindow(HostConfig, AppFactory) error {
	return errors.New("window mode needs a cgo build (CGO_ENABLED=1); use -headless instead")
}
