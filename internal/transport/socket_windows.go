//go:build windows

package transport

import "golang.org/x/sys/windows"

// setSocketOptions enables SO_REUSEADDR and SO_BROADCAST through the
// windows package's winsock bindings. Unlike the raw-socket primitives
// elsewhere in this tree, plain UDP sockopts are fully supported on
// Windows, so this is a real implementation rather than a stub.
func setSocketOptions(fd uintptr) error {
	h := windows.Handle(fd)
	if err := windows.SetsockoptInt(h, windows.SOL_SOCKET, windows.SO_REUSEADDR, 1); err != nil {
		return err
	}
	if err := windows.SetsockoptInt(h, windows.SOL_SOCKET, windows.SO_BROADCAST, 1); err != nil {
		return err
	}
	return nil
}
