//go:build linux

package transport

import "syscall"

// setSocketOptions enables SO_REUSEADDR and SO_BROADCAST on the raw file
// descriptor behind a net.ListenConfig.Control callback, mirroring how the
// platform-specific socket setters elsewhere in this codebase reach past the
// net package when a specific sockopt is required.
func setSocketOptions(fd uintptr) error {
	sysFd := int(fd)
	if err := syscall.SetsockoptInt(sysFd, syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1); err != nil {
		return err
	}
	if err := syscall.SetsockoptInt(sysFd, syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1); err != nil {
		return err
	}
	return nil
}
