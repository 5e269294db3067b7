//go:build darwin

package transport

import "syscall"

// setSocketOptions mirrors socket_linux.go: SO_REUSEADDR and SO_BROADCAST
// share the same option values under BSD sockets.
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
