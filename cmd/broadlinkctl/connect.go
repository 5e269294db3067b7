package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"broadlink/internal/config"
	"broadlink/internal/device"
	"broadlink/internal/transport"
)

// parseHWAddr accepts a hardware address written as "34ea34aabbcc" or
// "34:ea:34:aa:bb:cc" and returns the bytes in the order written, which is
// the order discovery reports them in.
func parseHWAddr(s string) ([6]byte, error) {
	var hw [6]byte
	clean := strings.ReplaceAll(strings.ReplaceAll(s, ":", ""), "-", "")
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return hw, fmt.Errorf("invalid hardware address %q: %w", s, err)
	}
	if len(raw) != 6 {
		return hw, fmt.Errorf("hardware address %q must be 6 bytes, got %d", s, len(raw))
	}
	copy(hw[:], raw)
	return hw, nil
}

// parseDeviceType accepts a hex string like "0x2737" or "2737".
func parseDeviceType(s string) (uint16, error) {
	clean := strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(clean, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid device type %q: %w", s, err)
	}
	return uint16(v), nil
}

// dial opens a UDP channel and builds a Handle bound to host:port,
// applying the device label from config to the auth handshake.
func dial(cfg *config.Config, host string, port int, hw [6]byte, devType uint16) (*device.Handle, *transport.Channel, error) {
	ch, err := transport.Listen(context.Background(), cfg.Network.ListenAddress)
	if err != nil {
		return nil, nil, fmt.Errorf("opening local socket: %w", err)
	}

	remote := &net.UDPAddr{IP: net.ParseIP(host), Port: port}
	if remote.IP == nil {
		ch.Close()
		return nil, nil, fmt.Errorf("invalid host %q", host)
	}

	h := device.New(ch, remote, hw, devType)
	h.Label = cfg.Session.LocalDeviceLabel
	return h, ch, nil
}

// commandDeadline resolves the deadline a single command should use, from
// either an explicit flag or the config's command timeout default.
func commandDeadline(cfg *config.Config, explicit time.Duration) time.Duration {
	if explicit > 0 {
		return explicit
	}
	return cfg.Session.CommandTimeout
}
