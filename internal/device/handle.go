// Package device implements device handles: the session state bound to a
// single endpoint (C6), and the per-family behaviour leaves built on top of
// the inner codecs (C9).
package device

import (
	"encoding/binary"
	"net"
	"sync"
	"time"

	"broadlink/internal/protocol"
	"broadlink/internal/registry"
)

// DefaultCommandDeadline is the overall deadline used for auth/command
// round trips when the caller does not supply one.
const DefaultCommandDeadline = 10 * time.Second

// Transport is the subset of *transport.Channel a handle needs. Defined
// here so leaves can be exercised against an in-memory fake.
type Transport interface {
	SendRecv(packet []byte, remote net.Addr, overallDeadline time.Duration) ([]byte, error)
}

// Handle is a live binding to one device endpoint: its session state
// (counter, connection id, key), its wire address, and everything the
// registry knows about it. A handle owns its transport exclusively; all
// command methods serialise through mu so only one request is ever in
// flight for a given handle.
type Handle struct {
	mu sync.Mutex

	transport Transport
	remote    net.Addr
	sess      *protocol.Session
	engine    *protocol.CipherEngine

	DeviceType   uint16
	HWAddr       [6]byte
	Name         string
	Locked       bool
	Profile      registry.Profile
	Model        string
	Manufacturer string

	// Label identifies this client to the device during Auth. Devices
	// display it (e.g. in a companion app's paired-device list), so it
	// defaults to the stock app's own identifier when unset.
	Label string
}

// New constructs a handle for a device already known by address and
// hardware address (i.e. not going through discovery). It looks the
// device type up in the registry to pick the profile and, if the
// profile overrides it, the request-header device-type bytes.
func New(transport Transport, remote net.Addr, hwAddr [6]byte, devType uint16) *Handle {
	sess := protocol.NewSession(hwAddr)

	h := &Handle{
		transport:  transport,
		remote:     remote,
		sess:       sess,
		engine:     protocol.NewCipherEngine(),
		DeviceType: devType,
		HWAddr:     hwAddr,
		Profile:    registry.ProfileUnknown,
	}

	if entry, ok := registry.Lookup(devType); ok {
		h.Profile = entry.Profile
		h.Model = entry.Model
		h.Manufacturer = entry.Manufacturer
		if entry.DeviceTypeBytes != nil {
			sess.DeviceTypeBytes = *entry.DeviceTypeBytes
		}
	}
	return h
}

// SendCommand builds an outer frame around cmdCode and plaintext, sends
// it, and returns the decrypted response body. This is the single choke
// point every behaviour leaf funnels through.
func (h *Handle) SendCommand(cmdCode byte, plaintext []byte, deadline time.Duration) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	frame, err := protocol.BuildRequest(h.sess, h.engine, cmdCode, plaintext)
	if err != nil {
		return nil, err
	}
	resp, err := h.transport.SendRecv(frame, h.remote, deadline)
	if err != nil {
		return nil, err
	}
	return protocol.ParseResponse(h.engine, resp)
}

const (
	authPayloadSize  = 0x50
	authIDOffset     = 0x04
	authIDLen        = 15
	authLabelOffset  = 0x30
	authRespKeyStart = 0x04
	authRespKeyLen   = 16
)

// Auth performs the rekeying handshake: it replaces the session's
// connection id and AES key with the ones the device hands back, and
// every subsequent SendCommand call uses them.
func (h *Handle) Auth(deadline time.Duration) error {
	payload := make([]byte, authPayloadSize)
	for i := 0; i < authIDLen; i++ {
		payload[authIDOffset+i] = '1'
	}
	payload[0x1E] = 0x01
	payload[0x2D] = 0x01
	label := h.Label
	if label == "" {
		label = "Test  1"
	}
	copy(payload[authLabelOffset:], []byte(label))

	resp, err := h.SendCommand(0x65, payload, deadline)
	if err != nil {
		return err
	}
	if len(resp) < authRespKeyStart+authRespKeyLen {
		return protocol.NewError(protocol.AuthenticationFailed, "auth response too short", nil)
	}

	newKey := resp[authRespKeyStart : authRespKeyStart+authRespKeyLen]
	if len(newKey)%16 != 0 {
		return protocol.NewError(protocol.AuthenticationFailed, "auth key length not a multiple of 16", nil)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.sess.ConnectionID = binary.LittleEndian.Uint32(resp[0:4])
	return h.engine.SetKey(newKey)
}
