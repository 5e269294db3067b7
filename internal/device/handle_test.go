package device

import (
	"encoding/binary"
	"net"
	"testing"
	"time"

	"broadlink/internal/protocol"
)

// fakeTransport decrypts the request it's handed with a CipherEngine that
// mirrors the handle's current key, so tests can assert on the plaintext
// command and craft an arbitrary plaintext response.
type fakeTransport struct {
	engine  *protocol.CipherEngine
	onFrame func(cmd byte, plaintext []byte) (status uint16, respPlaintext []byte)
}

func (f *fakeTransport) SendRecv(packet []byte, remote net.Addr, deadline time.Duration) ([]byte, error) {
	cmd := packet[0x26]
	ciphertext := packet[protocol.HeaderSize:]
	plaintext, err := f.engine.Decrypt(ciphertext)
	if err != nil {
		return nil, err
	}
	status, respPlaintext := f.onFrame(cmd, plaintext)

	resp := make([]byte, protocol.HeaderSize)
	binary.LittleEndian.PutUint16(resp[0x22:0x24], status)
	if len(respPlaintext) > 0 {
		padded := protocol.PadPKCS0(respPlaintext)
		ct, err := f.engine.Encrypt(padded)
		if err != nil {
			return nil, err
		}
		resp = append(resp, ct...)
	}
	return resp, nil
}

func newTestHandle(onFrame func(cmd byte, plaintext []byte) (uint16, []byte)) (*Handle, *fakeTransport) {
	ft := &fakeTransport{engine: protocol.NewCipherEngine(), onFrame: onFrame}
	h := New(ft, &net.UDPAddr{IP: net.IPv4(192, 168, 1, 50), Port: 80}, [6]byte{1, 2, 3, 4, 5, 6}, 0x2712)
	return h, ft
}

func TestSendCommandRoundTrip(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		if cmd != 0x6A {
			t.Errorf("cmd = %#02x, want 0x6A", cmd)
		}
		return 0, []byte("response-body!!!")
	})

	got, err := h.SendCommand(0x6A, []byte{0x01}, time.Second)
	if err != nil {
		t.Fatalf("SendCommand: %v", err)
	}
	if string(got) != "response-body!!!" {
		t.Errorf("got %q", got)
	}
}

func TestSendCommandSurfacesDeviceError(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		return 0xFFFD, nil // device offline
	})

	_, err := h.SendCommand(0x6A, nil, time.Second)
	if err == nil {
		t.Fatal("expected error")
	}
	devErr, ok := err.(*protocol.DeviceError)
	if !ok {
		t.Fatalf("expected *DeviceError, got %T", err)
	}
	if devErr.Kind != protocol.DeviceOffline {
		t.Errorf("kind = %v, want DeviceOffline", devErr.Kind)
	}
}

func TestAuthRekeysSession(t *testing.T) {
	newKey := make([]byte, 16)
	for i := range newKey {
		newKey[i] = 0xAB
	}
	h, ft := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		if cmd != 0x65 {
			t.Errorf("cmd = %#02x, want 0x65", cmd)
		}
		resp := make([]byte, 20)
		binary.LittleEndian.PutUint32(resp[0:4], 0x11223344)
		copy(resp[4:20], newKey)
		return 0, resp
	})

	if err := h.Auth(time.Second); err != nil {
		t.Fatalf("Auth: %v", err)
	}
	if h.sess.ConnectionID != 0x11223344 {
		t.Errorf("connection id = %#08x", h.sess.ConnectionID)
	}
	if string(h.engine.Key()) != string(newKey) {
		t.Errorf("key not rekeyed")
	}

	// the fake transport's own engine must also switch to the new key for
	// subsequent commands to decrypt correctly, mirroring what a real
	// device would do after it rekeys the session.
	if err := ft.engine.SetKey(newKey); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
}
