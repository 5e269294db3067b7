package protocol

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed length of the outer frame header; the ciphertext
// body follows immediately and is always a multiple of 16 bytes.
const HeaderSize = 0x38

// Magic is the fixed 8-byte prefix of every outer frame.
var Magic = []byte{0x5A, 0xA5, 0xAA, 0x55, 0x5A, 0xA5, 0xAA, 0x55}

const (
	offChecksum     = 0x20
	offDeviceType   = 0x24
	offCommand      = 0x26
	offCounter      = 0x28
	offHWAddr       = 0x2A
	offConnectionID = 0x30
	offPayloadCheck = 0x34
	offStatus       = 0x22
)

// ChecksumSeed is the additive-checksum seed used throughout the outer frame
// and its plaintext payload.
const ChecksumSeed uint16 = 0xBEAF

// Session carries the mutable per-handle state the outer codec needs:
// counter, connection id, hardware address, and the protocol-level device
// type bytes (normally 0x2A 0x27; a registry entry's DeviceTypeBytes
// overrides this).
type Session struct {
	Counter         uint16
	ConnectionID    uint32
	HWAddr          [6]byte
	DeviceTypeBytes [2]byte
}

// DefaultDeviceTypeBytes is the byte pair written at offset 0x24 for every
// profile except those that override it (sp2mini2 uses 0x28 0x27).
var DefaultDeviceTypeBytes = [2]byte{0x2A, 0x27}

// NewSession creates session state with the standard device-type byte pair
// and a zero connection id, as a handle starts before auth().
func NewSession(hwAddr [6]byte) *Session {
	return &Session{HWAddr: hwAddr, DeviceTypeBytes: DefaultDeviceTypeBytes}
}

// BuildRequest assembles an outer frame carrying cmdCode and plaintext,
// encrypting the padded plaintext with engine and advancing the session
// counter. It implements C4 steps 1-6.
func BuildRequest(sess *Session, engine *CipherEngine, cmdCode byte, plaintext []byte) ([]byte, error) {
	sess.Counter++

	padded := PadPKCS0(append([]byte(nil), plaintext...))
	ciphertext, err := engine.Encrypt(padded)
	if err != nil {
		return nil, fmt.Errorf("protocol: encrypt request: %w", err)
	}

	frame := make([]byte, HeaderSize+len(ciphertext))
	copy(frame[0:8], Magic)
	copy(frame[offDeviceType:offDeviceType+2], sess.DeviceTypeBytes[:])
	frame[offCommand] = cmdCode
	binary.LittleEndian.PutUint16(frame[offCounter:offCounter+2], sess.Counter)
	copy(frame[offHWAddr:offHWAddr+6], sess.HWAddr[:])
	binary.LittleEndian.PutUint32(frame[offConnectionID:offConnectionID+4], sess.ConnectionID)
	binary.LittleEndian.PutUint16(frame[offPayloadCheck:offPayloadCheck+2], AdditiveSum(plaintext, ChecksumSeed))
	copy(frame[HeaderSize:], ciphertext)

	// outer checksum computed over the full frame with the checksum field zeroed
	frame[offChecksum], frame[offChecksum+1] = 0, 0
	binary.LittleEndian.PutUint16(frame[offChecksum:offChecksum+2], AdditiveSum(frame, ChecksumSeed))

	return frame, nil
}

// ParseResponse validates length and status, decrypts the body with engine,
// and returns the plaintext response. Per the documented leniency, it does
// NOT verify the response's own outer checksum or echoed counter (§9).
func ParseResponse(engine *CipherEngine, resp []byte) ([]byte, error) {
	if len(resp) < HeaderSize {
		return nil, NewError(ReadError, fmt.Sprintf("response too short: %d bytes", len(resp)), nil)
	}

	status := binary.LittleEndian.Uint16(resp[offStatus : offStatus+2])
	if status != 0 {
		return nil, NewStatusError(status)
	}

	ciphertext := resp[HeaderSize:]
	if len(ciphertext) == 0 {
		return nil, nil
	}
	plaintext, err := engine.Decrypt(ciphertext)
	if err != nil {
		return nil, NewError(DataValidation, "decrypt response body", err)
	}
	return plaintext, nil
}
