// Package codec implements the five inner-frame styles carried inside a
// decrypted outer-frame payload: raw command-prefixed, length-prefixed,
// CRC-framed, JSON-framed, and double-framed. Each style exposes Wrap and
// Unwrap so a device leaf can build a request body and parse a response
// body without touching the outer frame or the cipher.
package codec

import (
	"encoding/binary"

	"broadlink/internal/protocol"
)

// Raw implements the classic RM remote inner frame: a 4-byte little-endian
// command code followed by the body, with no length prefix or checksum.
type Raw struct{}

func (Raw) Wrap(cmd uint32, body []byte) []byte {
	out := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(out, cmd)
	copy(out[4:], body)
	return out
}

func (Raw) Unwrap(plaintext []byte) ([]byte, error) {
	if len(plaintext) < 4 {
		return nil, protocol.NewError(protocol.DataValidation, "raw frame shorter than command prefix", nil)
	}
	return plaintext[4:], nil
}
