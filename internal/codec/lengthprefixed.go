package codec

import (
	"encoding/binary"

	"broadlink/internal/protocol"
)

// LengthPrefixed implements the RM4 remote inner frame: a 2-byte length,
// a 4-byte command code, then the body. The length counts the command
// code and body together, not itself.
type LengthPrefixed struct{}

func (LengthPrefixed) Wrap(cmd uint32, body []byte) []byte {
	out := make([]byte, 6+len(body))
	binary.LittleEndian.PutUint16(out[0:2], uint16(len(body)+4))
	binary.LittleEndian.PutUint32(out[2:6], cmd)
	copy(out[6:], body)
	return out
}

func (LengthPrefixed) Unwrap(plaintext []byte) ([]byte, error) {
	if len(plaintext) < 6 {
		return nil, protocol.NewError(protocol.DataValidation, "length-prefixed frame shorter than header", nil)
	}
	pLen := int(binary.LittleEndian.Uint16(plaintext[0:2]))
	end := pLen + 2
	if end < 6 || end > len(plaintext) {
		return nil, protocol.NewError(protocol.DataValidation, "length-prefixed frame length out of range", nil)
	}
	return plaintext[6:end], nil
}
