package codec

import (
	"encoding/binary"

	"broadlink/internal/protocol"
)

// CRCFramed implements the thermostat inner frame: a 2-byte length (body
// plus CRC), the body, then a CRC-16 (polynomial 0xA001) over the body.
type CRCFramed struct{}

func (CRCFramed) Wrap(body []byte) []byte {
	out := make([]byte, 2+len(body)+2)
	binary.LittleEndian.PutUint16(out[0:2], uint16(len(body)+2))
	copy(out[2:], body)
	crc := protocol.CRC16(body, protocol.CRCThermostat)
	binary.LittleEndian.PutUint16(out[2+len(body):], crc)
	return out
}

func (CRCFramed) Unwrap(plaintext []byte) ([]byte, error) {
	if len(plaintext) < 4 {
		return nil, protocol.NewError(protocol.DataValidation, "CRC-framed frame shorter than header", nil)
	}
	pLen := int(binary.LittleEndian.Uint16(plaintext[0:2]))
	if pLen < 2 || pLen+2 > len(plaintext) {
		return nil, protocol.NewError(protocol.DataValidation, "CRC-framed frame length out of range", nil)
	}
	body := plaintext[2:pLen]
	want := binary.LittleEndian.Uint16(plaintext[pLen : pLen+2])
	got := protocol.CRC16(body, protocol.CRCThermostat)
	if got != want {
		return nil, protocol.NewError(protocol.DataValidation, "CRC-framed checksum mismatch", nil)
	}
	return body, nil
}
