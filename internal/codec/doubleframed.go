package codec

import (
	"encoding/binary"

	"broadlink/internal/protocol"
)

var doubleFrameSignature = [6]byte{0xBB, 0x00, 0x06, 0x80, 0x00, 0x00}

// DoubleFramed implements the HVAC inner frame: a length prefix, a fixed
// 6-byte signature (0x00BB, 0x8006 and a reserved zero word, each packed
// little-endian), a data length, the data, and a trailing CRC-16
// (polynomial 0x9BE4) computed over everything after the outer length.
// Command-specific prefixing of data is the caller's responsibility.
type DoubleFramed struct{}

func (DoubleFramed) Wrap(data []byte) []byte {
	headerLen := 2 + len(doubleFrameSignature) + 2 // len + signature + data_len
	pLen := headerLen + len(data)

	frame := make([]byte, pLen+2) // + trailing crc
	binary.LittleEndian.PutUint16(frame[0:2], uint16(pLen))
	copy(frame[2:8], doubleFrameSignature[:])
	binary.LittleEndian.PutUint16(frame[8:10], uint16(len(data)))
	copy(frame[10:10+len(data)], data)

	crc := protocol.CRC16(frame[2:pLen], protocol.CRCHVAC)
	binary.LittleEndian.PutUint16(frame[pLen:pLen+2], crc)
	return frame
}

func (DoubleFramed) Unwrap(plaintext []byte) ([]byte, error) {
	if len(plaintext) < 10 {
		return nil, protocol.NewError(protocol.DataValidation, "double-framed frame shorter than header", nil)
	}
	pLen := int(binary.LittleEndian.Uint16(plaintext[0:2]))
	if pLen < 10 || pLen+2 > len(plaintext) {
		return nil, protocol.NewError(protocol.DataValidation, "double-framed frame length out of range", nil)
	}
	wantCRC := binary.LittleEndian.Uint16(plaintext[pLen : pLen+2])
	gotCRC := protocol.CRC16(plaintext[2:pLen], protocol.CRCHVAC)
	if gotCRC != wantCRC {
		return nil, protocol.NewError(protocol.DataValidation, "double-framed checksum mismatch", nil)
	}
	dataLen := int(binary.LittleEndian.Uint16(plaintext[8:10]))
	if 10+dataLen > pLen {
		return nil, protocol.NewError(protocol.DataValidation, "double-framed data length out of range", nil)
	}
	return plaintext[10 : 10+dataLen], nil
}
