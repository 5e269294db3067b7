package codec

import (
	"bytes"
	"encoding/binary"

	"broadlink/internal/protocol"
)

var jsonSignature = []byte{0xA5, 0xA5, 0x5A, 0x5A}

const (
	jsonChecksumSeed uint16 = 0xC0AD
	jsonMarker       byte   = 0x0B
)

// JSONFramed implements the bulb/hub/BG-switch inner frame: a fixed
// signature, an additive checksum over the flag-onward tail, a flag byte,
// a fixed marker byte, and a length-prefixed JSON payload.
type JSONFramed struct{}

func (JSONFramed) Wrap(flag byte, jsonBytes []byte) []byte {
	tail := make([]byte, 1+1+4+len(jsonBytes))
	tail[0] = flag
	tail[1] = jsonMarker
	binary.LittleEndian.PutUint32(tail[2:6], uint32(len(jsonBytes)))
	copy(tail[6:], jsonBytes)

	cksum := protocol.AdditiveSum(tail, jsonChecksumSeed)

	body := make([]byte, len(jsonSignature)+2+len(tail))
	copy(body[0:len(jsonSignature)], jsonSignature)
	binary.LittleEndian.PutUint16(body[len(jsonSignature):len(jsonSignature)+2], cksum)
	copy(body[len(jsonSignature)+2:], tail)

	frame := make([]byte, 2+len(body))
	binary.LittleEndian.PutUint16(frame[0:2], uint16(len(body)))
	copy(frame[2:], body)
	return frame
}

// Unwrap returns the flag byte and the raw JSON payload.
func (JSONFramed) Unwrap(plaintext []byte) (byte, []byte, error) {
	const headerLen = 2 + 4 + 2 + 1 + 1 + 4 // total_len + sig + cksum + flag + marker + json_len
	if len(plaintext) < headerLen {
		return 0, nil, protocol.NewError(protocol.DataValidation, "JSON frame shorter than header", nil)
	}
	totalLen := int(binary.LittleEndian.Uint16(plaintext[0:2]))
	if 2+totalLen > len(plaintext) {
		return 0, nil, protocol.NewError(protocol.DataValidation, "JSON frame length out of range", nil)
	}
	body := plaintext[2 : 2+totalLen]

	sig := body[0:4]
	if !bytes.Equal(sig, jsonSignature) {
		return 0, nil, protocol.NewError(protocol.DataValidation, "JSON frame signature mismatch", nil)
	}
	wantCksum := binary.LittleEndian.Uint16(body[4:6])
	tail := body[6:]
	if len(tail) < 6 {
		return 0, nil, protocol.NewError(protocol.DataValidation, "JSON frame tail too short", nil)
	}
	gotCksum := protocol.AdditiveSum(tail, jsonChecksumSeed)
	if gotCksum != wantCksum {
		return 0, nil, protocol.NewError(protocol.DataValidation, "JSON frame checksum mismatch", nil)
	}

	flag := tail[0]
	if tail[1] != jsonMarker {
		return 0, nil, protocol.NewError(protocol.DataValidation, "JSON frame marker mismatch", nil)
	}
	jsonLen := int(binary.LittleEndian.Uint32(tail[2:6]))
	if 6+jsonLen > len(tail) {
		return 0, nil, protocol.NewError(protocol.DataValidation, "JSON frame payload length out of range", nil)
	}
	return flag, tail[6 : 6+jsonLen], nil
}
