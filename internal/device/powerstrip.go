package device

import (
	"time"

	"broadlink/internal/protocol"
)

// PowerStrip controls an MP1 four-socket power strip.
type PowerStrip struct {
	h *Handle
}

// NewPowerStrip wraps h as an MP1 power strip.
func NewPowerStrip(h *Handle) *PowerStrip { return &PowerStrip{h: h} }

// SetSocketMask sets the power state of every socket named in sidMask
// (bit N-1 for socket N) in one request.
func (p *PowerStrip) SetSocketMask(sidMask byte, on bool, deadline time.Duration) error {
	packet := make([]byte, 16)
	packet[0x00] = 0x0D
	packet[0x02] = 0xA5
	packet[0x03] = 0xA5
	packet[0x04] = 0x5A
	packet[0x05] = 0x5A
	if on {
		packet[0x06] = 0xB2 + (sidMask << 1)
	} else {
		packet[0x06] = 0xB2 + sidMask
	}
	packet[0x07] = 0xC0
	packet[0x08] = 0x02
	packet[0x0A] = 0x03
	packet[0x0D] = sidMask
	if on {
		packet[0x0E] = sidMask
	}
	_, err := p.h.SendCommand(commandDispatch, packet, deadline)
	return err
}

// SetSocket sets the power state of a single socket (1-4).
func (p *PowerStrip) SetSocket(socket int, on bool, deadline time.Duration) error {
	mask := byte(1) << (socket - 1)
	return p.SetSocketMask(mask, on, deadline)
}

// SocketState reports the on/off state of sockets 1-4.
type SocketState struct {
	S1, S2, S3, S4 bool
}

// CheckPower reports the state of every socket.
func (p *PowerStrip) CheckPower(deadline time.Duration) (SocketState, error) {
	packet := make([]byte, 16)
	packet[0x00] = 0x0A
	packet[0x02] = 0xA5
	packet[0x03] = 0xA5
	packet[0x04] = 0x5A
	packet[0x05] = 0x5A
	packet[0x06] = 0xAE
	packet[0x07] = 0xC0
	packet[0x08] = 0x01

	resp, err := p.h.SendCommand(commandDispatch, packet, deadline)
	if err != nil {
		return SocketState{}, err
	}
	if len(resp) < 0x0F {
		return SocketState{}, protocol.NewError(protocol.DataValidation, "MP1 check-power response too short", nil)
	}
	state := resp[0x0E]
	return SocketState{
		S1: state&0x01 != 0,
		S2: state&0x02 != 0,
		S3: state&0x04 != 0,
		S4: state&0x08 != 0,
	}, nil
}
