package device

import (
	"time"

	"broadlink/internal/protocol"
)

// powerState encodes the combined power/nightlight byte the sp2 family
// expects at offset 0x04 of its raw 16-byte inner packet.
const (
	powerOff       byte = 0
	powerOn        byte = 1
	powerOffNight  byte = 2
	powerOnNight   byte = 3
)

// SmartPlug controls the sp1/sp2/sp2s/sp3/sp3s/sp4/sp4b family. sp1 only
// supports SetPower; the rest share the nightlight-aware encoding.
type SmartPlug struct {
	h            *Handle
	hasNightlight bool
}

// NewSmartPlug wraps h. hasNightlight should be true for every sp2-and-up
// variant; sp1 has no nightlight and always passes false.
func NewSmartPlug(h *Handle, hasNightlight bool) *SmartPlug {
	return &SmartPlug{h: h, hasNightlight: hasNightlight}
}

// SetPower sets the plug's power state. sp1 frames this as command 0x66
// with a 4-byte body whose byte 0 is the power flag; every later variant frames it as command
// 0x6A with a 16-byte inner packet whose byte 0 selects "set" and byte 4
// carries the power/nightlight state.
func (p *SmartPlug) SetPower(on bool, deadline time.Duration) error {
	if !p.hasNightlight {
		body := make([]byte, 4)
		if on {
			body[0] = 1
		}
		_, err := p.h.SendCommand(0x66, body, deadline)
		return err
	}

	night, err := p.CheckNightlight(deadline)
	if err != nil {
		return err
	}
	body := make([]byte, 16)
	body[0] = 0x02
	switch {
	case night && on:
		body[4] = powerOnNight
	case night && !on:
		body[4] = powerOffNight
	case !night && on:
		body[4] = powerOn
	default:
		body[4] = powerOff
	}
	_, err = p.h.SendCommand(commandDispatch, body, deadline)
	return err
}

// SetNightlight sets the plug's nightlight state (nightlight-capable
// variants only).
func (p *SmartPlug) SetNightlight(on bool, deadline time.Duration) error {
	power, err := p.CheckPower(deadline)
	if err != nil {
		return err
	}
	body := make([]byte, 16)
	body[0] = 0x02
	switch {
	case power && on:
		body[4] = powerOnNight
	case power && !on:
		body[4] = powerOn
	case !power && on:
		body[4] = powerOffNight
	default:
		body[4] = powerOff
	}
	_, err = p.h.SendCommand(commandDispatch, body, deadline)
	return err
}

func (p *SmartPlug) checkRaw(deadline time.Duration) (byte, error) {
	body := make([]byte, 16)
	body[0] = 0x01
	resp, err := p.h.SendCommand(commandDispatch, body, deadline)
	if err != nil {
		return 0, err
	}
	if len(resp) < 5 {
		return 0, protocol.NewError(protocol.DataValidation, "check-power response too short", nil)
	}
	return resp[4], nil
}

// CheckPower reports whether the plug output is currently on.
func (p *SmartPlug) CheckPower(deadline time.Duration) (bool, error) {
	state, err := p.checkRaw(deadline)
	if err != nil {
		return false, err
	}
	return state == 1 || state == 3 || state == 0xFD, nil
}

// CheckNightlight reports whether the nightlight is currently on.
func (p *SmartPlug) CheckNightlight(deadline time.Duration) (bool, error) {
	state, err := p.checkRaw(deadline)
	if err != nil {
		return false, err
	}
	return state == 2 || state == 3 || state == 0xFF, nil
}

// GetEnergy reads the cumulative energy counter sp2-and-up units expose.
func (p *SmartPlug) GetEnergy(deadline time.Duration) (float64, error) {
	body := []byte{8, 0, 254, 1, 5, 1, 0, 0, 0, 45}
	resp, err := p.h.SendCommand(commandDispatch, body, deadline)
	if err != nil {
		return 0, err
	}
	if len(resp) < 8 {
		return 0, protocol.NewError(protocol.DataValidation, "energy response too short", nil)
	}
	// Energy is packed BCD: each nibble of resp[5..7] is itself a decimal
	// digit, not a hex one.
	whole := bcdByte(resp[7])*100 + bcdByte(resp[6])
	frac := bcdByte(resp[5]) / 100.0
	return whole + frac, nil
}

func bcdByte(b byte) float64 {
	return float64(b>>4)*10 + float64(b&0x0F)
}
