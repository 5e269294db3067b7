package device

import (
	"time"

	"broadlink/internal/codec"
	"broadlink/internal/protocol"
)

// HVAC controls a Tornado/Aux-family split-unit air conditioner over the
// double-framed inner codec.
type HVAC struct {
	h *Handle
}

// NewHVAC wraps h as an HVAC unit.
func NewHVAC(h *Handle) *HVAC { return &HVAC{h: h} }

// HVACMode selects the operating mode.
type HVACMode byte

const (
	HVACModeAuto HVACMode = 0
	HVACModeCool HVACMode = 1
	HVACModeDry  HVACMode = 2
	HVACModeHeat HVACMode = 3
	HVACModeFan  HVACMode = 4
)

// HVACSpeed selects fan speed.
type HVACSpeed byte

const (
	HVACSpeedHigh HVACSpeed = 1
	HVACSpeedMid  HVACSpeed = 2
	HVACSpeedLow  HVACSpeed = 3
	HVACSpeedAuto HVACSpeed = 5
)

// HVACPreset selects a named operating preset.
type HVACPreset byte

const (
	HVACPresetNormal HVACPreset = 0
	HVACPresetTurbo  HVACPreset = 1
	HVACPresetMute   HVACPreset = 2
)

// HVACSwingHoriz selects horizontal louver behavior.
type HVACSwingHoriz byte

const (
	HVACSwingHorizOn  HVACSwingHoriz = 0
	HVACSwingHorizOff HVACSwingHoriz = 7
)

// HVACSwingVert selects vertical louver behavior.
type HVACSwingVert byte

const (
	HVACSwingVertOn   HVACSwingVert = 0
	HVACSwingVertPos1 HVACSwingVert = 1
	HVACSwingVertPos2 HVACSwingVert = 2
	HVACSwingVertPos3 HVACSwingVert = 3
	HVACSwingVertPos4 HVACSwingVert = 4
	HVACSwingVertPos5 HVACSwingVert = 5
	HVACSwingVertOff  HVACSwingVert = 7
)

// HVACState is the unit's full operating state, as reported by GetState
// and accepted by SetState.
type HVACState struct {
	Power      bool
	TargetTempC float64
	Mode       HVACMode
	Speed      HVACSpeed
	Preset     HVACPreset
	SwingH     HVACSwingHoriz
	SwingV     HVACSwingVert
	Sleep      bool
	IFeel      bool
	Display    bool
	Health     bool
	Clean      bool
	Mildew     bool
}

// send wraps data with the unit's command prefix, frames it through the
// double-frame codec, and returns the inner data with the echoed prefix
// stripped.
func (u *HVAC) send(command byte, data []byte, deadline time.Duration) ([]byte, error) {
	var c codec.DoubleFramed
	prefixed := append([]byte{(command << 4) | 1, 1}, data...)
	wrapped := c.Wrap(prefixed)

	resp, err := u.h.SendCommand(commandDispatch, wrapped, deadline)
	if err != nil {
		return nil, err
	}
	decoded, err := c.Unwrap(resp)
	if err != nil {
		return nil, err
	}
	if len(decoded) < 2 {
		return nil, protocol.NewError(protocol.DataValidation, "HVAC response too short", nil)
	}
	return decoded[2:], nil
}

func parseHVACState(data []byte) (HVACState, error) {
	if len(data) < 13 {
		return HVACState{}, protocol.NewError(protocol.DataValidation, "HVAC state too short", nil)
	}
	half := 0.0
	if data[0x04]>>7 == 1 {
		half = 0.5
	}
	return HVACState{
		Power:       data[0x08]&(1<<5) != 0,
		TargetTempC: 8 + float64(data[0x00]>>3) + half,
		SwingV:      HVACSwingVert(data[0x00] & 0b111),
		SwingH:      HVACSwingHoriz(data[0x01] >> 5),
		Mode:        HVACMode(data[0x05] >> 5),
		Speed:       HVACSpeed(data[0x03] >> 5),
		Preset:      HVACPreset(data[0x04] >> 6),
		Sleep:       data[0x05]&(1<<2) != 0,
		IFeel:       data[0x05]&(1<<3) != 0,
		Health:      data[0x08]&(1<<1) != 0,
		Clean:       data[0x08]&(1<<2) != 0,
		Display:     data[0x0A]&(1<<4) != 0,
		Mildew:      data[0x0A]&(1<<3) != 0,
	}, nil
}

// SetState pushes a full state to the unit and returns the unit's
// resulting parsed state. Mute is only valid in fan mode and forces low
// speed; turbo is only valid in cooling/heating and forces high speed.
func (u *HVAC) SetState(s HVACState, deadline time.Duration) (HVACState, error) {
	const (
		unk0 = 0b100
		unk1 = 0b1101
		unk2 = 0b101
	)

	switch s.Preset {
	case HVACPresetMute:
		if s.Mode != HVACModeFan {
			return HVACState{}, protocol.NewError(protocol.DataValidation, "mute is only available in fan mode", nil)
		}
		s.Speed = HVACSpeedLow
	case HVACPresetTurbo:
		if s.Mode != HVACModeCool && s.Mode != HVACModeHeat {
			return HVACState{}, protocol.NewError(protocol.DataValidation, "turbo is only available in cooling/heating", nil)
		}
		s.Speed = HVACSpeedHigh
	}

	rounded := float64(int(s.TargetTempC*2)) / 2
	half := byte(0)
	if rounded-float64(int(rounded)) == 0.5 {
		half = 1
	}

	data := make([]byte, 0x0D)
	data[0x00] = (byte(int(rounded)-8) << 3) | byte(s.SwingV)
	data[0x01] = (byte(s.SwingH) << 5) | unk0
	data[0x02] = (half << 7) | unk1
	data[0x03] = byte(s.Speed) << 5
	data[0x04] = byte(s.Preset) << 6
	data[0x05] = byte(s.Mode)<<5 | boolBit(s.Sleep)<<2 | boolBit(s.IFeel)<<3
	data[0x08] = boolBit(s.Power)<<5 | boolBit(s.Clean)<<2 | healthBits(s.Health)
	data[0x0A] = boolBit(s.Display)<<4 | boolBit(s.Mildew)<<3
	data[0x0C] = unk2

	resp, err := u.send(0, data, deadline)
	if err != nil {
		return HVACState{}, err
	}
	return parseHVACState(resp)
}

func boolBit(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// healthBits sets both bit 0 and bit 1 when health is on, matching the
// firmware's own decode which reads the flag back from bit 1.
func healthBits(health bool) byte {
	if health {
		return 0b11
	}
	return 0
}

// GetState reads the unit's current full state.
func (u *HVAC) GetState(deadline time.Duration) (HVACState, error) {
	resp, err := u.send(1, nil, deadline)
	if err != nil {
		return HVACState{}, err
	}
	return parseHVACState(resp)
}

// ACInfo holds the summary fields get_ac_info exposes: power and ambient
// temperature (only present if either half reports a nonzero reading).
type ACInfo struct {
	Power            bool
	AmbientTempC     float64
	AmbientTempKnown bool
}

// GetACInfo reads the unit's power and ambient-temperature summary.
func (u *HVAC) GetACInfo(deadline time.Duration) (ACInfo, error) {
	resp, err := u.send(2, nil, deadline)
	if err != nil {
		return ACInfo{}, err
	}
	if len(resp) < 22 {
		return ACInfo{}, protocol.NewError(protocol.DataValidation, "HVAC AC-info response too short", nil)
	}
	info := ACInfo{Power: resp[0x01]&1 != 0}
	whole := resp[0x05] & 0b11111
	frac := resp[0x15] & 0b11111
	if whole != 0 || frac != 0 {
		info.AmbientTempKnown = true
		info.AmbientTempC = float64(whole) + float64(frac)/10.0
	}
	return info, nil
}
