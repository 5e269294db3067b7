package device

import (
	"encoding/binary"
	"time"

	"broadlink/internal/codec"
	"broadlink/internal/protocol"
)

// Thermostat controls a Hysen-family heating thermostat over the
// CRC-framed inner codec.
type Thermostat struct {
	h *Handle
}

// NewThermostat wraps h as a Hysen thermostat.
func NewThermostat(h *Handle) *Thermostat { return &Thermostat{h: h} }

func (t *Thermostat) request(body []byte, deadline time.Duration) ([]byte, error) {
	var c codec.CRCFramed
	wrapped := c.Wrap(body)
	resp, err := t.h.SendCommand(commandDispatch, wrapped, deadline)
	if err != nil {
		return nil, err
	}
	return c.Unwrap(resp)
}

// ScheduleSlot is one timer entry: a start time and the target
// temperature from that time onward.
type ScheduleSlot struct {
	StartHour   byte
	StartMinute byte
	TempC       float64
}

// FullStatus is the decoded 22-register status block, including the
// 6-weekday + 2-weekend schedule.
type FullStatus struct {
	RemoteLock     bool
	Power          bool
	Active         bool
	TempManual     bool
	HeatingCooling bool
	RoomTempC      float64
	ThermostatTempC float64
	AutoMode       byte
	LoopMode       byte
	Sensor         byte
	OSV            byte
	DIF            byte
	SVH            byte
	SVL            byte
	RoomTempAdjC   float64
	FRE            byte
	PowerOn        byte
	ExternalTempC  float64
	Hour, Min, Sec byte
	DayOfWeek      byte
	Weekday        [6]ScheduleSlot
	Weekend        [2]ScheduleSlot
}

// decodeTemp applies the base-temperature plus conditional fine offset
// the device layers onto its half-degree register values.
func decodeTemp(payload []byte, baseIndex int) float64 {
	baseTemp := float64(payload[baseIndex]) / 2.0
	addOffset := (payload[4] >> 3) & 1
	offsetRaw := (payload[17] >> 4) & 3
	var offset float64
	if addOffset == 1 {
		offset = float64(offsetRaw+1) / 10.0
	}
	return baseTemp + offset
}

// GetTemp reads the first eight registers and returns the decoded room
// temperature from register 5.
func (t *Thermostat) GetTemp(deadline time.Duration) (float64, error) {
	payload, err := t.request([]byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x08}, deadline)
	if err != nil {
		return 0, err
	}
	if len(payload) < 18 {
		return 0, protocol.NewError(protocol.DataValidation, "thermostat temperature reply too short", nil)
	}
	return decodeTemp(payload, 5), nil
}

// GetFullStatus reads the full 22-register status block.
func (t *Thermostat) GetFullStatus(deadline time.Duration) (FullStatus, error) {
	payload, err := t.request([]byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x16}, deadline)
	if err != nil {
		return FullStatus{}, err
	}
	if len(payload) < 47 {
		return FullStatus{}, protocol.NewError(protocol.DataValidation, "thermostat status too short", nil)
	}

	s := FullStatus{
		RemoteLock:      payload[3]&1 != 0,
		Power:           payload[4]&1 != 0,
		Active:          (payload[4]>>4)&1 != 0,
		TempManual:      (payload[4]>>6)&1 != 0,
		HeatingCooling:  (payload[4]>>7)&1 != 0,
		RoomTempC:       decodeTemp(payload, 5),
		ThermostatTempC: float64(payload[6]) / 2.0,
		AutoMode:        payload[7] & 0x0F,
		LoopMode:        payload[7] >> 4,
		Sensor:          payload[8],
		OSV:             payload[9],
		DIF:             payload[10],
		SVH:             payload[11],
		SVL:             payload[12],
		RoomTempAdjC:    float64(int16(binary.BigEndian.Uint16(payload[13:15]))) / 10.0,
		FRE:             payload[15],
		PowerOn:         payload[16],
		ExternalTempC:   decodeTemp(payload, 18),
		Hour:            payload[19],
		Min:             payload[20],
		Sec:             payload[21],
		DayOfWeek:       payload[22],
	}

	for i := 0; i < 6; i++ {
		s.Weekday[i] = ScheduleSlot{
			StartHour:   payload[2*i+23],
			StartMinute: payload[2*i+24],
			TempC:       float64(payload[i+39]) / 2.0,
		}
	}
	for i := 0; i < 2; i++ {
		s.Weekend[i] = ScheduleSlot{
			StartHour:   payload[2*(i+6)+23],
			StartMinute: payload[2*(i+6)+24],
			TempC:       float64(payload[i+6+39]) / 2.0,
		}
	}
	return s, nil
}

// SetMode switches between automatic (scheduled) and manual control.
// loopMode selects which days the weekday/weekend split applies to.
func (t *Thermostat) SetMode(autoMode, loopMode, sensor byte, deadline time.Duration) error {
	modeByte := ((loopMode + 1) << 4) + autoMode
	_, err := t.request([]byte{0x01, 0x06, 0x00, 0x02, modeByte, sensor}, deadline)
	return err
}

// SetTemp sets the manual-mode target temperature.
func (t *Thermostat) SetTemp(tempC float64, deadline time.Duration) error {
	_, err := t.request([]byte{0x01, 0x06, 0x00, 0x01, 0x00, byte(tempC * 2)}, deadline)
	return err
}

// SetPower turns the unit on or off, optionally engaging the remote lock
// and switching between heating and cooling.
func (t *Thermostat) SetPower(power, remoteLock, heatingCooling bool, deadline time.Duration) error {
	var state byte
	if power {
		state = 1
	}
	if heatingCooling {
		state |= 0x80
	}
	var lock byte
	if remoteLock {
		lock = 1
	}
	_, err := t.request([]byte{0x01, 0x06, 0x00, 0x00, lock, state}, deadline)
	return err
}

// SetSchedule writes the 6-weekday + 2-weekend timer schedule.
func (t *Thermostat) SetSchedule(weekday [6]ScheduleSlot, weekend [2]ScheduleSlot, deadline time.Duration) error {
	req := []byte{0x01, 0x10, 0x00, 0x0A, 0x00, 0x0C, 0x18}
	for _, slot := range weekday {
		req = append(req, slot.StartHour, slot.StartMinute)
	}
	for _, slot := range weekend {
		req = append(req, slot.StartHour, slot.StartMinute)
	}
	for _, slot := range weekday {
		req = append(req, byte(slot.TempC*2))
	}
	for _, slot := range weekend {
		req = append(req, byte(slot.TempC*2))
	}
	_, err := t.request(req, deadline)
	return err
}
