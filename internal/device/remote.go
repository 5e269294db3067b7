package device

import (
	"time"

	"broadlink/internal/codec"
	"broadlink/internal/protocol"
)

const commandDispatch byte = 0x6A

// Remote controls an RM-family IR/RF blaster over the raw inner codec
// (RM classic). RM4 units reuse Handle.SendCommand the same way but frame
// through the length-prefixed codec via Remote4.
type Remote struct {
	h *Handle
}

// NewRemote wraps h as an RM-classic remote.
func NewRemote(h *Handle) *Remote { return &Remote{h: h} }

func (r *Remote) send(cmd uint32, body []byte, deadline time.Duration) ([]byte, error) {
	var c codec.Raw
	wrapped := c.Wrap(cmd, body)
	resp, err := r.h.SendCommand(commandDispatch, wrapped, deadline)
	if err != nil {
		return nil, err
	}
	return c.Unwrap(resp)
}

// EnterLearning puts the device into IR/RF learning mode.
func (r *Remote) EnterLearning(deadline time.Duration) error {
	_, err := r.send(0x03, nil, deadline)
	return err
}

// CheckData returns the last code captured during learning mode.
func (r *Remote) CheckData(deadline time.Duration) ([]byte, error) {
	return r.send(0x04, nil, deadline)
}

// SendData transmits a previously learned IR/RF code.
func (r *Remote) SendData(code []byte, deadline time.Duration) error {
	_, err := r.send(0x02, code, deadline)
	return err
}

// SweepFrequency begins an RF frequency sweep.
func (r *Remote) SweepFrequency(deadline time.Duration) error {
	_, err := r.send(0x19, nil, deadline)
	return err
}

// CancelSweep aborts a frequency sweep in progress.
func (r *Remote) CancelSweep(deadline time.Duration) error {
	_, err := r.send(0x1E, nil, deadline)
	return err
}

// CheckFrequency reports whether the RF frequency was identified.
func (r *Remote) CheckFrequency(deadline time.Duration) (bool, error) {
	resp, err := r.send(0x1A, nil, deadline)
	if err != nil {
		return false, err
	}
	return len(resp) > 0 && resp[0] == 1, nil
}

// FindRFPacket enters RF packet-learning mode.
func (r *Remote) FindRFPacket(deadline time.Duration) (bool, error) {
	resp, err := r.send(0x1B, nil, deadline)
	if err != nil {
		return false, err
	}
	return len(resp) > 0 && resp[0] == 1, nil
}

// Sensors holds the classic RM's onboard temperature reading.
type Sensors struct {
	TemperatureC float64
}

// CheckSensors reads the classic RM onboard temperature sensor.
func (r *Remote) CheckSensors(deadline time.Duration) (Sensors, error) {
	resp, err := r.send(0x01, nil, deadline)
	if err != nil {
		return Sensors{}, err
	}
	if len(resp) < 2 {
		return Sensors{}, protocol.NewError(protocol.DataValidation, "sensor response too short", nil)
	}
	hi := int8(resp[0])
	lo := int8(resp[1])
	return Sensors{TemperatureC: float64(hi) + float64(lo)/10.0}, nil
}

// Remote4 controls an RM4-family blaster, which frames through the
// length-prefixed inner codec and additionally reports humidity.
type Remote4 struct {
	h *Handle
}

// NewRemote4 wraps h as an RM4 remote.
func NewRemote4(h *Handle) *Remote4 { return &Remote4{h: h} }

func (r *Remote4) send(cmd uint32, body []byte, deadline time.Duration) ([]byte, error) {
	var c codec.LengthPrefixed
	wrapped := c.Wrap(cmd, body)
	resp, err := r.h.SendCommand(commandDispatch, wrapped, deadline)
	if err != nil {
		return nil, err
	}
	return c.Unwrap(resp)
}

func (r *Remote4) EnterLearning(deadline time.Duration) error {
	_, err := r.send(0x03, nil, deadline)
	return err
}

func (r *Remote4) CheckData(deadline time.Duration) ([]byte, error) {
	return r.send(0x04, nil, deadline)
}

func (r *Remote4) SendData(code []byte, deadline time.Duration) error {
	_, err := r.send(0x02, code, deadline)
	return err
}

func (r *Remote4) FindRFPacket(deadline time.Duration) (bool, error) {
	_, err := r.send(0x1B, nil, deadline)
	return err == nil, err
}

// Sensors4 adds humidity to the RM4's onboard sensor reading.
type Sensors4 struct {
	TemperatureC float64
	HumidityPct  float64
}

// CheckSensors reads the RM4's onboard temperature/humidity sensors.
func (r *Remote4) CheckSensors(deadline time.Duration) (Sensors4, error) {
	resp, err := r.send(0x24, nil, deadline)
	if err != nil {
		return Sensors4{}, err
	}
	if len(resp) < 4 {
		return Sensors4{}, protocol.NewError(protocol.DataValidation, "sensor response too short", nil)
	}
	hi := int8(resp[0])
	lo := int8(resp[1])
	temp := float64(hi) + float64(lo)/100.0
	humidity := float64(resp[2]) + float64(resp[3])/100.0
	return Sensors4{TemperatureC: temp, HumidityPct: humidity}, nil
}
