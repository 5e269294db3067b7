package device

import (
	"testing"

	"broadlink/internal/codec"
)

func TestThermostatGetFullStatus(t *testing.T) {
	payload := make([]byte, 47)
	for i := range payload {
		payload[i] = byte(i)
	}
	payload[3] = 1
	payload[4] = 0x11 // power + active, no manual/heating bits, no offset bit
	payload[7] = 0x12 // auto_mode=2, loop_mode=1

	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.CRCFramed
		req, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		want := []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x16}
		if string(req) != string(want) {
			t.Errorf("request = %v, want %v", req, want)
		}
		return 0, c.Wrap(payload)
	})

	th := NewThermostat(h)
	s, err := th.GetFullStatus(dl)
	if err != nil {
		t.Fatalf("GetFullStatus: %v", err)
	}
	if !s.RemoteLock || !s.Power || !s.Active || s.TempManual || s.HeatingCooling {
		t.Errorf("flags = %+v", s)
	}
	if s.AutoMode != 2 || s.LoopMode != 1 {
		t.Errorf("auto/loop mode = %d/%d", s.AutoMode, s.LoopMode)
	}
	if s.RoomTempC != 2.5 {
		t.Errorf("room temp = %v, want 2.5", s.RoomTempC)
	}
	if s.ThermostatTempC != 3.0 {
		t.Errorf("thermostat temp = %v, want 3.0", s.ThermostatTempC)
	}
	if s.Weekday[0].StartHour != 23 || s.Weekday[0].StartMinute != 24 {
		t.Errorf("weekday[0] start = %d:%d", s.Weekday[0].StartHour, s.Weekday[0].StartMinute)
	}
	if s.Weekend[0].TempC != 22.5 {
		t.Errorf("weekend[0] temp = %v, want 22.5", s.Weekend[0].TempC)
	}
}

func TestThermostatSetTemp(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.CRCFramed
		req, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		want := []byte{0x01, 0x06, 0x00, 0x01, 0x00, 44}
		if string(req) != string(want) {
			t.Errorf("request = %v, want %v", req, want)
		}
		return 0, c.Wrap([]byte{0})
	})
	th := NewThermostat(h)
	if err := th.SetTemp(22.0, dl); err != nil {
		t.Fatalf("SetTemp: %v", err)
	}
}

func TestThermostatSetPower(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.CRCFramed
		req, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		want := []byte{0x01, 0x06, 0x00, 0x00, 0x01, 0x01}
		if string(req) != string(want) {
			t.Errorf("request = %v, want %v", req, want)
		}
		return 0, c.Wrap([]byte{0})
	})
	th := NewThermostat(h)
	if err := th.SetPower(true, true, false, dl); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
}
