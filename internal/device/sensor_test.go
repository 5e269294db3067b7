package device

import (
	"testing"

	"broadlink/internal/codec"
)

func TestAirSensorCheckSensors(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.Raw
		req, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		if string(req) != string(make([]byte, 12)) {
			t.Errorf("request body = %v, want only the 12 zero bytes of block padding", req)
		}
		resp := []byte{21, 5, 45, 0, 2, 0, 1, 0, 0}
		return 0, c.Wrap(0x01, resp)
	})

	a := NewAirSensor(h)
	levels, err := a.CheckSensors(dl)
	if err != nil {
		t.Fatalf("CheckSensors: %v", err)
	}
	if levels.TemperatureC != 21.5 {
		t.Errorf("temp = %v, want 21.5", levels.TemperatureC)
	}
	if levels.HumidityPct != 45.0 {
		t.Errorf("humidity = %v, want 45.0", levels.HumidityPct)
	}
	if levels.Light != "normal" {
		t.Errorf("light = %q", levels.Light)
	}
	if levels.AirQuality != "good" {
		t.Errorf("air quality = %q", levels.AirQuality)
	}
	if levels.Noise != "quiet" {
		t.Errorf("noise = %q", levels.Noise)
	}
}

func TestAirSensorUnknownOrdinalLevel(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.Raw
		resp := []byte{20, 0, 40, 0, 99, 0, 0, 0, 0}
		return 0, c.Wrap(0x01, resp)
	})
	a := NewAirSensor(h)
	levels, err := a.CheckSensors(dl)
	if err != nil {
		t.Fatalf("CheckSensors: %v", err)
	}
	if levels.Light != "unknown" {
		t.Errorf("light = %q, want unknown", levels.Light)
	}
}
