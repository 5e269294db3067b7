package device

import (
	"testing"

	"broadlink/internal/codec"
)

func wrapHVACResponse(command byte, respData []byte) []byte {
	var c codec.DoubleFramed
	prefixed := append([]byte{(command << 4) | 1, 1}, respData...)
	return c.Wrap(prefixed)
}

func TestHVACGetState(t *testing.T) {
	data := make([]byte, 13)
	data[0x00] = 0x62 // swing_v=2, target_temp base 12
	data[0x01] = 96   // swing_h=3
	data[0x03] = 32   // speed=HIGH
	data[0x04] = 64   // preset=TURBO
	data[0x05] = 108  // mode=HEAT, sleep, ifeel
	data[0x08] = 38   // power, health, clean
	data[0x0A] = 24   // display, mildew

	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.DoubleFramed
		req, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		if len(req) != 2 || req[0] != 0x11 || req[1] != 1 {
			t.Errorf("request prefix = %v, want [0x11 1]", req)
		}
		return 0, wrapHVACResponse(1, data)
	})

	u := NewHVAC(h)
	s, err := u.GetState(dl)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if !s.Power || !s.Sleep || !s.IFeel || !s.Health || !s.Clean || !s.Display || !s.Mildew {
		t.Errorf("flags = %+v", s)
	}
	if s.TargetTempC != 20 {
		t.Errorf("target temp = %v, want 20", s.TargetTempC)
	}
	if s.Mode != HVACModeHeat || s.Speed != HVACSpeedHigh || s.Preset != HVACPresetTurbo {
		t.Errorf("mode/speed/preset = %v/%v/%v", s.Mode, s.Speed, s.Preset)
	}
	if s.SwingV != HVACSwingVertPos2 {
		t.Errorf("swing_v = %v, want Pos2", s.SwingV)
	}
}

func TestHVACSetStateRoundTrip(t *testing.T) {
	// TargetTempC is whole-degree and Preset is normal: the wire format
	// packs the half-degree flag and the echoed preset into overlapping
	// bits of the same response byte (matching the original firmware's
	// own behavior), so a round-trip test has to avoid the half-degree
	// and non-normal-preset cases to get an unambiguous decode.
	want := HVACState{
		Power:       true,
		TargetTempC: 24,
		Mode:        HVACModeCool,
		Speed:       HVACSpeedMid,
		SwingV:      HVACSwingVertPos3,
		SwingH:      HVACSwingHorizOn,
		Sleep:       true,
		IFeel:       true,
		Health:      true,
		Clean:       true,
		Display:     true,
		Mildew:      true,
	}

	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.DoubleFramed
		req, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		// echo the encoded state back as the device's own response, the
		// way the unit reports back whatever it was just told to set.
		return 0, wrapHVACResponse(0, req[2:])
	})

	u := NewHVAC(h)
	got, err := u.SetState(want, dl)
	if err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if got.Health != want.Health {
		t.Errorf("Health round-trip = %v, want %v", got.Health, want.Health)
	}
	if got.Power != want.Power || got.Clean != want.Clean || got.Display != want.Display || got.Mildew != want.Mildew {
		t.Errorf("flags round-trip = %+v, want %+v", got, want)
	}
	if got.TargetTempC != want.TargetTempC {
		t.Errorf("TargetTempC round-trip = %v, want %v", got.TargetTempC, want.TargetTempC)
	}
}

func TestHVACSetStateMuteRequiresFanMode(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		t.Fatal("should not reach the transport")
		return 0, nil
	})
	u := NewHVAC(h)
	_, err := u.SetState(HVACState{Mode: HVACModeCool, Preset: HVACPresetMute}, dl)
	if err == nil {
		t.Fatal("expected error for mute outside fan mode")
	}
}

func TestHVACGetACInfo(t *testing.T) {
	resp := make([]byte, 22)
	resp[0x01] = 1
	resp[0x05] = 24
	resp[0x15] = 5

	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		return 0, wrapHVACResponse(2, resp)
	})
	u := NewHVAC(h)
	info, err := u.GetACInfo(dl)
	if err != nil {
		t.Fatalf("GetACInfo: %v", err)
	}
	if !info.Power {
		t.Error("expected power true")
	}
	if !info.AmbientTempKnown || info.AmbientTempC != 24.5 {
		t.Errorf("ambient temp = %+v", info)
	}
}
