package device

import "testing"

func TestPowerStripSetSocket(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		if plaintext[0x0D] != 0b0100 {
			t.Errorf("sidMask = %#b, want 0b0100", plaintext[0x0D])
		}
		if plaintext[0x06] != 0xB2+(0b0100<<1) {
			t.Errorf("control byte = %#x", plaintext[0x06])
		}
		return 0, nil
	})
	p := NewPowerStrip(h)
	if err := p.SetSocket(3, true, dl); err != nil {
		t.Fatalf("SetSocket: %v", err)
	}
}

func TestPowerStripCheckPower(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		resp := make([]byte, 0x0F)
		resp[0x0E] = 0b0101 // sockets 1 and 3 on
		return 0, resp
	})
	p := NewPowerStrip(h)
	state, err := p.CheckPower(dl)
	if err != nil {
		t.Fatalf("CheckPower: %v", err)
	}
	if !state.S1 || state.S2 || !state.S3 || state.S4 {
		t.Errorf("state = %+v", state)
	}
}
