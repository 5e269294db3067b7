package device

import (
	"testing"
	"time"
)

func TestCurtainOpenClose(t *testing.T) {
	var lastMagic1, lastMagic2 byte
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		lastMagic1, lastMagic2 = plaintext[0x03], plaintext[0x04]
		resp := make([]byte, 5)
		resp[4] = 42
		return 0, resp
	})
	c := NewCurtain(h)

	pos, err := c.Open(dl)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if lastMagic1 != 0x01 || lastMagic2 != 0x00 {
		t.Errorf("open magic = %#x/%#x", lastMagic1, lastMagic2)
	}
	if pos != 42 {
		t.Errorf("pos = %d, want 42", pos)
	}

	if _, err := c.Close(dl); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if lastMagic1 != 0x02 {
		t.Errorf("close magic1 = %#x", lastMagic1)
	}
}

func TestCurtainSetPercentageAndWaitStopsAtTarget(t *testing.T) {
	positions := []byte{10, 40, 70, 100}
	call := 0
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		if plaintext[0x03] == 0x06 { // get_percentage
			resp := make([]byte, 5)
			idx := call
			if idx >= len(positions) {
				idx = len(positions) - 1
			}
			resp[4] = positions[idx]
			call++
			return 0, resp
		}
		return 0, make([]byte, 5)
	})
	c := NewCurtain(h)

	var slept int
	err := c.SetPercentageAndWait(100, dl, func(time.Duration) { slept++ })
	if err != nil {
		t.Fatalf("SetPercentageAndWait: %v", err)
	}
	if slept == 0 {
		t.Error("expected at least one poll sleep")
	}
}
