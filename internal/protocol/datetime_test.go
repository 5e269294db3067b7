package protocol

import (
	"encoding/binary"
	"net"
	"testing"
	"time"
)

func TestPackDatetime(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	when := time.Date(2026, time.March, 5, 14, 37, 0, 0, loc) // a Thursday

	buf := make([]byte, 12)
	PackDatetime(when, buf)

	if got := int32(binary.LittleEndian.Uint32(buf[0:4])); got != 8 {
		t.Errorf("offset hours = %d, want 8", got)
	}
	if got := binary.LittleEndian.Uint16(buf[4:6]); got != 2026 {
		t.Errorf("year = %d, want 2026", got)
	}
	if buf[6] != 37 {
		t.Errorf("minute = %d, want 37", buf[6])
	}
	if buf[7] != 14 {
		t.Errorf("hour = %d, want 14", buf[7])
	}
	if buf[8] != 26 {
		t.Errorf("year%%100 = %d, want 26", buf[8])
	}
	if buf[9] != 4 { // Thursday == isoweekday 4
		t.Errorf("isoweekday = %d, want 4", buf[9])
	}
	if buf[10] != 5 {
		t.Errorf("day = %d, want 5", buf[10])
	}
	if buf[11] != 3 {
		t.Errorf("month = %d, want 3", buf[11])
	}
}

func TestPackAddress(t *testing.T) {
	buf := make([]byte, 6)
	PackAddress(net.ParseIP("192.168.1.42"), 12345, buf)

	want := []byte{192, 168, 1, 42}
	for i, b := range want {
		if buf[i] != b {
			t.Errorf("ip byte %d = %d, want %d", i, buf[i], b)
		}
	}
	if got := binary.LittleEndian.Uint16(buf[4:6]); got != 12345 {
		t.Errorf("port = %d, want 12345", got)
	}
}
