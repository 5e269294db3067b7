package device

import "testing"

func TestAlarmGetSensorsStatus(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		if plaintext[0] != 0x06 {
			t.Errorf("request command = %#x, want 0x06", plaintext[0])
		}

		record := make([]byte, 83)
		record[0] = 1             // status
		record[1] = 0             // order
		record[3] = 0x31          // door sensor
		copy(record[4:26], "Front Door\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")
		copy(record[26:30], []byte{0xDE, 0xAD, 0xBE, 0xEF})

		resp := make([]byte, 6+len(record))
		resp[0x04] = 1
		copy(resp[0x06:], record)
		return 0, resp
	})

	a := NewAlarm(h)
	status, err := a.GetSensorsStatus(dl)
	if err != nil {
		t.Fatalf("GetSensorsStatus: %v", err)
	}
	if status.Count != 1 {
		t.Errorf("count = %d, want 1", status.Count)
	}
	if len(status.Sensors) != 1 {
		t.Fatalf("sensors = %+v, want 1 entry", status.Sensors)
	}
	s := status.Sensors[0]
	if s.Type != "Door Sensor" {
		t.Errorf("type = %q, want Door Sensor", s.Type)
	}
	if s.Name != "Front Door" {
		t.Errorf("name = %q, want Front Door", s.Name)
	}
	if s.Serial != "deadbeef" {
		t.Errorf("serial = %q, want deadbeef", s.Serial)
	}
}

func TestAlarmGetSensorsStatusSkipsUnpaired(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		record := make([]byte, 83) // serial stays 00000000
		resp := make([]byte, 6+len(record))
		resp[0x04] = 1
		copy(resp[0x06:], record)
		return 0, resp
	})

	a := NewAlarm(h)
	status, err := a.GetSensorsStatus(dl)
	if err != nil {
		t.Fatalf("GetSensorsStatus: %v", err)
	}
	if len(status.Sensors) != 0 {
		t.Errorf("sensors = %+v, want none", status.Sensors)
	}
}
