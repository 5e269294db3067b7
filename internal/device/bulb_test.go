package device

import (
	"encoding/json"
	"testing"

	"broadlink/internal/codec"
)

func TestBulbGetState(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.JSONFramed
		flag, body, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		if flag != 1 {
			t.Errorf("flag = %d, want 1", flag)
		}
		if string(body) != "{}" {
			t.Errorf("body = %q, want {}", body)
		}
		resp, _ := json.Marshal(map[string]any{"pwr": true, "brightness": 75})
		return 0, c.Wrap(1, resp)
	})

	b := NewBulb(h)
	state, err := b.GetState(dl)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if on, _ := state["pwr"].(bool); !on {
		t.Errorf("state = %+v", state)
	}
	if brightness, _ := state["brightness"].(float64); brightness != 75 {
		t.Errorf("brightness = %v, want 75", brightness)
	}
}

func TestBulbSetState(t *testing.T) {
	h, _ := newTestHandle(func(cmd byte, plaintext []byte) (uint16, []byte) {
		var c codec.JSONFramed
		flag, body, err := c.Unwrap(plaintext)
		if err != nil {
			t.Fatalf("Unwrap request: %v", err)
		}
		if flag != 2 {
			t.Errorf("flag = %d, want 2", flag)
		}
		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		if brightness, _ := req["brightness"].(float64); brightness != 50 {
			t.Errorf("request = %+v", req)
		}
		resp, _ := json.Marshal(req)
		return 0, c.Wrap(2, resp)
	})

	b := NewBulb(h)
	brightness := 50
	state, err := b.SetState(BulbState{Brightness: &brightness}, dl)
	if err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if got, _ := state["brightness"].(float64); got != 50 {
		t.Errorf("state = %+v", state)
	}
}
